package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired rejects mutating requests without an Idempotency-Key
// header and replays the cached response when the same key is submitted
// again. The checkout client sends the invoice number as the key, so a
// double-submitted payment returns the original receipt instead of placing
// the orders twice.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "Invalid user ID")
			c.Abort()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, userID)
		if err != nil {
			response.ErrorWithCode(c, 500, "Failed to check idempotency key")
			c.Abort()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful outcomes are worth replaying; a failed submission
		// must stay retryable.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			ikey := &entity.IdempotencyKey{
				Key:          idempotencyKey,
				UserID:       userID,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			}

			_ = config.Repo.Create(c.Request.Context(), ikey)
		}
	}
}
