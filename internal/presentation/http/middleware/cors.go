package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agriconnect-api/internal/config"
)

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// Default to common development origins when none are configured
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
			"Origin",
			"Idempotency-Key",
		}
	} else {
		// The checkout flow needs Idempotency-Key regardless of configuration
		hasIdempotencyKey := false
		for _, h := range corsConfig.AllowHeaders {
			if h == "Idempotency-Key" {
				hasIdempotencyKey = true
				break
			}
		}
		if !hasIdempotencyKey {
			corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Idempotency-Key")
		}
	}

	return cors.New(corsConfig)
}
