package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	domainRepo "github.com/agriconnect/agriconnect-api/internal/domain/repository"
)

const cartKeyPrefix = "cart:"

type cartRepository struct {
	client *redis.Client
}

// NewCartRepository creates a Redis-backed cart store, keyed per user so no
// cross-user mutation is possible by construction
func NewCartRepository(client *redis.Client) domainRepo.CartRepository {
	return &cartRepository{client: client}
}

func (r *cartRepository) Load(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error) {
	raw, err := r.client.Get(ctx, cartKeyPrefix+userID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return []entity.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []entity.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		// A corrupt payload degrades to an empty cart; logged for diagnostics only
		log.Printf("cart: discarding malformed payload for user %s: %v", userID, err)
		return []entity.CartLine{}, nil
	}
	return lines, nil
}

func (r *cartRepository) Save(ctx context.Context, userID uuid.UUID, lines []entity.CartLine) error {
	if lines == nil {
		lines = []entity.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKeyPrefix+userID.String(), raw, 0).Err()
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, cartKeyPrefix+userID.String()).Err()
}
