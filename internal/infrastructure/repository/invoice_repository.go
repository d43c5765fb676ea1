package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	domainRepo "github.com/agriconnect/agriconnect-api/internal/domain/repository"
)

const (
	pendingInvoiceKeyPrefix = "checkout:pending:"
	receiptKeyPrefix        = "checkout:receipt:"

	// A billing session that sits untouched for a day is abandoned
	pendingInvoiceTTL = 24 * time.Hour
	receiptTTL        = 7 * 24 * time.Hour
)

type invoiceRepository struct {
	client *redis.Client
}

// NewInvoiceRepository creates a Redis-backed billing session store holding
// the in-progress invoice and the last completed receipt per buyer
func NewInvoiceRepository(client *redis.Client) domainRepo.InvoiceRepository {
	return &invoiceRepository{client: client}
}

func (r *invoiceRepository) SavePending(ctx context.Context, buyerID uuid.UUID, inv *entity.Invoice) error {
	return r.save(ctx, pendingInvoiceKeyPrefix+buyerID.String(), inv, pendingInvoiceTTL)
}

func (r *invoiceRepository) GetPending(ctx context.Context, buyerID uuid.UUID) (*entity.Invoice, error) {
	return r.load(ctx, pendingInvoiceKeyPrefix+buyerID.String())
}

func (r *invoiceRepository) DeletePending(ctx context.Context, buyerID uuid.UUID) error {
	return r.client.Del(ctx, pendingInvoiceKeyPrefix+buyerID.String()).Err()
}

func (r *invoiceRepository) SaveReceipt(ctx context.Context, buyerID uuid.UUID, inv *entity.Invoice) error {
	return r.save(ctx, receiptKeyPrefix+buyerID.String(), inv, receiptTTL)
}

func (r *invoiceRepository) GetReceipt(ctx context.Context, buyerID uuid.UUID) (*entity.Invoice, error) {
	return r.load(ctx, receiptKeyPrefix+buyerID.String())
}

func (r *invoiceRepository) save(ctx context.Context, key string, inv *entity.Invoice, ttl time.Duration) error {
	raw, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

func (r *invoiceRepository) load(ctx context.Context, key string) (*entity.Invoice, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var inv entity.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		// Treat a corrupt session the same as an absent one
		log.Printf("invoice: discarding malformed payload at %s: %v", key, err)
		return nil, nil
	}
	return &inv, nil
}
