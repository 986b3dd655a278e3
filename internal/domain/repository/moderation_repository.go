package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikondrat/classifier-example/internal/domain/entity"
)

// ModerationRepository defines the interface for moderation history operations
type ModerationRepository interface {
	// Create stores a new moderation record
	Create(ctx context.Context, record *entity.ModerationRecord) error

	// GetByID retrieves a moderation record by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ModerationRecord, error)

	// List retrieves moderation records with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*entity.ModerationRecord, int64, error)

	// GetByLabel retrieves records classified with the given label
	GetByLabel(ctx context.Context, label string, limit, offset int) ([]*entity.ModerationRecord, int64, error)

	// Delete deletes a moderation record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all stored moderation records
	Count(ctx context.Context) (int64, error)
}
