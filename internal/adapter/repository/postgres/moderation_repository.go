package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikondrat/classifier-example/internal/domain/entity"
	"github.com/ikondrat/classifier-example/internal/domain/repository"
)

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new moderation history repository
func NewModerationRepository(db *gorm.DB) repository.ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) Create(ctx context.Context, record *entity.ModerationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *moderationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ModerationRecord, error) {
	var record entity.ModerationRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *moderationRepository) List(ctx context.Context, limit, offset int) ([]*entity.ModerationRecord, int64, error) {
	var records []*entity.ModerationRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.ModerationRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *moderationRepository) GetByLabel(ctx context.Context, label string, limit, offset int) ([]*entity.ModerationRecord, int64, error) {
	var records []*entity.ModerationRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.ModerationRecord{}).Where("label = ?", label).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("label = ?", label).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *moderationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ModerationRecord{}, "id = ?", id).Error
}

func (r *moderationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ModerationRecord{}).Count(&count).Error
	return count, err
}
