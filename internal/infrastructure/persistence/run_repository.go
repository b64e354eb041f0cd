package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/persistence/models"
)

// GormRunRepository implements ingestion.RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Save inserts a new run
func (r *GormRunRepository) Save(ctx context.Context, run *ingestion.Run) error {
	model := models.IngestionRunModelFromDomain(run)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the current state of a run
func (r *GormRunRepository) Update(ctx context.Context, run *ingestion.Run) error {
	model := models.IngestionRunModelFromDomain(run)
	return r.db.WithContext(ctx).
		Model(&models.IngestionRunModel{}).
		Where("id = ?", model.ID).
		Select("status", "error", "started_at", "completed_at",
			"total_orders", "succeeded_count", "skipped_count", "failed_count").
		Updates(model).Error
}

// FindByID finds a run by its ID
func (r *GormRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingestion.Run, error) {
	var model models.IngestionRunModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ingestion.ErrRunNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByInstance returns the most recent runs for an instance
func (r *GormRunRepository) ListByInstance(ctx context.Context, instanceID string, limit int) ([]ingestion.Run, error) {
	var runModels []models.IngestionRunModel
	if err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&runModels).Error; err != nil {
		return nil, err
	}

	runs := make([]ingestion.Run, len(runModels))
	for i, model := range runModels {
		runs[i] = *model.ToDomain()
	}
	return runs, nil
}

// Ensure GormRunRepository implements the repository interface
var _ ingestion.RunRepository = (*GormRunRepository)(nil)
