package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/credential"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/persistence/models"
)

// GormCredentialRepository implements credential.Repository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByInstanceID finds the credential stored for an instance
func (r *GormCredentialRepository) FindByInstanceID(ctx context.Context, instanceID string) (*credential.Credential, error) {
	var model models.CredentialModel
	if err := r.db.WithContext(ctx).First(&model, "instance_id = ?", instanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, credential.ErrCredentialNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert inserts the credential or replaces the token pair already stored
// for the instance
func (r *GormCredentialRepository) Upsert(ctx context.Context, cred *credential.Credential) error {
	model := models.CredentialModelFromDomain(cred)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "instance_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"refresh_token", "access_token", "updated_at"}),
		}).
		Create(model).Error
}

// Delete removes the credential for an instance
func (r *GormCredentialRepository) Delete(ctx context.Context, instanceID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.CredentialModel{}, "instance_id = ?", instanceID).Error
}

// Ensure GormCredentialRepository implements the repository interface
var _ credential.Repository = (*GormCredentialRepository)(nil)

// GormInstallStateRepository implements credential.StateRepository using GORM
type GormInstallStateRepository struct {
	db *gorm.DB
}

// NewGormInstallStateRepository creates a new GormInstallStateRepository
func NewGormInstallStateRepository(db *gorm.DB) *GormInstallStateRepository {
	return &GormInstallStateRepository{db: db}
}

// Create stores a new install state nonce
func (r *GormInstallStateRepository) Create(ctx context.Context, state *credential.InstallState) error {
	model := &models.InstallStateModel{}
	model.FromDomain(state)
	return r.db.WithContext(ctx).Create(model).Error
}

// Consume removes the state row, enforcing single use. The row is deleted
// whether or not it expired so a replayed callback always fails.
func (r *GormInstallStateRepository) Consume(ctx context.Context, state string, ttl time.Duration) error {
	var model models.InstallStateModel
	if err := r.db.WithContext(ctx).First(&model, "state = ?", state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return credential.ErrStateNotFound
		}
		return err
	}

	// The guarded delete makes concurrent consumers race on the row:
	// exactly one sees RowsAffected == 1
	res := r.db.WithContext(ctx).Delete(&models.InstallStateModel{}, "state = ?", state)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return credential.ErrStateNotFound
	}

	if model.ToDomain().ExpiredAt(time.Now(), ttl) {
		return credential.ErrStateExpired
	}
	return nil
}

// Ensure GormInstallStateRepository implements the repository interface
var _ credential.StateRepository = (*GormInstallStateRepository)(nil)
