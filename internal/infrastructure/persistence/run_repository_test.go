package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/persistence/models"
)

func setupRunTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.IngestionRunModel{})
	require.NoError(t, err)

	return db
}

func TestGormRunRepository_SaveAndFind(t *testing.T) {
	db := setupRunTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	run := ingestion.NewRun("instance-1")
	require.NoError(t, repo.Save(ctx, run))

	found, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, "instance-1", found.InstanceID)
	assert.Equal(t, ingestion.RunStatusPending, found.Status)
	assert.Nil(t, found.StartedAt)
}

func TestGormRunRepository_Update(t *testing.T) {
	db := setupRunTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	run := ingestion.NewRun("instance-1")
	require.NoError(t, repo.Save(ctx, run))

	run.Start()
	require.NoError(t, repo.Update(ctx, run))

	run.Complete(237, 235, 2, 0)
	require.NoError(t, repo.Update(ctx, run))

	found, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, ingestion.RunStatusSuccess, found.Status)
	assert.Equal(t, 237, found.TotalOrders)
	assert.Equal(t, 235, found.SucceededCount)
	assert.Equal(t, 2, found.SkippedCount)
	assert.Equal(t, 0, found.FailedCount)
	assert.NotNil(t, found.StartedAt)
	assert.NotNil(t, found.CompletedAt)
}

func TestGormRunRepository_FindByID_NotFound(t *testing.T) {
	db := setupRunTestDB(t)
	repo := NewGormRunRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ingestion.ErrRunNotFound)
}

func TestGormRunRepository_ListByInstance(t *testing.T) {
	db := setupRunTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := ingestion.NewRun("instance-1")
		run.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(ctx, run))
	}
	other := ingestion.NewRun("instance-2")
	require.NoError(t, repo.Save(ctx, other))

	runs, err := repo.ListByInstance(ctx, "instance-1", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// newest first
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt))
	for _, r := range runs {
		assert.Equal(t, "instance-1", r.InstanceID)
	}
}
