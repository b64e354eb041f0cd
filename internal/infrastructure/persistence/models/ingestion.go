package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

// IngestionRunModel is the persistence model for the Run domain entity.
type IngestionRunModel struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key"`
	InstanceID     string              `gorm:"type:varchar(64);not null;index:idx_ingestion_runs_instance,priority:1"`
	Status         ingestion.RunStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`
	Error          string              `gorm:"type:text"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"not null;index:idx_ingestion_runs_instance,priority:2"`
	TotalOrders    int       `gorm:"not null;default:0"`
	SucceededCount int       `gorm:"not null;default:0"`
	SkippedCount   int       `gorm:"not null;default:0"`
	FailedCount    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (IngestionRunModel) TableName() string {
	return "ingestion_runs"
}

// ToDomain converts the persistence model to a domain Run entity.
func (m *IngestionRunModel) ToDomain() *ingestion.Run {
	return &ingestion.Run{
		ID:             m.ID,
		InstanceID:     m.InstanceID,
		Status:         m.Status,
		Error:          m.Error,
		StartedAt:      m.StartedAt,
		CompletedAt:    m.CompletedAt,
		CreatedAt:      m.CreatedAt,
		TotalOrders:    m.TotalOrders,
		SucceededCount: m.SucceededCount,
		SkippedCount:   m.SkippedCount,
		FailedCount:    m.FailedCount,
	}
}

// FromDomain populates the persistence model from a domain Run entity.
func (m *IngestionRunModel) FromDomain(r *ingestion.Run) {
	m.ID = r.ID
	m.InstanceID = r.InstanceID
	m.Status = r.Status
	m.Error = r.Error
	m.StartedAt = r.StartedAt
	m.CompletedAt = r.CompletedAt
	m.CreatedAt = r.CreatedAt
	m.TotalOrders = r.TotalOrders
	m.SucceededCount = r.SucceededCount
	m.SkippedCount = r.SkippedCount
	m.FailedCount = r.FailedCount
}

// IngestionRunModelFromDomain creates a new persistence model from a domain Run entity.
func IngestionRunModelFromDomain(r *ingestion.Run) *IngestionRunModel {
	m := &IngestionRunModel{}
	m.FromDomain(r)
	return m
}
