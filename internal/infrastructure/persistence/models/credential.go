package models

import (
	"time"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/credential"
)

// CredentialModel is the persistence model for the Credential domain entity.
// One row exists per installed instance.
type CredentialModel struct {
	InstanceID   string    `gorm:"type:varchar(64);primary_key"`
	RefreshToken string    `gorm:"type:text;not null"`
	AccessToken  string    `gorm:"type:text;not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CredentialModel) TableName() string {
	return "store_credentials"
}

// ToDomain converts the persistence model to a domain Credential entity.
func (m *CredentialModel) ToDomain() *credential.Credential {
	return &credential.Credential{
		InstanceID:   m.InstanceID,
		RefreshToken: m.RefreshToken,
		AccessToken:  m.AccessToken,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Credential entity.
func (m *CredentialModel) FromDomain(c *credential.Credential) {
	m.InstanceID = c.InstanceID
	m.RefreshToken = c.RefreshToken
	m.AccessToken = c.AccessToken
	m.UpdatedAt = c.UpdatedAt
}

// CredentialModelFromDomain creates a new persistence model from a domain Credential entity.
func CredentialModelFromDomain(c *credential.Credential) *CredentialModel {
	m := &CredentialModel{}
	m.FromDomain(c)
	return m
}

// InstallStateModel is the persistence model for the InstallState nonce.
type InstallStateModel struct {
	State     string    `gorm:"type:varchar(64);primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InstallStateModel) TableName() string {
	return "install_states"
}

// ToDomain converts the persistence model to a domain InstallState entity.
func (m *InstallStateModel) ToDomain() *credential.InstallState {
	return &credential.InstallState{
		State:     m.State,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain InstallState entity.
func (m *InstallStateModel) FromDomain(s *credential.InstallState) {
	m.State = s.State
	m.CreatedAt = s.CreatedAt
}
