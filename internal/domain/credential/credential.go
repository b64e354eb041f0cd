package credential

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

// Credential Errors
var (
	ErrCredentialNotFound = errors.New("credential: no credential stored for instance")
	ErrStateNotFound      = errors.New("credential: install state not found or already used")
	ErrStateExpired       = errors.New("credential: install state expired")
)

// stateLength is the length of the generated install state nonce
const stateLength = 64

const stateAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Credential holds the OAuth token pair issued by the storefront provider
// for a single tenant installation. The instance ID identifies the tenant;
// exactly one credential row exists per instance.
type Credential struct {
	InstanceID   string
	RefreshToken string
	AccessToken  string
	UpdatedAt    time.Time
}

// NewCredential creates a credential for an instance
func NewCredential(instanceID, refreshToken, accessToken string) *Credential {
	return &Credential{
		InstanceID:   instanceID,
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
		UpdatedAt:    time.Now(),
	}
}

// Rotate replaces both tokens with a freshly issued pair
func (c *Credential) Rotate(refreshToken, accessToken string) {
	c.RefreshToken = refreshToken
	c.AccessToken = accessToken
	c.UpdatedAt = time.Now()
}

// InstallState is a single-use nonce created at the start of the provider
// install flow and consumed when the grant callback arrives.
type InstallState struct {
	State     string
	CreatedAt time.Time
}

// NewInstallState creates an install state with a random 64-character nonce
func NewInstallState() (*InstallState, error) {
	buf := make([]byte, stateLength)
	max := big.NewInt(int64(len(stateAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		buf[i] = stateAlphabet[n.Int64()]
	}
	return &InstallState{
		State:     string(buf),
		CreatedAt: time.Now(),
	}, nil
}

// ExpiredAt reports whether the state is older than ttl at the given time
func (s *InstallState) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// Repository defines the interface for persisting credentials
type Repository interface {
	// FindByInstanceID returns the credential for an instance,
	// or ErrCredentialNotFound when none is stored
	FindByInstanceID(ctx context.Context, instanceID string) (*Credential, error)

	// Upsert atomically inserts or replaces the credential for the instance
	Upsert(ctx context.Context, cred *Credential) error

	// Delete removes the credential for an instance
	Delete(ctx context.Context, instanceID string) error
}

// StateRepository defines the interface for persisting install states
type StateRepository interface {
	// Create stores a new install state
	Create(ctx context.Context, state *InstallState) error

	// Consume removes the state, enforcing single use. Returns
	// ErrStateNotFound when the state is unknown or already consumed,
	// ErrStateExpired when it is older than ttl (the row is removed either way).
	Consume(ctx context.Context, state string, ttl time.Duration) error
}
