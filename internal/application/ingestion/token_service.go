package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/credential"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

// TokenService owns the credential lifecycle: the install handshake that
// first obtains a token pair, and the refresh that rotates it before every
// crawl.
type TokenService struct {
	credentials credential.Repository
	states      credential.StateRepository
	gateway     ingestion.StorefrontGateway
	stateTTL    time.Duration
	logger      *zap.Logger
}

// NewTokenService creates a new TokenService
func NewTokenService(
	credentials credential.Repository,
	states credential.StateRepository,
	gateway ingestion.StorefrontGateway,
	stateTTL time.Duration,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		credentials: credentials,
		states:      states,
		gateway:     gateway,
		stateTTL:    stateTTL,
		logger:      logger,
	}
}

// BeginInstall creates and stores the single-use state nonce that ties the
// provider's grant callback back to an install we started
func (s *TokenService) BeginInstall(ctx context.Context) (*credential.InstallState, error) {
	state, err := credential.NewInstallState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate install state: %w", err)
	}
	if err := s.states.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store install state: %w", err)
	}
	return state, nil
}

// CompleteGrant finishes the install flow: it burns the state nonce,
// exchanges the authorization code for a token pair and stores the pair
// for the instance. Reinstalling an instance replaces its stored pair.
func (s *TokenService) CompleteGrant(ctx context.Context, state, code, instanceID string) error {
	if err := s.states.Consume(ctx, state, s.stateTTL); err != nil {
		return err
	}

	pair, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	cred := credential.NewCredential(instanceID, pair.RefreshToken, pair.AccessToken)
	if err := s.credentials.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	// Best effort: the credential is already durable, a failed handshake
	// notification must not fail the install
	if err := s.gateway.NotifyTokenReceived(ctx, pair.AccessToken); err != nil {
		s.logger.Warn("token received notification failed",
			zap.String("instance_id", instanceID),
			zap.Error(err),
		)
	}

	s.logger.Info("install completed", zap.String("instance_id", instanceID))
	return nil
}

// Refresh rotates the stored token pair for an instance and returns the
// credential carrying the fresh access token. The provider invalidates the
// old refresh token on every exchange, so the rotated pair is persisted
// before the credential is handed to the caller.
func (s *TokenService) Refresh(ctx context.Context, instanceID string) (*credential.Credential, error) {
	cred, err := s.credentials.FindByInstanceID(ctx, instanceID)
	if err != nil {
		if errors.Is(err, credential.ErrCredentialNotFound) {
			return nil, fmt.Errorf("%w: instance %s", ingestion.ErrNoCredential, instanceID)
		}
		return nil, err
	}

	pair, err := s.gateway.RefreshToken(ctx, cred.RefreshToken)
	if err != nil {
		return nil, err
	}

	cred.Rotate(pair.RefreshToken, pair.AccessToken)
	if err := s.credentials.Upsert(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to store rotated credential: %w", err)
	}

	return cred, nil
}
