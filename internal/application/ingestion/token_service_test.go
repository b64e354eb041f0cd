package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/credential"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

// MockCredentialRepository is a mock implementation of credential.Repository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) FindByInstanceID(ctx context.Context, instanceID string) (*credential.Credential, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Upsert(ctx context.Context, cred *credential.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockCredentialRepository) Delete(ctx context.Context, instanceID string) error {
	args := m.Called(ctx, instanceID)
	return args.Error(0)
}

// MockStateRepository is a mock implementation of credential.StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Create(ctx context.Context, state *credential.InstallState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockStateRepository) Consume(ctx context.Context, state string, ttl time.Duration) error {
	args := m.Called(ctx, state, ttl)
	return args.Error(0)
}

// MockStorefrontGateway is a mock implementation of ingestion.StorefrontGateway
type MockStorefrontGateway struct {
	mock.Mock
}

func (m *MockStorefrontGateway) ExchangeCode(ctx context.Context, code string) (*ingestion.TokenPair, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestion.TokenPair), args.Error(1)
}

func (m *MockStorefrontGateway) RefreshToken(ctx context.Context, refreshToken string) (*ingestion.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestion.TokenPair), args.Error(1)
}

func (m *MockStorefrontGateway) QueryOrders(ctx context.Context, accessToken string, limit, offset int) (*ingestion.OrdersPage, error) {
	args := m.Called(ctx, accessToken, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestion.OrdersPage), args.Error(1)
}

func (m *MockStorefrontGateway) NotifyTokenReceived(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func newTokenService(creds *MockCredentialRepository, states *MockStateRepository, gw *MockStorefrontGateway) *TokenService {
	return NewTokenService(creds, states, gw, time.Hour, zap.NewNop())
}

func TestTokenService_BeginInstall(t *testing.T) {
	creds := new(MockCredentialRepository)
	states := new(MockStateRepository)
	gw := new(MockStorefrontGateway)
	svc := newTokenService(creds, states, gw)

	states.On("Create", mock.Anything, mock.AnythingOfType("*credential.InstallState")).Return(nil)

	state, err := svc.BeginInstall(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.State, 64)
	states.AssertExpectations(t)
}

func TestTokenService_CompleteGrant(t *testing.T) {
	t.Run("stores the exchanged pair and notifies the provider", func(t *testing.T) {
		creds := new(MockCredentialRepository)
		states := new(MockStateRepository)
		gw := new(MockStorefrontGateway)
		svc := newTokenService(creds, states, gw)

		states.On("Consume", mock.Anything, "state-1", time.Hour).Return(nil)
		gw.On("ExchangeCode", mock.Anything, "code-1").
			Return(&ingestion.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
		creds.On("Upsert", mock.Anything, mock.MatchedBy(func(c *credential.Credential) bool {
			return c.InstanceID == "instance-1" && c.RefreshToken == "refresh" && c.AccessToken == "access"
		})).Return(nil)
		gw.On("NotifyTokenReceived", mock.Anything, "access").Return(nil)

		err := svc.CompleteGrant(context.Background(), "state-1", "code-1", "instance-1")
		require.NoError(t, err)
		creds.AssertExpectations(t)
		gw.AssertExpectations(t)
	})

	t.Run("rejected state never reaches the provider", func(t *testing.T) {
		creds := new(MockCredentialRepository)
		states := new(MockStateRepository)
		gw := new(MockStorefrontGateway)
		svc := newTokenService(creds, states, gw)

		states.On("Consume", mock.Anything, "replayed", time.Hour).Return(credential.ErrStateNotFound)

		err := svc.CompleteGrant(context.Background(), "replayed", "code-1", "instance-1")
		assert.ErrorIs(t, err, credential.ErrStateNotFound)
		gw.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything)
	})

	t.Run("failed notification does not fail the install", func(t *testing.T) {
		creds := new(MockCredentialRepository)
		states := new(MockStateRepository)
		gw := new(MockStorefrontGateway)
		svc := newTokenService(creds, states, gw)

		states.On("Consume", mock.Anything, "state-1", time.Hour).Return(nil)
		gw.On("ExchangeCode", mock.Anything, "code-1").
			Return(&ingestion.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
		creds.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		gw.On("NotifyTokenReceived", mock.Anything, "access").Return(ingestion.ErrNetwork)

		err := svc.CompleteGrant(context.Background(), "state-1", "code-1", "instance-1")
		assert.NoError(t, err)
	})
}

func TestTokenService_Refresh(t *testing.T) {
	t.Run("rotates and persists the pair", func(t *testing.T) {
		creds := new(MockCredentialRepository)
		states := new(MockStateRepository)
		gw := new(MockStorefrontGateway)
		svc := newTokenService(creds, states, gw)

		stored := credential.NewCredential("instance-1", "old-refresh", "old-access")
		creds.On("FindByInstanceID", mock.Anything, "instance-1").Return(stored, nil)
		gw.On("RefreshToken", mock.Anything, "old-refresh").
			Return(&ingestion.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)
		creds.On("Upsert", mock.Anything, mock.MatchedBy(func(c *credential.Credential) bool {
			return c.RefreshToken == "new-refresh" && c.AccessToken == "new-access"
		})).Return(nil)

		cred, err := svc.Refresh(context.Background(), "instance-1")
		require.NoError(t, err)
		assert.Equal(t, "new-access", cred.AccessToken)
		assert.Equal(t, "new-refresh", cred.RefreshToken)
		creds.AssertExpectations(t)
	})

	t.Run("no stored credential", func(t *testing.T) {
		creds := new(MockCredentialRepository)
		states := new(MockStateRepository)
		gw := new(MockStorefrontGateway)
		svc := newTokenService(creds, states, gw)

		creds.On("FindByInstanceID", mock.Anything, "unknown").
			Return(nil, credential.ErrCredentialNotFound)

		_, err := svc.Refresh(context.Background(), "unknown")
		assert.ErrorIs(t, err, ingestion.ErrNoCredential)
		gw.AssertNotCalled(t, "RefreshToken", mock.Anything, mock.Anything)
	})

	t.Run("rejected refresh leaves the stored pair untouched", func(t *testing.T) {
		creds := new(MockCredentialRepository)
		states := new(MockStateRepository)
		gw := new(MockStorefrontGateway)
		svc := newTokenService(creds, states, gw)

		stored := credential.NewCredential("instance-1", "old-refresh", "old-access")
		creds.On("FindByInstanceID", mock.Anything, "instance-1").Return(stored, nil)
		gw.On("RefreshToken", mock.Anything, "old-refresh").
			Return(nil, ingestion.ErrAuthRevoked)

		_, err := svc.Refresh(context.Background(), "instance-1")
		assert.ErrorIs(t, err, ingestion.ErrAuthRevoked)
		creds.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
