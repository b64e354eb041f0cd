package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

func newTestConfig(t *testing.T, serverURL string) *Config {
	t.Helper()
	cfg := NewConfig("test-app-id", "test-app-secret")
	cfg.TokenURL = serverURL + "/oauth/access"
	cfg.OrdersQueryURL = serverURL + "/stores/v2/orders/query"
	cfg.TokenReceivedURL = serverURL + "/apps/v1/token-received"
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestClient_ExchangeCode(t *testing.T) {
	var captured tokenRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/oauth/access", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "access-123",
			RefreshToken: "refresh-456",
		})
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	pair, err := client.ExchangeCode(context.Background(), "auth-code-789")
	require.NoError(t, err)

	assert.Equal(t, "access-123", pair.AccessToken)
	assert.Equal(t, "refresh-456", pair.RefreshToken)
	assert.Equal(t, grantTypeAuthorizationCode, captured.GrantType)
	assert.Equal(t, "test-app-id", captured.ClientID)
	assert.Equal(t, "test-app-secret", captured.ClientSecret)
	assert.Equal(t, "auth-code-789", captured.Code)
	assert.Empty(t, captured.RefreshToken)
}

func TestClient_RefreshToken(t *testing.T) {
	var captured tokenRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		})
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	pair, err := client.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)

	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
	assert.Equal(t, grantTypeRefreshToken, captured.GrantType)
	assert.Equal(t, "old-refresh", captured.RefreshToken)
	assert.Empty(t, captured.Code)
}

func TestClient_RefreshToken_MissingTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "only-access"})
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	_, err = client.RefreshToken(context.Background(), "old-refresh")
	assert.ErrorIs(t, err, ingestion.ErrProviderRejected)
}

func TestClient_QueryOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stores/v2/orders/query", r.URL.Path)
		require.Equal(t, "access-token-abc", r.Header.Get("Authorization"))

		var req ordersQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 100, req.Query.Paging.Limit)
		assert.Equal(t, 200, req.Query.Paging.Offset)

		_ = json.NewEncoder(w).Encode(ordersQueryResponse{
			Orders: []ingestion.ProviderOrder{
				{ID: "order-1", Number: 1001},
				{ID: "order-2", Number: 1002},
			},
			Metadata:     ordersQueryMetadata{Items: 2, Offset: 200},
			TotalResults: 237,
		})
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	page, err := client.QueryOrders(context.Background(), "access-token-abc", 100, 200)
	require.NoError(t, err)

	assert.Len(t, page.Orders, 2)
	assert.Equal(t, "order-1", page.Orders[0].ID)
	assert.Equal(t, int64(1001), page.Orders[0].Number)
	assert.Equal(t, int64(237), page.TotalResults)
}

func TestClient_QueryOrders_AuthRevoked(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client, err := NewClient(newTestConfig(t, server.URL))
		require.NoError(t, err)

		_, err = client.QueryOrders(context.Background(), "revoked-token", 100, 0)
		assert.ErrorIs(t, err, ingestion.ErrAuthRevoked, "status %d", status)

		server.Close()
	}
}

func TestClient_QueryOrders_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	_, err = client.QueryOrders(context.Background(), "token", 100, 0)
	assert.ErrorIs(t, err, ingestion.ErrProviderRejected)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use, every request fails at the transport

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	_, err = client.QueryOrders(context.Background(), "token", 100, 0)
	assert.ErrorIs(t, err, ingestion.ErrNetwork)

	_, err = client.ExchangeCode(context.Background(), "code")
	assert.ErrorIs(t, err, ingestion.ErrNetwork)
}

func TestClient_NotifyTokenReceived(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig(t, server.URL))
	require.NoError(t, err)

	err = client.NotifyTokenReceived(context.Background(), "access-xyz")
	require.NoError(t, err)
	assert.Equal(t, "access-xyz", gotAuth)
}

func TestClient_InstallerRedirectURL(t *testing.T) {
	client, err := NewClient(NewConfig("app-id", "app-secret"))
	require.NoError(t, err)

	redirect := client.InstallerRedirectURL("install-token", "state-nonce")
	assert.Contains(t, redirect, "token=install-token")
	assert.Contains(t, redirect, "state=state-nonce")
	assert.Contains(t, redirect, "appId=app-id")
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(&Config{AppSecret: "secret"})
	assert.ErrorIs(t, err, ErrConfigMissingAppID)

	_, err = NewClient(&Config{AppID: "id"})
	assert.ErrorIs(t, err, ErrConfigMissingAppSecret)
}
