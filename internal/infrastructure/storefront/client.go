package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response

// Client implements the StorefrontGateway port against the provider's
// HTTP API
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new provider client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// InstallerRedirectURL builds the URL a merchant is sent to to start an
// install, carrying the single-use state nonce
func (c *Client) InstallerRedirectURL(token, state string) string {
	q := url.Values{}
	if token != "" {
		q.Set("token", token)
	}
	q.Set("state", state)
	q.Set("appId", c.config.AppID)
	q.Set("redirectUrl", "")
	return fmt.Sprintf("%s?%s", c.config.InstallerURL, q.Encode())
}

// DashboardRedirectURL is where merchants land after a completed install
func (c *Client) DashboardRedirectURL() string {
	return c.config.DashboardURL
}

// ExchangeCode swaps an authorization code for a token pair
func (c *Client) ExchangeCode(ctx context.Context, code string) (*ingestion.TokenPair, error) {
	return c.requestToken(ctx, tokenRequest{
		GrantType:    grantTypeAuthorizationCode,
		ClientID:     c.config.AppID,
		ClientSecret: c.config.AppSecret,
		Code:         code,
	})
}

// RefreshToken swaps a refresh token for a freshly rotated token pair
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*ingestion.TokenPair, error) {
	return c.requestToken(ctx, tokenRequest{
		GrantType:    grantTypeRefreshToken,
		ClientID:     c.config.AppID,
		ClientSecret: c.config.AppSecret,
		RefreshToken: refreshToken,
	})
}

// requestToken performs a token exchange against the provider
func (c *Client) requestToken(ctx context.Context, req tokenRequest) (*ingestion.TokenPair, error) {
	body, err := c.doJSON(ctx, c.config.TokenURL, "", req)
	if err != nil {
		return nil, err
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unparsable token response: %v", ingestion.ErrProviderRejected, err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token response missing tokens", ingestion.ErrProviderRejected)
	}

	return &ingestion.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// QueryOrders fetches one page of orders at the given offset
func (c *Client) QueryOrders(ctx context.Context, accessToken string, limit, offset int) (*ingestion.OrdersPage, error) {
	req := ordersQueryRequest{
		Query: ordersQuery{
			Paging: ordersQueryPaging{Limit: limit, Offset: offset},
		},
	}

	body, err := c.doJSON(ctx, c.config.OrdersQueryURL, accessToken, req)
	if err != nil {
		return nil, err
	}

	var resp ordersQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unparsable order page: %v", ingestion.ErrProviderRejected, err)
	}

	return &ingestion.OrdersPage{
		Orders:       resp.Orders,
		TotalResults: resp.TotalResults,
	}, nil
}

// NotifyTokenReceived completes the provider's install handshake
func (c *Client) NotifyTokenReceived(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.TokenReceivedURL, nil)
	if err != nil {
		return fmt.Errorf("storefront: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ingestion.ErrNetwork, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d", ingestion.ErrProviderRejected, resp.StatusCode)
	}
	return nil
}

// doJSON performs a JSON POST and classifies transport and status failures.
// The provider expects the raw access token in the Authorization header,
// no Bearer prefix.
func (c *Client) doJSON(ctx context.Context, endpoint, accessToken string, payload any) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ingestion.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ingestion.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", ingestion.ErrAuthRevoked, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", ingestion.ErrProviderRejected, resp.StatusCode)
	}

	return body, nil
}

// Ensure Client implements the StorefrontGateway port
var _ ingestion.StorefrontGateway = (*Client)(nil)
