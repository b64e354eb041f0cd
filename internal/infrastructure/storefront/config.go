package storefront

import (
	"errors"
	"time"
)

// Provider endpoint defaults
const (
	DefaultTokenURL         = "https://www.wixapis.com/oauth/access"
	DefaultOrdersQueryURL   = "https://www.wixapis.com/stores/v2/orders/query"
	DefaultInstallerURL     = "https://www.wix.com/installer/install"
	DefaultTokenReceivedURL = "https://www.wix.com/installer/token-received"
	DefaultDashboardURL     = "https://www.wix.com/installer/close-window"
)

// Errors for storefront configuration
var (
	ErrConfigMissingAppID     = errors.New("storefront: app ID is required")
	ErrConfigMissingAppSecret = errors.New("storefront: app secret is required")
)

// Config holds the provider app credentials and endpoint URLs
type Config struct {
	// AppID is the application ID registered with the provider
	AppID string
	// AppSecret is the application secret used for token exchanges
	AppSecret string
	// TokenURL is the OAuth token endpoint
	TokenURL string
	// OrdersQueryURL is the paginated order query endpoint
	OrdersQueryURL string
	// InstallerURL is where merchants are sent to start an install
	InstallerURL string
	// TokenReceivedURL completes the provider's install handshake
	TokenReceivedURL string
	// DashboardURL is where merchants are sent after a finished install
	DashboardURL string
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
}

// NewConfig creates a provider configuration with endpoint defaults
func NewConfig(appID, appSecret string) *Config {
	return &Config{
		AppID:            appID,
		AppSecret:        appSecret,
		TokenURL:         DefaultTokenURL,
		OrdersQueryURL:   DefaultOrdersQueryURL,
		InstallerURL:     DefaultInstallerURL,
		TokenReceivedURL: DefaultTokenReceivedURL,
		DashboardURL:     DefaultDashboardURL,
		Timeout:          30 * time.Second,
	}
}

// Validate validates the configuration and fills endpoint defaults
func (c *Config) Validate() error {
	if c.AppID == "" {
		return ErrConfigMissingAppID
	}
	if c.AppSecret == "" {
		return ErrConfigMissingAppSecret
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.OrdersQueryURL == "" {
		c.OrdersQueryURL = DefaultOrdersQueryURL
	}
	if c.InstallerURL == "" {
		c.InstallerURL = DefaultInstallerURL
	}
	if c.TokenReceivedURL == "" {
		c.TokenReceivedURL = DefaultTokenReceivedURL
	}
	if c.DashboardURL == "" {
		c.DashboardURL = DefaultDashboardURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
