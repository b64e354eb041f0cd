package ingestion

import "context"

// ---------------------------------------------------------------------------
// Provider order shapes
// ---------------------------------------------------------------------------

// The types below mirror the storefront provider's order JSON. Monetary and
// weight fields arrive as strings and stay strings here; the normalizer is
// the single place they are parsed.

// ProviderStreet is the structured street form of a provider address
type ProviderStreet struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// ProviderAddress is a provider address. Exactly one of Street or the
// free-text AddressLine1 is expected to be present.
type ProviderAddress struct {
	City         string          `json:"city"`
	ZipCode      string          `json:"zipCode"`
	Country      string          `json:"country"`
	AddressLine1 string          `json:"addressLine1"`
	AddressLine2 string          `json:"addressLine2"`
	Street       *ProviderStreet `json:"street"`
}

// ProviderAddressInfo wraps an address as it appears under billingInfo and
// shippingInfo
type ProviderAddressInfo struct {
	Address *ProviderAddress `json:"address"`
}

// ProviderBuyerInfo identifies the buyer of a provider order
type ProviderBuyerInfo struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	IdentityType string `json:"identityType"`
}

// ProviderTotals carries the order-level totals as decimal strings
type ProviderTotals struct {
	Weight   string `json:"weight"`
	Quantity int    `json:"quantity"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
}

// ProviderPriceData carries per-item pricing as decimal strings
type ProviderPriceData struct {
	Price              string `json:"price"`
	TotalPrice         string `json:"totalPrice"`
	TaxIncludedInPrice bool   `json:"taxIncludedInPrice"`
}

// ProviderLineItem is one purchased line of a provider order
type ProviderLineItem struct {
	Index     int                `json:"index"`
	Quantity  int                `json:"quantity"`
	Name      string             `json:"name"`
	SKU       string             `json:"sku"`
	Weight    string             `json:"weight"`
	PriceData *ProviderPriceData `json:"priceData"`
}

// ProviderOrder is one order as returned by the provider's query endpoint
type ProviderOrder struct {
	ID                string               `json:"id"`
	Number            int64                `json:"number"`
	DateCreated       string               `json:"dateCreated"`
	Currency          string               `json:"currency"`
	WeightUnit        string               `json:"weightUnit"`
	PaymentStatus     string               `json:"paymentStatus"`
	FulfillmentStatus string               `json:"fulfillmentStatus"`
	BuyerInfo         *ProviderBuyerInfo   `json:"buyerInfo"`
	Totals            *ProviderTotals      `json:"totals"`
	BillingInfo       *ProviderAddressInfo `json:"billingInfo"`
	ShippingInfo      *ProviderAddressInfo `json:"shippingInfo"`
	LineItems         []ProviderLineItem   `json:"lineItems"`
}

// OrdersPage is one page of the provider's paginated order query
type OrdersPage struct {
	Orders []ProviderOrder
	// TotalResults is the provider's grand total of matching orders,
	// reported with every page
	TotalResults int64
}

// TokenPair is the result of a provider token exchange. Refresh responses
// rotate both tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ---------------------------------------------------------------------------
// StorefrontGateway Port
// ---------------------------------------------------------------------------

// StorefrontGateway is the port to the storefront provider's HTTP API.
// Implementations classify failures with the sentinel errors of this
// package: ErrNetwork for transport failures, ErrProviderRejected for
// token endpoint rejections and ErrAuthRevoked for revoked access tokens.
type StorefrontGateway interface {
	// ExchangeCode swaps an authorization code for a token pair
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)

	// RefreshToken swaps a refresh token for a freshly rotated token pair.
	// The submitted refresh token is invalidated by the provider.
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)

	// QueryOrders fetches one page of orders at the given offset
	QueryOrders(ctx context.Context, accessToken string, limit, offset int) (*OrdersPage, error)

	// NotifyTokenReceived tells the provider the install flow finished.
	// Best effort; callers may ignore the error.
	NotifyTokenReceived(ctx context.Context, accessToken string) error
}
