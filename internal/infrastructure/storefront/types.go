package storefront

import "github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"

// Grant types accepted by the provider token endpoint
const (
	grantTypeAuthorizationCode = "authorization_code"
	grantTypeRefreshToken      = "refresh_token"
)

// tokenRequest is the body of a token exchange. Code is set for
// authorization-code exchanges, RefreshToken for refreshes.
type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// tokenResponse is the provider's token endpoint response
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ordersQueryPaging selects one page of the order query
type ordersQueryPaging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ordersQuery struct {
	Paging ordersQueryPaging `json:"paging"`
}

// ordersQueryRequest is the body of the paginated order query
type ordersQueryRequest struct {
	Query ordersQuery `json:"query"`
}

// ordersQueryMetadata describes the returned page
type ordersQueryMetadata struct {
	Items  int `json:"items"`
	Offset int `json:"offset"`
}

// ordersQueryResponse is the provider's order query response. TotalResults
// is the grand total of matching orders, not the page size.
type ordersQueryResponse struct {
	Orders       []ingestion.ProviderOrder `json:"orders"`
	Metadata     ordersQueryMetadata       `json:"metadata"`
	TotalResults int64                     `json:"totalResults"`
}
