package ingestion

import "errors"

// Pipeline Errors
var (
	// Credential / token errors
	ErrNoCredential     = errors.New("ingestion: no credential stored for instance")
	ErrProviderRejected = errors.New("ingestion: provider rejected the token request")
	ErrNetwork          = errors.New("ingestion: provider unreachable")
	ErrAuthRevoked      = errors.New("ingestion: provider rejected the access token")

	// Per-order errors
	ErrMalformedOrder = errors.New("ingestion: provider order has malformed fields")
	ErrMissingAddress = errors.New("ingestion: provider order is missing an address")

	// Stage errors
	ErrCrawlFailed = errors.New("ingestion: order crawl failed")
	ErrWriteFailed = errors.New("ingestion: order write failed")

	// Run lifecycle errors
	ErrRunInProgress = errors.New("ingestion: a run is already in progress for instance")
	ErrRunNotFound   = errors.New("ingestion: run not found")
	ErrCancelled     = errors.New("ingestion: run cancelled")
)
