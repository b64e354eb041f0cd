package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

// pageSize is the number of orders requested per provider page
const pageSize = 100

// Crawler walks the provider's paginated order query from offset zero until
// the result set is exhausted, handing every order to a callback as it
// arrives so peak memory stays bounded by one page.
type Crawler struct {
	gateway       ingestion.StorefrontGateway
	retryAttempts uint64
	logger        *zap.Logger
}

// NewCrawler creates a new Crawler. retryAttempts bounds how often a single
// page fetch is retried before the crawl is abandoned.
func NewCrawler(gateway ingestion.StorefrontGateway, retryAttempts uint64, logger *zap.Logger) *Crawler {
	return &Crawler{
		gateway:       gateway,
		retryAttempts: retryAttempts,
		logger:        logger,
	}
}

// Crawl fetches every order of the instance behind accessToken and passes
// each one to handle. It returns the number of orders fetched. The crawl
// stops when a page comes back short or the provider's reported total has
// been reached, whichever happens first; a provider that keeps promising
// more results while returning empty pages therefore cannot loop us forever.
func (c *Crawler) Crawl(ctx context.Context, accessToken string, handle func(ingestion.ProviderOrder)) (int, error) {
	offset := 0
	fetched := 0

	for {
		select {
		case <-ctx.Done():
			return fetched, fmt.Errorf("%w: %v", ingestion.ErrCancelled, ctx.Err())
		default:
		}

		page, err := c.fetchPage(ctx, accessToken, offset)
		if err != nil {
			return fetched, err
		}

		for _, o := range page.Orders {
			handle(o)
		}
		fetched += len(page.Orders)
		offset += len(page.Orders)

		c.logger.Debug("order page fetched",
			zap.Int("offset", offset),
			zap.Int("page_items", len(page.Orders)),
			zap.Int64("total_results", page.TotalResults),
		)

		if len(page.Orders) < pageSize || int64(fetched) >= page.TotalResults {
			return fetched, nil
		}
	}
}

// fetchPage fetches one page, retrying transient failures with exponential
// backoff. Revoked credentials are never retried.
func (c *Crawler) fetchPage(ctx context.Context, accessToken string, offset int) (*ingestion.OrdersPage, error) {
	var page *ingestion.OrdersPage

	operation := func() error {
		p, err := c.gateway.QueryOrders(ctx, accessToken, pageSize, offset)
		if err != nil {
			if errors.Is(err, ingestion.ErrAuthRevoked) {
				return backoff.Permanent(err)
			}
			c.logger.Warn("page fetch failed, retrying",
				zap.Int("offset", offset),
				zap.Error(err),
			)
			return err
		}
		page = p
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retryAttempts),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, ingestion.ErrAuthRevoked) || errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: offset %d: %v", ingestion.ErrCrawlFailed, offset, err)
	}
	return page, nil
}
