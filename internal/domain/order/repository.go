package order

import "context"

// Repository defines the interface for persisting normalized orders
type Repository interface {
	// SaveTree writes the order, both addresses and all items in one
	// transaction. When an order with the same (instance, provider order id)
	// already exists, its previously derived rows are replaced inside the
	// same transaction so a replay never duplicates rows.
	SaveTree(ctx context.Context, tree *OrderTree) error

	// FindByProviderOrderID returns the stored order for a provider order,
	// or shared.ErrNotFound when it has not been ingested
	FindByProviderOrderID(ctx context.Context, instanceID, providerOrderID string) (*StoreOrder, error)

	// CountByInstance returns the number of stored orders for an instance
	CountByInstance(ctx context.Context, instanceID string) (int64, error)

	// ListByInstance returns stored orders for an instance, newest first
	ListByInstance(ctx context.Context, instanceID string, limit, offset int) ([]StoreOrder, error)
}
