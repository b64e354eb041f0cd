package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/order"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/shared"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// SaveTree writes an order together with its addresses and items in one
// transaction. A tree already stored for the same (instance, provider order)
// pair is replaced wholesale, which makes re-ingesting a page idempotent.
func (r *GormOrderRepository) SaveTree(ctx context.Context, tree *order.OrderTree) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.StoreOrderModel
		err := tx.Where("instance_id = ? AND provider_order_id = ?",
			tree.Order.InstanceID, tree.Order.ProviderOrderID).
			First(&existing).Error
		switch {
		case err == nil:
			if err := deleteOrderTree(tx, &existing); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first time this provider order is seen
		default:
			return err
		}

		if tree.Billing != nil {
			billing := &models.AddressModel{}
			billing.FromDomain(tree.Billing)
			if err := tx.Create(billing).Error; err != nil {
				return err
			}
		}
		if tree.Shipping != nil {
			shipping := &models.AddressModel{}
			shipping.FromDomain(tree.Shipping)
			if err := tx.Create(shipping).Error; err != nil {
				return err
			}
		}

		orderModel := models.StoreOrderModelFromDomain(tree.Order)
		if err := tx.Create(orderModel).Error; err != nil {
			return err
		}

		for i := range tree.Items {
			item := &models.OrderItemModel{}
			item.FromDomain(&tree.Items[i])
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// deleteOrderTree removes a stored order with its items and addresses
func deleteOrderTree(tx *gorm.DB, existing *models.StoreOrderModel) error {
	if err := tx.Delete(&models.OrderItemModel{}, "order_id = ?", existing.ID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.StoreOrderModel{}, "id = ?", existing.ID).Error; err != nil {
		return err
	}
	addressIDs := make([]any, 0, 2)
	if existing.BillingAddressID != nil {
		addressIDs = append(addressIDs, *existing.BillingAddressID)
	}
	if existing.ShippingAddressID != nil {
		addressIDs = append(addressIDs, *existing.ShippingAddressID)
	}
	if len(addressIDs) > 0 {
		if err := tx.Delete(&models.AddressModel{}, "id IN ?", addressIDs).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByProviderOrderID finds a stored order by its provider identity
func (r *GormOrderRepository) FindByProviderOrderID(ctx context.Context, instanceID, providerOrderID string) (*order.StoreOrder, error) {
	var model models.StoreOrderModel
	if err := r.db.WithContext(ctx).
		Where("instance_id = ? AND provider_order_id = ?", instanceID, providerOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByInstance returns how many orders are stored for an instance
func (r *GormOrderRepository) CountByInstance(ctx context.Context, instanceID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StoreOrderModel{}).
		Where("instance_id = ?", instanceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByInstance returns stored orders for an instance, newest first
func (r *GormOrderRepository) ListByInstance(ctx context.Context, instanceID string, limit, offset int) ([]order.StoreOrder, error) {
	var orderModels []models.StoreOrderModel
	if err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Order("order_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.StoreOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Ensure GormOrderRepository implements the repository interface
var _ order.Repository = (*GormOrderRepository)(nil)
