package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/order"
)

// AddressModel is the persistence model for the Address domain entity.
type AddressModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	City         string    `gorm:"type:varchar(255);not null"`
	ZipCode      string    `gorm:"type:varchar(32);not null"`
	Country      string    `gorm:"type:varchar(64);not null"`
	AddressLine1 string    `gorm:"type:varchar(255);not null"`
	AddressLine2 string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *order.Address {
	return &order.Address{
		ID:           m.ID,
		City:         m.City,
		ZipCode:      m.ZipCode,
		Country:      m.Country,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *order.Address) {
	m.ID = a.ID
	m.City = a.City
	m.ZipCode = a.ZipCode
	m.Country = a.Country
	m.AddressLine1 = a.AddressLine1
	m.AddressLine2 = a.AddressLine2
}

// StoreOrderModel is the persistence model for the StoreOrder domain entity.
// The (instance_id, provider_order_id) pair carries a unique index so the
// same provider order can never be stored twice for one instance.
type StoreOrderModel struct {
	ID                  uuid.UUID               `gorm:"type:uuid;primary_key"`
	InstanceID          string                  `gorm:"type:varchar(64);not null;uniqueIndex:idx_store_orders_instance_provider,priority:1;index:idx_store_orders_instance,priority:1"`
	ProviderOrderID     string                  `gorm:"type:varchar(64);not null;uniqueIndex:idx_store_orders_instance_provider,priority:2"`
	ProviderOrderNumber int64                   `gorm:"not null"`
	OrderDate           int64                   `gorm:"not null;index"`
	Currency            string                  `gorm:"type:varchar(8);not null"`
	WeightUnit          order.WeightUnit        `gorm:"type:varchar(32);not null"`
	PaymentStatus       order.PaymentStatus     `gorm:"type:varchar(32);not null"`
	FulfillmentStatus   order.FulfillmentStatus `gorm:"type:varchar(32);not null"`
	TotalPrice          decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Subtotal            decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Tax                 decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Weight              decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity            int                     `gorm:"not null;default:0"`
	BuyerEmail          string                  `gorm:"type:varchar(255);not null"`
	BuyerName           string                  `gorm:"type:varchar(255);not null"`
	BuyerPhone          string                  `gorm:"type:varchar(64)"`
	BillingAddressID    *uuid.UUID              `gorm:"type:uuid"`
	ShippingAddressID   *uuid.UUID              `gorm:"type:uuid"`
	CreatedAt           time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreOrderModel) TableName() string {
	return "store_orders"
}

// ToDomain converts the persistence model to a domain StoreOrder entity.
func (m *StoreOrderModel) ToDomain() *order.StoreOrder {
	o := &order.StoreOrder{
		ID:                  m.ID,
		InstanceID:          m.InstanceID,
		ProviderOrderID:     m.ProviderOrderID,
		ProviderOrderNumber: m.ProviderOrderNumber,
		OrderDate:           m.OrderDate,
		Currency:            m.Currency,
		WeightUnit:          m.WeightUnit,
		PaymentStatus:       m.PaymentStatus,
		FulfillmentStatus:   m.FulfillmentStatus,
		TotalPrice:          m.TotalPrice,
		Subtotal:            m.Subtotal,
		Tax:                 m.Tax,
		Weight:              m.Weight,
		Quantity:            m.Quantity,
		BuyerEmail:          m.BuyerEmail,
		BuyerName:           m.BuyerName,
		BuyerPhone:          m.BuyerPhone,
		CreatedAt:           m.CreatedAt,
	}
	if m.BillingAddressID != nil {
		o.BillingAddressID = *m.BillingAddressID
	}
	if m.ShippingAddressID != nil {
		o.ShippingAddressID = *m.ShippingAddressID
	}
	return o
}

// FromDomain populates the persistence model from a domain StoreOrder entity.
func (m *StoreOrderModel) FromDomain(o *order.StoreOrder) {
	m.ID = o.ID
	m.InstanceID = o.InstanceID
	m.ProviderOrderID = o.ProviderOrderID
	m.ProviderOrderNumber = o.ProviderOrderNumber
	m.OrderDate = o.OrderDate
	m.Currency = o.Currency
	m.WeightUnit = o.WeightUnit
	m.PaymentStatus = o.PaymentStatus
	m.FulfillmentStatus = o.FulfillmentStatus
	m.TotalPrice = o.TotalPrice
	m.Subtotal = o.Subtotal
	m.Tax = o.Tax
	m.Weight = o.Weight
	m.Quantity = o.Quantity
	m.BuyerEmail = o.BuyerEmail
	m.BuyerName = o.BuyerName
	m.BuyerPhone = o.BuyerPhone
	m.CreatedAt = o.CreatedAt
	if o.BillingAddressID != uuid.Nil {
		id := o.BillingAddressID
		m.BillingAddressID = &id
	} else {
		m.BillingAddressID = nil
	}
	if o.ShippingAddressID != uuid.Nil {
		id := o.ShippingAddressID
		m.ShippingAddressID = &id
	} else {
		m.ShippingAddressID = nil
	}
}

// StoreOrderModelFromDomain creates a new persistence model from a domain StoreOrder entity.
func StoreOrderModelFromDomain(o *order.StoreOrder) *StoreOrderModel {
	m := &StoreOrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the OrderItem domain entity.
type OrderItemModel struct {
	ID      uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name    string          `gorm:"type:varchar(255);not null"`
	SKU     string          `gorm:"type:varchar(128)"`
	Price   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:      m.ID,
		OrderID: m.OrderID,
		Name:    m.Name,
		SKU:     m.SKU,
		Price:   m.Price,
		Total:   m.Total,
	}
}

// FromDomain populates the persistence model from a domain OrderItem entity.
func (m *OrderItemModel) FromDomain(item *order.OrderItem) {
	m.ID = item.ID
	m.OrderID = item.OrderID
	m.Name = item.Name
	m.SKU = item.SKU
	m.Price = item.Price
	m.Total = item.Total
}
