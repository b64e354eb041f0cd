package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Enums
// ---------------------------------------------------------------------------

// PaymentStatus represents the payment state reported by the provider
type PaymentStatus string

const (
	PaymentStatusUnspecified       PaymentStatus = "UNSPECIFIED_PAYMENT_STATUS"
	PaymentStatusPaid              PaymentStatus = "PAID"
	PaymentStatusNotPaid           PaymentStatus = "NOT_PAID"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentStatusFullyRefunded     PaymentStatus = "FULLY_REFUNDED"
	PaymentStatusPending           PaymentStatus = "PENDING"
)

// IsValid returns true if the payment status is a known provider value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnspecified, PaymentStatusPaid, PaymentStatusNotPaid,
		PaymentStatusPartiallyRefunded, PaymentStatusFullyRefunded, PaymentStatusPending:
		return true
	default:
		return false
	}
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// FulfillmentStatus represents the fulfillment state reported by the provider
type FulfillmentStatus string

const (
	FulfillmentStatusFulfilled          FulfillmentStatus = "FULFILLED"
	FulfillmentStatusNotFulfilled       FulfillmentStatus = "NOT_FULFILLED"
	FulfillmentStatusCanceled           FulfillmentStatus = "CANCELED"
	FulfillmentStatusPartiallyFulfilled FulfillmentStatus = "PARTIALLY_FULFILLED"
)

// IsValid returns true if the fulfillment status is a known provider value
func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case FulfillmentStatusFulfilled, FulfillmentStatusNotFulfilled,
		FulfillmentStatusCanceled, FulfillmentStatusPartiallyFulfilled:
		return true
	default:
		return false
	}
}

// String returns the string representation of FulfillmentStatus
func (s FulfillmentStatus) String() string {
	return string(s)
}

// WeightUnit represents the weight unit used by the storefront
type WeightUnit string

const (
	WeightUnitUnspecified WeightUnit = "UNSPECIFIED_WEIGHT_UNIT"
	WeightUnitKG          WeightUnit = "KG"
	WeightUnitLB          WeightUnit = "LB"
)

// IsValid returns true if the weight unit is a known provider value
func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitUnspecified, WeightUnitKG, WeightUnitLB:
		return true
	default:
		return false
	}
}

// String returns the string representation of WeightUnit
func (u WeightUnit) String() string {
	return string(u)
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Address is a normalized postal address. The provider sends either a
// structured street (name + number) or a free-text line; the normalizer
// collapses both into AddressLine1.
type Address struct {
	ID           uuid.UUID
	City         string
	ZipCode      string
	Country      string
	AddressLine1 string
	AddressLine2 string
}

// OrderItem is a single purchased line of a store order
type OrderItem struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	Name    string
	SKU     string
	Price   decimal.Decimal
	Total   decimal.Decimal
}

// StoreOrder is the normalized relational form of one provider order.
// The (InstanceID, ProviderOrderID) pair is the idempotency key: re-ingesting
// the same provider order replaces the previously written tree.
type StoreOrder struct {
	ID                  uuid.UUID
	InstanceID          string
	ProviderOrderID     string
	ProviderOrderNumber int64
	OrderDate           int64 // epoch seconds
	Currency            string
	WeightUnit          WeightUnit
	PaymentStatus       PaymentStatus
	FulfillmentStatus   FulfillmentStatus
	TotalPrice          decimal.Decimal
	Subtotal            decimal.Decimal
	Tax                 decimal.Decimal
	Weight              decimal.Decimal
	Quantity            int
	BuyerEmail          string
	BuyerName           string
	BuyerPhone          string
	BillingAddressID    uuid.UUID
	ShippingAddressID   uuid.UUID
	CreatedAt           time.Time
}

// OrderTree is a store order bundled with the rows derived from the same
// provider order. It is written in a single transaction.
type OrderTree struct {
	Order    *StoreOrder
	Billing  *Address
	Shipping *Address
	Items    []OrderItem
}
