package ingestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/order"
)

// Normalizer maps one provider order into the relational tree: one order
// row, one billing and one shipping address, N item rows. All identifiers
// are freshly generated; the normalizer never consults storage.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a provider order. A single unparsable numeric or date
// field fails the whole order so a partially translated record is never
// written.
func (n *Normalizer) Normalize(instanceID string, po *ingestion.ProviderOrder) (*order.OrderTree, error) {
	orderDate, err := parseOrderDate(po.DateCreated)
	if err != nil {
		return nil, err
	}

	billing, err := normalizeAddress(po.BillingInfo)
	if err != nil {
		return nil, fmt.Errorf("billing: %w", err)
	}
	shipping, err := normalizeAddress(po.ShippingInfo)
	if err != nil {
		return nil, fmt.Errorf("shipping: %w", err)
	}

	totals := po.Totals
	if totals == nil {
		totals = &ingestion.ProviderTotals{}
	}
	total, err := parseAmount("total", totals.Total)
	if err != nil {
		return nil, err
	}
	subtotal, err := parseAmount("subtotal", totals.Subtotal)
	if err != nil {
		return nil, err
	}
	tax, err := parseAmount("tax", totals.Tax)
	if err != nil {
		return nil, err
	}
	weight, err := parseAmount("weight", totals.Weight)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New()
	items := make([]order.OrderItem, 0, len(po.LineItems))
	for _, li := range po.LineItems {
		item, err := normalizeItem(orderID, &li)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var email, name, phone string
	if po.BuyerInfo != nil {
		email = po.BuyerInfo.Email
		name = strings.TrimSpace(po.BuyerInfo.FirstName + " " + po.BuyerInfo.LastName)
		phone = po.BuyerInfo.Phone
	}

	storeOrder := &order.StoreOrder{
		ID:                  orderID,
		InstanceID:          instanceID,
		ProviderOrderID:     po.ID,
		ProviderOrderNumber: po.Number,
		OrderDate:           orderDate,
		Currency:            po.Currency,
		WeightUnit:          normalizeWeightUnit(po.WeightUnit),
		PaymentStatus:       normalizePaymentStatus(po.PaymentStatus),
		FulfillmentStatus:   normalizeFulfillmentStatus(po.FulfillmentStatus),
		TotalPrice:          total,
		Subtotal:            subtotal,
		Tax:                 tax,
		Weight:              weight,
		Quantity:            totals.Quantity,
		BuyerEmail:          email,
		BuyerName:           name,
		BuyerPhone:          phone,
		BillingAddressID:    billing.ID,
		ShippingAddressID:   shipping.ID,
		CreatedAt:           time.Now(),
	}

	return &order.OrderTree{
		Order:    storeOrder,
		Billing:  billing,
		Shipping: shipping,
		Items:    items,
	}, nil
}

// normalizeAddress resolves the provider's two address encodings. A
// structured street wins over the free-text line; an address carrying
// neither cannot be stored.
func normalizeAddress(info *ingestion.ProviderAddressInfo) (*order.Address, error) {
	if info == nil || info.Address == nil {
		return nil, ingestion.ErrMissingAddress
	}
	a := info.Address

	var line1 string
	switch {
	case a.Street != nil && a.Street.Name != "":
		line1 = strings.TrimSpace(a.Street.Name + " " + a.Street.Number)
	case a.AddressLine1 != "":
		line1 = a.AddressLine1
	default:
		return nil, ingestion.ErrMissingAddress
	}

	return &order.Address{
		ID:           uuid.New(),
		City:         a.City,
		ZipCode:      a.ZipCode,
		Country:      a.Country,
		AddressLine1: line1,
		AddressLine2: a.AddressLine2,
	}, nil
}

func normalizeItem(orderID uuid.UUID, li *ingestion.ProviderLineItem) (order.OrderItem, error) {
	var priceRaw, totalRaw string
	if li.PriceData != nil {
		priceRaw = li.PriceData.Price
		totalRaw = li.PriceData.TotalPrice
	}
	price, err := parseAmount("item price", priceRaw)
	if err != nil {
		return order.OrderItem{}, err
	}
	total, err := parseAmount("item total", totalRaw)
	if err != nil {
		return order.OrderItem{}, err
	}

	return order.OrderItem{
		ID:      uuid.New(),
		OrderID: orderID,
		Name:    li.Name,
		SKU:     li.SKU,
		Price:   price,
		Total:   total,
	}, nil
}

// parseAmount parses a provider decimal string. Absent fields count as
// zero; present but unparsable fields poison the order.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q", ingestion.ErrMalformedOrder, field, raw)
	}
	return d, nil
}

func parseOrderDate(raw string) (int64, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: creation date %q", ingestion.ErrMalformedOrder, raw)
	}
	return t.Unix(), nil
}

func normalizePaymentStatus(raw string) order.PaymentStatus {
	s := order.PaymentStatus(raw)
	if !s.IsValid() {
		return order.PaymentStatusUnspecified
	}
	return s
}

func normalizeFulfillmentStatus(raw string) order.FulfillmentStatus {
	s := order.FulfillmentStatus(raw)
	if !s.IsValid() {
		return order.FulfillmentStatusNotFulfilled
	}
	return s
}

func normalizeWeightUnit(raw string) order.WeightUnit {
	u := order.WeightUnit(raw)
	if !u.IsValid() {
		return order.WeightUnitUnspecified
	}
	return u
}
