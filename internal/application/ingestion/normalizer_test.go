package ingestion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/order"
)

func sampleProviderOrder() *ingestion.ProviderOrder {
	return &ingestion.ProviderOrder{
		ID:                "provider-order-1",
		Number:            10001,
		DateCreated:       "2024-03-15T10:30:00Z",
		Currency:          "EUR",
		WeightUnit:        "KG",
		PaymentStatus:     "PAID",
		FulfillmentStatus: "NOT_FULFILLED",
		BuyerInfo: &ingestion.ProviderBuyerInfo{
			Email:     "buyer@example.com",
			FirstName: "Jan",
			LastName:  "Jansen",
			Phone:     "+31612345678",
		},
		Totals: &ingestion.ProviderTotals{
			Total:    "19.99",
			Subtotal: "17.99",
			Tax:      "2.00",
			Weight:   "1.0",
			Quantity: 2,
		},
		BillingInfo: &ingestion.ProviderAddressInfo{
			Address: &ingestion.ProviderAddress{
				City:         "Amsterdam",
				ZipCode:      "1011AB",
				Country:      "NL",
				AddressLine1: "PO Box 5",
			},
		},
		ShippingInfo: &ingestion.ProviderAddressInfo{
			Address: &ingestion.ProviderAddress{
				City:    "Utrecht",
				ZipCode: "3511AA",
				Country: "NL",
				Street:  &ingestion.ProviderStreet{Name: "Main St", Number: "12"},
			},
		},
		LineItems: []ingestion.ProviderLineItem{
			{
				Name:      "Widget",
				SKU:       "W-1",
				Quantity:  2,
				PriceData: &ingestion.ProviderPriceData{Price: "8.99", TotalPrice: "17.98"},
			},
		},
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer()

	tree, err := n.Normalize("instance-1", sampleProviderOrder())
	require.NoError(t, err)

	o := tree.Order
	assert.Equal(t, "instance-1", o.InstanceID)
	assert.Equal(t, "provider-order-1", o.ProviderOrderID)
	assert.Equal(t, int64(10001), o.ProviderOrderNumber)

	wantDate, _ := time.Parse(time.RFC3339, "2024-03-15T10:30:00Z")
	assert.Equal(t, wantDate.Unix(), o.OrderDate)

	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("17.99")))
	assert.True(t, o.Tax.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, o.Weight.Equal(decimal.RequireFromString("1.0")))
	assert.Equal(t, 2, o.Quantity)

	assert.Equal(t, "Jan Jansen", o.BuyerName)
	assert.Equal(t, "buyer@example.com", o.BuyerEmail)

	assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, order.FulfillmentStatusNotFulfilled, o.FulfillmentStatus)
	assert.Equal(t, order.WeightUnitKG, o.WeightUnit)

	// the structured street wins for shipping, the free-text line for billing
	require.NotNil(t, tree.Shipping)
	assert.Equal(t, "Main St 12", tree.Shipping.AddressLine1)
	require.NotNil(t, tree.Billing)
	assert.Equal(t, "PO Box 5", tree.Billing.AddressLine1)

	assert.Equal(t, tree.Billing.ID, o.BillingAddressID)
	assert.Equal(t, tree.Shipping.ID, o.ShippingAddressID)

	require.Len(t, tree.Items, 1)
	assert.Equal(t, o.ID, tree.Items[0].OrderID)
	assert.Equal(t, "Widget", tree.Items[0].Name)
	assert.True(t, tree.Items[0].Price.Equal(decimal.RequireFromString("8.99")))
	assert.True(t, tree.Items[0].Total.Equal(decimal.RequireFromString("17.98")))
}

func TestNormalizer_StructuredStreetIgnoresFreeText(t *testing.T) {
	po := sampleProviderOrder()
	po.ShippingInfo.Address.AddressLine1 = "ignored free text"

	tree, err := NewNormalizer().Normalize("instance-1", po)
	require.NoError(t, err)
	assert.Equal(t, "Main St 12", tree.Shipping.AddressLine1)
}

func TestNormalizer_MissingAddress(t *testing.T) {
	t.Run("neither street nor free text", func(t *testing.T) {
		po := sampleProviderOrder()
		po.ShippingInfo.Address.Street = nil
		po.ShippingInfo.Address.AddressLine1 = ""

		_, err := NewNormalizer().Normalize("instance-1", po)
		assert.ErrorIs(t, err, ingestion.ErrMissingAddress)
	})

	t.Run("address info absent entirely", func(t *testing.T) {
		po := sampleProviderOrder()
		po.BillingInfo = nil

		_, err := NewNormalizer().Normalize("instance-1", po)
		assert.ErrorIs(t, err, ingestion.ErrMissingAddress)
	})
}

func TestNormalizer_MalformedOrder(t *testing.T) {
	t.Run("unparsable total", func(t *testing.T) {
		po := sampleProviderOrder()
		po.Totals.Total = "nineteen"

		_, err := NewNormalizer().Normalize("instance-1", po)
		assert.ErrorIs(t, err, ingestion.ErrMalformedOrder)
	})

	t.Run("unparsable item price", func(t *testing.T) {
		po := sampleProviderOrder()
		po.LineItems[0].PriceData.Price = "free"

		_, err := NewNormalizer().Normalize("instance-1", po)
		assert.ErrorIs(t, err, ingestion.ErrMalformedOrder)
	})

	t.Run("unparsable creation date", func(t *testing.T) {
		po := sampleProviderOrder()
		po.DateCreated = "yesterday"

		_, err := NewNormalizer().Normalize("instance-1", po)
		assert.ErrorIs(t, err, ingestion.ErrMalformedOrder)
	})
}

func TestNormalizer_AbsentAmountsCountAsZero(t *testing.T) {
	po := sampleProviderOrder()
	po.Totals.Tax = ""
	po.Totals.Weight = ""

	tree, err := NewNormalizer().Normalize("instance-1", po)
	require.NoError(t, err)
	assert.True(t, tree.Order.Tax.IsZero())
	assert.True(t, tree.Order.Weight.IsZero())
}

func TestNormalizer_UnknownEnumsFallBack(t *testing.T) {
	po := sampleProviderOrder()
	po.PaymentStatus = "SOMETHING_NEW"
	po.FulfillmentStatus = "unexpected"
	po.WeightUnit = ""

	tree, err := NewNormalizer().Normalize("instance-1", po)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusUnspecified, tree.Order.PaymentStatus)
	assert.Equal(t, order.FulfillmentStatusNotFulfilled, tree.Order.FulfillmentStatus)
	assert.Equal(t, order.WeightUnitUnspecified, tree.Order.WeightUnit)
}

func TestNormalizer_MissingBuyerInfo(t *testing.T) {
	po := sampleProviderOrder()
	po.BuyerInfo = nil

	tree, err := NewNormalizer().Normalize("instance-1", po)
	require.NoError(t, err)
	assert.Empty(t, tree.Order.BuyerName)
	assert.Empty(t, tree.Order.BuyerEmail)
}
