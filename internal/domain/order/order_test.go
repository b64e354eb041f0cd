package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_IsValid(t *testing.T) {
	valid := []PaymentStatus{
		PaymentStatusUnspecified,
		PaymentStatusPaid,
		PaymentStatusNotPaid,
		PaymentStatusPartiallyRefunded,
		PaymentStatusFullyRefunded,
		PaymentStatusPending,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, PaymentStatus("SETTLED").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}

func TestFulfillmentStatus_IsValid(t *testing.T) {
	valid := []FulfillmentStatus{
		FulfillmentStatusFulfilled,
		FulfillmentStatusNotFulfilled,
		FulfillmentStatusCanceled,
		FulfillmentStatusPartiallyFulfilled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, FulfillmentStatus("SHIPPED").IsValid())
}

func TestWeightUnit_IsValid(t *testing.T) {
	assert.True(t, WeightUnitKG.IsValid())
	assert.True(t, WeightUnitLB.IsValid())
	assert.True(t, WeightUnitUnspecified.IsValid())
	assert.False(t, WeightUnit("OZ").IsValid())
}
