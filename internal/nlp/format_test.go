package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"pending", "📋 Order received and being processed"},
		{"confirmed", "✅ Order confirmed and being prepared"},
		{"preparing", "👨‍🍳 Your order is being prepared"},
		{"out_for_delivery", "🚚 Out for delivery"},
		{"delivered", "🎉 Order delivered successfully"},
		{"cancelled", "❌ Order cancelled"},
		{"shipped", UnknownStatusMessage},
		{"", UnknownStatusMessage},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusMessage(tt.status))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"whole amount", 450, "₹450"},
		{"fraction is truncated not rounded", 450.9, "₹450"},
		{"sub-rupee amount", 0.99, "₹0"},
		{"zero", 0, "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.amount))
		})
	}
}

func TestDisplayOrderID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"long id keeps last eight", "550e8400e29b41d4a716", "#41D4A716"},
		{"short id kept whole", "abc123", "#ABC123"},
		{"exactly eight", "abcd1234", "#ABCD1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayOrderID(tt.id))
		})
	}
}

func TestDisplayOrderID_NotInvertible(t *testing.T) {
	// Two distinct ids sharing a suffix collapse to the same display form,
	// which is why the display form is never used as a lookup key.
	assert.Equal(t, DisplayOrderID("aaaa1234abcd"), DisplayOrderID("bbbb1234abcd"))
}

func TestOrderStatusReply(t *testing.T) {
	placed := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	reply := OrderStatusReply("out_for_delivery", 450.9, placed)

	assert.Equal(t, "🚚 Out for delivery\nTotal: ₹450\nPlaced: 5 Mar 2024", reply)
}

func TestOrderNotFoundReply(t *testing.T) {
	reply := OrderNotFoundReply("9XQ42P1")

	assert.Equal(t, "I couldn't find an order with ID #9XQ42P1. Please check the order ID and try again.", reply)
	// Not-found and lookup-failure replies must stay distinguishable.
	assert.NotEqual(t, OrderLookupFailedReply, reply)
}
