package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClassifier_Precedence(t *testing.T) {
	c := ChatClassifier{}

	tests := []struct {
		name     string
		text     string
		expected Intent
	}{
		{"order status with id", "What's the status of order #9XQ42P1", IntentOrderStatus},
		{"order status without id", "order status", IntentOrderStatus},
		{"greeting", "hello", IntentGreeting},
		{"help beats add to cart", "help me with my order", IntentHelp},
		{"add to cart", "buy dosa", IntentAddToCart},
		{"search pattern", "show me dal", IntentSearch},
		{"fallback is search", "xyz", IntentSearch},
		{"empty input is search", "", IntentSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := c.Classify(tt.text)
			assert.Equal(t, tt.expected, cmd.Type)
		})
	}
}

func TestChatClassifier_OrderStatusEntities(t *testing.T) {
	c := ChatClassifier{}

	cmd := c.Classify("What's the status of order #9XQ42P1")
	assert.Equal(t, IntentOrderStatus, cmd.Type)
	assert.Equal(t, "9XQ42P1", cmd.OrderID)

	// The permissive pattern grabs the word "status" itself as an id; the
	// order lookup downstream is what rejects it.
	cmd = c.Classify("order status?")
	assert.Equal(t, IntentOrderStatus, cmd.Type)
	assert.Equal(t, "status", cmd.OrderID)
}

func TestChatClassifier_LongTokenReadsAsOrderID(t *testing.T) {
	// The permissive id pattern fires on any six-character alphanumeric run.
	// This reproduces the production heuristic rather than fixing it.
	c := ChatClassifier{}

	cmd := c.Classify("order 2 packs of dosa batter")
	assert.Equal(t, IntentOrderStatus, cmd.Type)
	assert.Equal(t, "batter", cmd.OrderID)
}

func TestChatClassifier_AddToCartEntities(t *testing.T) {
	c := ChatClassifier{}

	cmd := c.Classify("buy 2 packs of idli")
	require.Equal(t, IntentAddToCart, cmd.Type)
	require.NotNil(t, cmd.Quantity)
	assert.Equal(t, 2, *cmd.Quantity)
	assert.Equal(t, "idli", cmd.Product)
}

func TestChatClassifier_Fallback(t *testing.T) {
	c := ChatClassifier{}

	cmd := c.Classify("")
	assert.Equal(t, IntentSearch, cmd.Type)
	assert.Equal(t, "", cmd.Category)
}

func TestVoiceClassifier_AddToCart(t *testing.T) {
	c := VoiceClassifier{}

	tests := []struct {
		name     string
		text     string
		quantity int
		product  string
	}{
		{"order with quantity and connector", "order 2 packs of dosa batter", 2, "dosa batter"},
		{"buy without quantity defaults to one", "buy chutney", 1, "chutney"},
		{"add with pieces connector", "add 5 pieces of idli", 5, "idli"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := c.Classify(tt.text)
			require.Equal(t, IntentAddToCart, cmd.Type)
			require.NotNil(t, cmd.Quantity)
			assert.Equal(t, tt.quantity, *cmd.Quantity)
			assert.Equal(t, tt.product, cmd.Product)
		})
	}
}

func TestVoiceClassifier_Search(t *testing.T) {
	c := VoiceClassifier{}

	cmd := c.Classify("show me breakfast items under 200")
	require.Equal(t, IntentSearch, cmd.Type)
	assert.Equal(t, "breakfast", cmd.Category)
	require.NotNil(t, cmd.PriceLimit)
	assert.Equal(t, float64(200), *cmd.PriceLimit)

	cmd = c.Classify("find snacks")
	require.Equal(t, IntentSearch, cmd.Type)
	assert.Equal(t, "snacks", cmd.Category)
	assert.Nil(t, cmd.PriceLimit)
}

func TestVoiceClassifier_OrderStatus(t *testing.T) {
	c := VoiceClassifier{}

	cmd := c.Classify("status #abc123")
	assert.Equal(t, IntentOrderStatus, cmd.Type)
	assert.Equal(t, "abc123", cmd.OrderID)
}

func TestVoiceClassifier_Fallback(t *testing.T) {
	c := VoiceClassifier{}

	cmd := c.Classify("chocolate")
	assert.Equal(t, IntentSearch, cmd.Type)
	assert.Equal(t, "chocolate", cmd.Category)

	cmd = c.Classify("")
	assert.Equal(t, IntentSearch, cmd.Type)
	assert.Equal(t, "", cmd.Category)
}

func TestClassifiers_AlwaysExactlyOneIntent(t *testing.T) {
	inputs := []string{
		"", " ", "hello", "help", "buy rice", "order status",
		"show me spices under 50", "complete nonsense input 42",
	}

	for _, text := range inputs {
		chat := ChatClassifier{}.Classify(text)
		voice := VoiceClassifier{}.Classify(text)
		assert.NotEmpty(t, chat.Type, "chat intent for %q", text)
		assert.NotEmpty(t, voice.Type, "voice intent for %q", text)
	}
}
