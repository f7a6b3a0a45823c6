package nlp

import (
	"fmt"
	"strings"
	"time"
)

// statusMessages maps each order status to its reply sentence. Unrecognized
// statuses degrade to UnknownStatusMessage, never to an error.
var statusMessages = map[string]string{
	"pending":          "📋 Order received and being processed",
	"confirmed":        "✅ Order confirmed and being prepared",
	"preparing":        "👨‍🍳 Your order is being prepared",
	"out_for_delivery": "🚚 Out for delivery",
	"delivered":        "🎉 Order delivered successfully",
	"cancelled":        "❌ Order cancelled",
}

const UnknownStatusMessage = "Unknown status"

// Fixed reply texts for the conversational intents and failure outcomes. The
// lookup-failure text is deliberately distinct from the not-found one.
const (
	GreetingReply = "Hello! I'm here to help you with your shopping. You can ask me to search for products, check order status, or place orders using voice commands."

	HelpReply = "I can help you with:\n\n" +
		"🛍️ Search products: \"Show me breakfast items under 200\"\n" +
		"📦 Track orders: \"What's the status of order #ABC123?\"\n" +
		"🛒 Add to cart: \"Order 2 packs of dosa batter\"\n" +
		"💬 General questions about shopping\n\n" +
		"What would you like to do?"

	OrderIDPromptReply = "Please provide an order ID to check the status, like \"What's the status of order #ABC123?\""

	OrderLookupFailedReply = "There was an error looking up that order. Please try again."
)

// StatusMessage returns the human-readable sentence for an order status.
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return UnknownStatusMessage
}

// FormatAmount renders a monetary amount with zero decimal places. The value
// is truncated, not rounded.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("₹%d", int64(amount))
}

// DisplayOrderID renders an order id for display: last eight characters,
// upper-cased, '#'-prefixed. Display only — never a lookup key.
func DisplayOrderID(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "#" + strings.ToUpper(id)
}

// FormatDate renders an order timestamp for replies.
func FormatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// OrderStatusReply builds the reply for a found order: status sentence,
// total, and placement date.
func OrderStatusReply(status string, totalAmount float64, createdAt time.Time) string {
	return fmt.Sprintf("%s\nTotal: %s\nPlaced: %s",
		StatusMessage(status), FormatAmount(totalAmount), FormatDate(createdAt))
}

// OrderNotFoundReply builds the reply when the lookup collaborator reports no
// match, echoing the identifier the user gave.
func OrderNotFoundReply(orderID string) string {
	return fmt.Sprintf("I couldn't find an order with ID #%s. Please check the order ID and try again.", orderID)
}
