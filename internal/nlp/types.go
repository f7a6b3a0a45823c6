// Package nlp interprets free-form shopping requests. It turns typed text or
// a speech transcript into an intent plus extracted entities, which the
// assistant uses to search the catalog, mutate the cart, or look up an order.
//
// Everything in this package is a pure function of its input: no I/O, no
// shared state, safe for concurrent use. Interpretation is deterministic for
// a fixed grammar of phrasings with a documented search fallback for
// everything else; it never fails on any input string.
package nlp

// Intent is the coarse category of what the user wants.
type Intent string

const (
	IntentSearch      Intent = "search"
	IntentAddToCart   Intent = "add_to_cart"
	IntentOrderStatus Intent = "order_status"
	IntentCheckout    Intent = "checkout"
	IntentGreeting    Intent = "greeting"
	IntentHelp        Intent = "help"
	IntentUnknown     Intent = "unknown"
)

// SearchQuery is the structured form of a catalog search. An absent field
// means "no constraint", never "constraint of zero".
type SearchQuery struct {
	Text     string   `json:"text,omitempty"`
	Category string   `json:"category,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// VoiceCommand is the tagged result of classifying one input. Only the fields
// meaningful for the carried Type are set; consumers of a given Type must
// ignore the rest.
type VoiceCommand struct {
	Type       Intent   `json:"type"`
	Product    string   `json:"product,omitempty"`
	Quantity   *int     `json:"quantity,omitempty"`
	Category   string   `json:"category,omitempty"`
	PriceLimit *float64 `json:"priceLimit,omitempty"`
	OrderID    string   `json:"orderId,omitempty"`
}

// Classifier decides which intent applies to an input and harvests its
// entities. The two implementations run genuinely different rule chains and
// are kept separate on purpose.
type Classifier interface {
	Classify(text string) VoiceCommand
}
