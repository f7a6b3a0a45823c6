package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	addToCartRe  = regexp.MustCompile(`(?i)(?:order|add|buy)\s+(\d+)?\s*(?:packs?\s+of|pieces?\s+of)?\s*(.+)`)
	searchRe     = regexp.MustCompile(`(?i)(?:show|find|search)\s+(?:me\s+)?(.+?)(?:\s+under\s+(\d+))?$`)
	voiceOrderRe = regexp.MustCompile(`(?i)(?:order|status)\s*#?(\w+)`)
)

// ChatClassifier interprets typed chat messages. Rule order is load-bearing:
// order-status, greeting, help, add-to-cart, then search with a whole-text
// fallback. A message containing both "help" and "order" is Help because Help
// is checked first once the earlier rules pass. The order-id pattern is
// permissive and fires on any six-character alphanumeric run; the order
// lookup collaborator decides whether the id is real.
type ChatClassifier struct{}

func (ChatClassifier) Classify(text string) VoiceCommand {
	t := Normalize(text)

	// Order ids are pulled from the raw text so their case survives.
	if orderID, ok := ExtractOrderID(text); ok {
		return VoiceCommand{Type: IntentOrderStatus, OrderID: orderID}
	}
	if strings.Contains(t, "order") && strings.Contains(t, "status") {
		return VoiceCommand{Type: IntentOrderStatus}
	}

	if strings.Contains(t, "hello") || strings.Contains(t, "hi") {
		return VoiceCommand{Type: IntentGreeting}
	}

	if strings.Contains(t, "help") {
		return VoiceCommand{Type: IntentHelp}
	}

	if strings.Contains(t, "order") || strings.Contains(t, "add") || strings.Contains(t, "buy") {
		return matchAddToCart(t)
	}

	if cmd, ok := matchSearchPattern(t); ok {
		return cmd
	}

	// Fallback: the whole input is an opaque category term.
	return VoiceCommand{Type: IntentSearch, Category: t}
}

// VoiceClassifier interprets microphone transcripts. Its rule chain diverges
// from the chat one: add-to-cart first, then search, then order-status, then
// the same whole-text search fallback. The two chains must stay separate.
type VoiceClassifier struct{}

func (VoiceClassifier) Classify(text string) VoiceCommand {
	t := Normalize(text)

	if addToCartRe.MatchString(t) {
		return matchAddToCart(t)
	}

	if cmd, ok := matchSearchPattern(t); ok {
		return cmd
	}

	if m := voiceOrderRe.FindStringSubmatch(t); m != nil {
		return VoiceCommand{Type: IntentOrderStatus, OrderID: m[1]}
	}

	return VoiceCommand{Type: IntentSearch, Category: t}
}

// matchAddToCart harvests quantity and product from "order/add/buy [N]
// [packs/pieces of] X". Without the verb pattern the quantity extractor runs
// over the whole text, so add-to-cart classification always yields a command.
func matchAddToCart(t string) VoiceCommand {
	if m := addToCartRe.FindStringSubmatch(t); m != nil {
		quantity := 1
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			quantity = n
		}
		return VoiceCommand{
			Type:     IntentAddToCart,
			Product:  strings.TrimSpace(m[2]),
			Quantity: &quantity,
		}
	}

	quantity, product := ExtractQuantityProduct(t)
	return VoiceCommand{Type: IntentAddToCart, Product: product, Quantity: &quantity}
}

// matchSearchPattern matches "show/find/search [me] <term> [under N]" and
// resolves the term through the synonym table.
func matchSearchPattern(t string) (VoiceCommand, bool) {
	m := searchRe.FindStringSubmatch(t)
	if m == nil {
		return VoiceCommand{}, false
	}

	cmd := VoiceCommand{
		Type:     IntentSearch,
		Category: ResolveCategory(strings.TrimSpace(m[1])),
	}
	if m[2] != "" {
		if n, err := strconv.Atoi(m[2]); err == nil {
			limit := float64(n)
			cmd.PriceLimit = &limit
		}
	}
	return cmd, true
}
