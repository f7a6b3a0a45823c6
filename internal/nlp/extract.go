package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// catalogCategories is the fixed catalog vocabulary for the text-search path.
// Enumeration order is the tie-break: the first entry found anywhere in the
// input wins. This is deliberately a different vocabulary from the colloquial
// synonym table used on the voice path.
var catalogCategories = []string{
	"breakfast", "lunch", "dinner", "snacks", "beverages",
	"spices", "ready-to-eat", "instant", "traditional",
}

// foodKeywords is the fixed food-item vocabulary. Matches are reported in
// this order, not input order.
var foodKeywords = []string{
	"dosa", "idli", "batter", "chutney", "sambar", "rasam",
	"rice", "dal", "curry", "masala", "powder",
}

var (
	priceCeilingRe  = regexp.MustCompile(`(?i)(?:under|below|less\s+than|max)\s+(\d+)`)
	taggedOrderIDRe = regexp.MustCompile(`#([a-zA-Z0-9]{6,})`)
	bareOrderIDRe   = regexp.MustCompile(`([a-zA-Z0-9]{6,})`)
	quantityRe      = regexp.MustCompile(`(?i)^(\d+)\s*(?:packs?\s+of|pieces?\s+of|bottles?\s+of)?\s*(.+)$`)
)

// ExtractPriceCeiling returns the price bound from phrasings like "under 200",
// "below 200", "less than 200" or "max 200". The four phrasings are a single
// alternation, so the left-most match in the input wins regardless of which
// phrasing it uses.
func ExtractPriceCeiling(text string) (int, bool) {
	m := priceCeilingRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractCategory returns the first catalog category present as a substring,
// in vocabulary order.
func ExtractCategory(text string) (string, bool) {
	for _, category := range catalogCategories {
		if strings.Contains(text, category) {
			return category, true
		}
	}
	return "", false
}

// ExtractKeywords returns every food-vocabulary entry occurring as a
// substring, preserving vocabulary order. Nil when nothing matches; never an
// empty non-nil slice.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, item := range foodKeywords {
		if strings.Contains(text, item) {
			keywords = append(keywords, item)
		}
	}
	return keywords
}

// ExtractQuantityProduct splits an optional leading integer and connector
// phrase ("packs of", "pieces of", "bottles of") from the product name. It
// always succeeds: without a leading integer the quantity is 1 and the whole
// trimmed input is the product.
func ExtractQuantityProduct(text string) (int, string) {
	if m := quantityRe.FindStringSubmatch(text); m != nil {
		quantity, err := strconv.Atoi(m[1])
		if err == nil {
			if quantity < 1 {
				quantity = 1
			}
			return quantity, strings.TrimSpace(m[2])
		}
	}
	return 1, strings.TrimSpace(text)
}

// ExtractOrderID finds an optional '#' followed by a run of at least six
// alphanumerics anywhere in the input and returns the run without the '#'.
// A '#'-tagged run wins over a bare one, so "status of order #9XQ42P1" yields
// the id and not the word "status". The bare pattern is permissive on purpose
// and can fire on any long token; the order-lookup collaborator is
// authoritative on whether it resolves.
func ExtractOrderID(text string) (string, bool) {
	if m := taggedOrderIDRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := bareOrderIDRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}
