package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPriceCeiling(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
		found    bool
	}{
		{"under phrasing", "show breakfast items under 200", 200, true},
		{"below phrasing", "snacks below 150", 150, true},
		{"less than phrasing", "drinks less than 80", 80, true},
		{"max phrasing", "spices max 500", 500, true},
		{"left-most wins across phrasings", "under 100 or below 900", 100, true},
		{"no ceiling", "snacks", 0, false},
		{"empty input", "", 0, false},
		{"digits without phrasing", "order 2 packs", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := ExtractPriceCeiling(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, price)
			}
		})
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"single category", "show me breakfast items", "breakfast", true},
		{"vocabulary order breaks ties", "dinner after lunch", "lunch", true},
		{"hyphenated category", "ready-to-eat meals", "ready-to-eat", true},
		{"no category", "dosa batter", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, ok := ExtractCategory(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"single keyword", "fresh dosa today", []string{"dosa"}},
		{"vocabulary order not input order", "sambar powder and idli", []string{"idli", "sambar", "powder"}},
		{"substring hits", "masala dosa batter", []string{"dosa", "batter", "masala"}},
		{"no keywords collapses to absent", "chocolate cake", nil},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractKeywords(tt.text))
		})
	}
}

func TestExtractQuantityProduct(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		quantity int
		product  string
	}{
		{"quantity with packs connector", "2 packs of dosa batter", 2, "dosa batter"},
		{"quantity with pieces connector", "5 pieces of idli", 5, "idli"},
		{"quantity with bottles connector", "3 bottles of rasam", 3, "rasam"},
		{"quantity without connector", "4 sambar powder", 4, "sambar powder"},
		{"no quantity defaults to one", "dosa batter", 1, "dosa batter"},
		{"whitespace trimmed", "  chutney  ", 1, "chutney"},
		{"zero clamps to one", "0 packs of idli", 1, "idli"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quantity, product := ExtractQuantityProduct(tt.text)
			assert.Equal(t, tt.quantity, quantity)
			assert.Equal(t, tt.product, product)
		})
	}
}

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"hash prefix stripped", "Check #ABC123Z", "ABC123Z", true},
		{"no candidate", "hi there", "", false},
		{"bare run", "track ORD99881 please", "ORD99881", true},
		{"tagged run beats earlier bare run", "What's the status of order #9XQ42P1", "9XQ42P1", true},
		{"short runs ignored", "dal is out", "", false},
		{"long word misfires by design", "premium basmati", "premium", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractOrderID(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}
