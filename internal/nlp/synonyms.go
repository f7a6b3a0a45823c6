package nlp

import "strings"

// categorySynonym maps one colloquial word onto a canonical catalog category.
type categorySynonym struct {
	word      string
	canonical string
}

// categorySynonyms is the voice-path synonym table. Insertion order is the
// tie-break priority: the first entry whose word occurs as a substring of the
// input wins. Read-only for the lifetime of the process.
var categorySynonyms = []categorySynonym{
	{"breakfast", "breakfast"},
	{"lunch", "lunch"},
	{"dinner", "dinner"},
	{"snack", "snacks"},
	{"snacks", "snacks"},
	{"drink", "beverages"},
	{"beverages", "beverages"},
	{"spice", "spices"},
	{"spices", "spices"},
	{"ready", "ready-to-eat"},
	{"instant", "ready-to-eat"},
}

// ResolveCategory maps a colloquial category word onto its canonical catalog
// name, or "all" when nothing in the table matches.
func ResolveCategory(text string) string {
	for _, s := range categorySynonyms {
		if strings.Contains(text, s.word) {
			return s.canonical
		}
	}
	return "all"
}
