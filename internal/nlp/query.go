package nlp

// BuildSearchQuery converts a classified voice command into a catalog search.
// Category and the price limit are copied straight through and the product,
// when present, becomes a single keyword. The Text field is never set on this
// path.
func BuildSearchQuery(cmd VoiceCommand) SearchQuery {
	q := SearchQuery{
		Category: cmd.Category,
		PriceMax: cmd.PriceLimit,
	}
	if cmd.Product != "" {
		q.Keywords = []string{cmd.Product}
	}
	return q
}

// ParseTextSearch extracts the structured parts of a typed search box query.
// Text always carries the original string so a consumer can fall back to
// full-text matching when no structured field was found.
func ParseTextSearch(text string) SearchQuery {
	t := Normalize(text)
	q := SearchQuery{Text: text}

	if price, ok := ExtractPriceCeiling(t); ok {
		max := float64(price)
		q.PriceMax = &max
	}
	if category, ok := ExtractCategory(t); ok {
		q.Category = category
	}
	q.Keywords = ExtractKeywords(t)

	return q
}
