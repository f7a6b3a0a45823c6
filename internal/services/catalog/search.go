package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"kirana-assistant/internal/models"
	"kirana-assistant/internal/nlp"
)

// buildIndexQuery assembles the search body: a multi_match over the weighted
// text fields plus term and range filters for the structured parts.
func buildIndexQuery(query nlp.SearchQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	text := query.Text
	if text == "" {
		text = strings.Join(query.Keywords, " ")
	}
	if text != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"name^3", "description^2", "category"},
				"type":   "best_fields",
			},
		})
	}

	if query.Category != "" && query.Category != "all" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": query.Category},
		})
	}

	priceRange := map[string]interface{}{}
	if query.PriceMax != nil {
		priceRange["lte"] = *query.PriceMax
	}
	if query.PriceMin != nil {
		priceRange["gte"] = *query.PriceMin
	}
	if len(priceRange) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"price": priceRange},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func (s *Service) searchIndex(ctx context.Context, query nlp.SearchQuery) ([]models.Product, error) {
	body, err := json.Marshal(buildIndexQuery(query))
	if err != nil {
		return nil, err
	}

	size := searchLimit
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search returned %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	var products []models.Product
	for _, hit := range parsed.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
