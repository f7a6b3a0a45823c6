// Package catalog looks up products in postgres, with an optional
// Elasticsearch path for full-text queries.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	commonerrors "kirana-assistant/internal/common/errors"
	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/models"
	"kirana-assistant/internal/nlp"
)

const (
	searchLimit = 20
	listLimit   = 50
)

var ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")

type Service struct {
	db     *sql.DB
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"service": "catalog"}),
	}
}

// WithElasticsearch routes Text and Keywords searches through the product
// index. Postgres stays the fallback when the index is unavailable.
func (s *Service) WithElasticsearch(client *elasticsearch.Client, index string) *Service {
	s.es = client
	s.index = index
	return s
}

// Search runs a structured product search. Empty query fields are skipped
// rather than matched against empty strings.
func (s *Service) Search(ctx context.Context, query nlp.SearchQuery) ([]models.Product, error) {
	if s.es != nil && (query.Text != "" || len(query.Keywords) > 0) {
		products, err := s.searchIndex(ctx, query)
		if err == nil {
			return products, nil
		}
		s.logger.Warn("index search failed, falling back to postgres", map[string]interface{}{
			"error": err.Error(),
		})
	}

	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Category != "" && query.Category != "all" {
		conditions = append(conditions, "category = "+arg(query.Category))
	}
	if query.PriceMax != nil {
		conditions = append(conditions, "price <= "+arg(*query.PriceMax))
	}
	if query.PriceMin != nil {
		conditions = append(conditions, "price >= "+arg(*query.PriceMin))
	}
	if len(query.Keywords) > 0 {
		term := "%" + strings.Join(query.Keywords, " ") + "%"
		p := arg(term)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if query.Text != "" {
		term := "%" + query.Text + "%"
		p := arg(term)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s OR category ILIKE %s)", p, p, p))
	}

	q := "SELECT id, name, price, category, description, image_url, stock FROM products"
	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}
	q += fmt.Sprintf(" ORDER BY name LIMIT %d", searchLimit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, commonerrors.NewProductSearchFailedError(err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *Service) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, name, price, category, description, image_url, stock FROM products ORDER BY name LIMIT %d", listLimit))
	if err != nil {
		return nil, commonerrors.NewProductSearchFailedError(err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, price, category, description, image_url, stock FROM products WHERE id = $1", id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, commonerrors.NewProductSearchFailedError(err)
	}
	return product, nil
}

// FindByName matches a spoken or typed product name against the catalog with
// a case-insensitive substring match and returns the first hit.
func (s *Service) FindByName(ctx context.Context, name string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, price, category, description, image_url, stock FROM products WHERE name ILIKE $1 ORDER BY name LIMIT 1",
		"%"+name+"%")

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, commonerrors.NewProductSearchFailedError(err)
	}
	return product, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description, &p.ImageURL, &p.Stock); err != nil {
			return nil, commonerrors.NewProductSearchFailedError(err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewProductSearchFailedError(err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description, &p.ImageURL, &p.Stock); err != nil {
		return nil, err
	}
	return &p, nil
}
