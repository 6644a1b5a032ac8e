// Package postgres implements ProductStore and EdgeStore against a
// PostgreSQL-backed catalog, in the query/scan style of the teacher's
// repository adapters.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store"
)

// ErrProductNotFound is returned by ProductStore.Get when the sku has no
// row; it is an alias of store.ErrProductNotFound so callers can match on
// either name.
var ErrProductNotFound = store.ErrProductNotFound

// ProductStore implements store.ProductStore using PostgreSQL.
type ProductStore struct {
	pool dbpool
}

// dbpool is the subset of *pgxpool.Pool this adapter needs, so tests can
// substitute pgxmock's pool-shaped mock.
type dbpool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewProductStore creates a new PostgreSQL-backed product store. pool
// accepts anything satisfying dbpool, so a *pgxpool.Pool in production or a
// pgxmock pool in tests both work.
func NewProductStore(pool dbpool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `sku, slot, occasion, aesthetics, season, formality_score, formality_level, primary_color, statement_piece, title, brand, image_url, type, category`

// Get retrieves a single product by sku.
func (s *ProductStore) Get(ctx context.Context, sku string) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	row := s.pool.QueryRow(ctx, query, sku)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("scan product %s: %w", sku, err)
	}
	return p, nil
}

// GetMany batch-loads products by sku in a single query. Skus with no
// matching row are simply absent from the result map.
func (s *ProductStore) GetMany(ctx context.Context, skus []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(skus))
	if len(skus) == 0 {
		return out, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE sku = ANY($1)`

	rows, err := s.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, fmt.Errorf("batch fetch products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		out[p.SKU] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return out, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var slot string

	err := row.Scan(
		&p.SKU,
		&slot,
		&p.Occasion,
		&p.Aesthetics,
		&p.Season,
		&p.FormalityScore,
		&p.FormalityLevel,
		&p.PrimaryColor,
		&p.StatementPiece,
		&p.Title,
		&p.Brand,
		&p.ImageURL,
		&p.Type,
		&p.Category,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.Slot = domain.Slot(slot)
	return p, nil
}
