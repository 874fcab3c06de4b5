package sqlstore

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"example.com/shopfront/internal/apperr"
	domcategory "example.com/shopfront/internal/domain/category"
	domproduct "example.com/shopfront/internal/domain/product"
)

func float(v float64) *float64 { return &v }

func TestRebind(t *testing.T) {
	query := `SELECT id FROM products WHERE category = ? AND price >= ? LIMIT ? OFFSET ?`

	require.Equal(t, query, MySQL.Rebind(query))
	require.Equal(t,
		`SELECT id FROM products WHERE category = $1 AND price >= $2 LIMIT $3 OFFSET $4`,
		Postgres.Rebind(query),
	)
}

func TestProductWhere(t *testing.T) {
	tests := []struct {
		name      string
		query     domproduct.Query
		wantWhere string
		wantArgs  []any
	}{
		{
			name:  "no predicates",
			query: domproduct.Query{},
		},
		{
			name:      "public scope with window",
			query:     domproduct.Query{OnlyActive: true, Category: "Laptops", MinPrice: float(500), MaxPrice: float(1500)},
			wantWhere: " WHERE is_active = ? AND category = ? AND price >= ? AND price <= ?",
			wantArgs:  []any{true, "Laptops", 500.0, 1500.0},
		},
		{
			name:      "merchant scope only",
			query:     domproduct.Query{MerchantID: "m-1"},
			wantWhere: " WHERE merchant_id = ?",
			wantArgs:  []any{"m-1"},
		},
		{
			name:      "search",
			query:     domproduct.Query{Search: "50%_Off!"},
			wantWhere: " WHERE (LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!')",
			wantArgs:  []any{"%50!%!_off!!%", "%50!%!_off!!%", "%50!%!_off!!%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := productWhere(tt.query)
			require.Equal(t, tt.wantWhere, where)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestProductOrder(t *testing.T) {
	require.Equal(t, " ORDER BY price ASC, id ASC",
		productOrder(domproduct.Sort{Field: domproduct.SortByPrice, Direction: domproduct.Ascending}))
	require.Equal(t, " ORDER BY updated_at DESC, id ASC",
		productOrder(domproduct.Sort{Field: domproduct.SortByUpdatedAt, Direction: domproduct.Descending}))
	require.Equal(t, " ORDER BY created_at DESC, id ASC",
		productOrder(domproduct.Sort{Field: "price; DROP TABLE products"}))
}

func TestMapError(t *testing.T) {
	conflict := domcategory.ErrCategoryNameExists

	myDup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'books' for key 'uniq_categories_name_key'"}
	pgDup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

	require.NoError(t, mapError(nil, conflict))
	require.ErrorIs(t, mapError(myDup, conflict), conflict)
	require.ErrorIs(t, mapError(fmt.Errorf("exec: %w", pgDup), conflict), conflict)

	other := &mysql.MySQLError{Number: 1045, Message: "Access denied for user"}
	err := mapError(other, conflict)
	require.Equal(t, apperr.KindInfrastructure, apperr.KindOf(err))
	require.NotContains(t, apperr.Message(err), "Access denied")

	err = mapError(errors.New("driver: bad connection"), nil)
	require.Equal(t, apperr.KindInfrastructure, apperr.KindOf(err))
}

func TestSchemaUsesDialectTimestamps(t *testing.T) {
	for _, stmt := range MySQL.schema() {
		require.NotContains(t, stmt, "TIMESTAMPTZ")
	}
	require.Contains(t, Postgres.schema()[0], "TIMESTAMPTZ")
	require.Contains(t, Postgres.schema()[1], "UNIQUE (name_key)")
}

func TestSchemaCategoryMatchesExactly(t *testing.T) {
	products := MySQL.schema()[2]
	require.Contains(t, products, "category VARCHAR(255) COLLATE utf8mb4_bin NOT NULL")
	require.Contains(t, products, "title VARCHAR(255) NOT NULL")

	require.NotContains(t, strings.Join(Postgres.schema(), "\n"), "COLLATE")
	require.Contains(t, Postgres.schema()[2], "category VARCHAR(255) NOT NULL")
}
