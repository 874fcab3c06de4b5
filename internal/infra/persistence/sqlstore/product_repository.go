package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	domproduct "example.com/shopfront/internal/domain/product"
)

type ProductRepository struct {
	s *Store
}

const productColumns = `id, title, description, price, category, merchant_id, is_active, created_at, updated_at`

func scanProduct(row scanner) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.MerchantID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	created := *p
	created.ID = r.s.newID()
	created.Merchant = nil

	_, err := r.s.db.ExecContext(ctx, r.s.dialect.Rebind(`
        INSERT INTO products (`+productColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `), created.ID, created.Title, created.Description, created.Price, created.Category,
		created.MerchantID, created.IsActive, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, mapError(err, nil)
	}
	return &created, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	row := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, mapError(err, nil)
	}
	return p, nil
}

// Update writes the mutable columns; merchant_id and created_at are not
// part of the statement.
func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	execCtx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	_, err := r.s.db.ExecContext(execCtx, r.s.dialect.Rebind(`
        UPDATE products SET title = ?, description = ?, price = ?, category = ?, is_active = ?, updated_at = ?
        WHERE id = ?
    `), p.Title, p.Description, p.Price, p.Category, p.IsActive, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, mapError(err, nil)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProductRepository) Find(ctx context.Context, opts domproduct.FindOptions) (*domproduct.PageResult, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	where, args := productWhere(opts.Query)

	var total int64
	if err := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT COUNT(*) FROM products`+where), args...).Scan(&total); err != nil {
		return nil, mapError(err, nil)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + productOrder(opts.Sort) + ` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), opts.Page.Limit, opts.Page.Offset())

	rows, err := r.s.db.QueryContext(ctx, r.s.dialect.Rebind(query), pageArgs...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	items := make([]*domproduct.Product, 0, opts.Page.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}

	return &domproduct.PageResult{
		Items:      items,
		Pagination: domproduct.NewPagination(opts.Page, total),
	}, nil
}

func (r *ProductRepository) Count(ctx context.Context, q domproduct.Query) (int64, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	where, args := productWhere(q)
	var n int64
	if err := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT COUNT(*) FROM products`+where), args...).Scan(&n); err != nil {
		return 0, mapError(err, nil)
	}
	return n, nil
}

func (r *ProductRepository) PriceRange(ctx context.Context) (domproduct.PriceRange, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	where, args := productWhere(domproduct.Query{OnlyActive: true})
	var pr domproduct.PriceRange
	err := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(
		`SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0) FROM products`+where), args...,
	).Scan(&pr.Min, &pr.Max)
	if err != nil {
		return domproduct.PriceRange{}, mapError(err, nil)
	}
	return pr, nil
}

func (r *ProductRepository) CategoryStats(ctx context.Context, merchantID string) ([]domproduct.CategoryCount, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	where, args := productWhere(domproduct.Query{OnlyActive: true, MerchantID: merchantID})
	rows, err := r.s.db.QueryContext(ctx, r.s.dialect.Rebind(
		`SELECT category, COUNT(*) FROM products`+where+` GROUP BY category ORDER BY category ASC`), args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	stats := []domproduct.CategoryCount{}
	for rows.Next() {
		var c domproduct.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, mapError(err, nil)
		}
		stats = append(stats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return stats, nil
}

func (r *ProductRepository) TotalValue(ctx context.Context, merchantID string) (float64, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	where, args := productWhere(domproduct.Query{OnlyActive: true, MerchantID: merchantID})
	var total float64
	if err := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT COALESCE(SUM(price), 0) FROM products`+where), args...).Scan(&total); err != nil {
		return 0, mapError(err, nil)
	}
	return total, nil
}
