package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	domcategory "example.com/shopfront/internal/domain/category"
)

type CategoryRepository struct {
	s *Store
}

const categoryColumns = `id, name, subcategories, created_at, updated_at`

func encodeSubcategories(subs []string) (string, error) {
	if subs == nil {
		subs = []string{}
	}
	b, err := json.Marshal(subs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanCategory(row scanner) (*domcategory.Category, error) {
	var c domcategory.Category
	var subs string
	if err := row.Scan(&c.ID, &c.Name, &subs, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(subs), &c.Subcategories); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	subs, err := encodeSubcategories(c.Subcategories)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	created := *c
	created.ID = r.s.newID()

	_, err = r.s.db.ExecContext(ctx, r.s.dialect.Rebind(`
        INSERT INTO categories (id, name, name_key, subcategories, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `), created.ID, created.Name, domcategory.NameKey(created.Name), subs, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, mapError(err, domcategory.ErrCategoryNameExists)
	}
	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	subs, err := encodeSubcategories(c.Subcategories)
	if err != nil {
		return nil, err
	}

	execCtx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	_, err = r.s.db.ExecContext(execCtx, r.s.dialect.Rebind(`
        UPDATE categories SET name = ?, name_key = ?, subcategories = ?, updated_at = ?
        WHERE id = ?
    `), c.Name, domcategory.NameKey(c.Name), subs, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, mapError(err, domcategory.ErrCategoryNameExists)
	}
	// MySQL reports zero affected rows for no-op updates, so re-read.
	return r.GetByID(ctx, c.ID)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	res, err := r.s.db.ExecContext(ctx, r.s.dialect.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return mapError(err, nil)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domcategory.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domcategory.Category, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	row := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`), id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcategory.ErrCategoryNotFound
		}
		return nil, mapError(err, nil)
	}
	return c, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string, excludeID string) (*domcategory.Category, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name_key = ?`
	args := []any{domcategory.NameKey(name)}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}

	c, err := scanCategory(r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(query), args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, nil)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	rows, err := r.s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	categories := []*domcategory.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return categories, nil
}
