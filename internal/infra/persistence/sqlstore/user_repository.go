package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domuser "example.com/shopfront/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

const userColumns = `id, name, email, password_hash, role, is_active, created_at`

func scanUser(row scanner) (*domuser.User, error) {
	var u domuser.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domuser.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	created := *u
	created.ID = r.s.newID()
	created.Email = domuser.NormalizeEmail(u.Email)

	_, err := r.s.db.ExecContext(ctx, r.s.dialect.Rebind(`
        INSERT INTO users (`+userColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `), created.ID, created.Name, created.Email, created.PasswordHash, string(created.Role), created.IsActive, created.CreatedAt)
	if err != nil {
		return nil, mapError(err, domuser.ErrEmailAlreadyUsed)
	}
	return &created, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domuser.User, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	row := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT `+userColumns+` FROM users WHERE `+where), arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, mapError(err, nil)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.getOne(ctx, "email = ?", domuser.NormalizeEmail(email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.s.db.QueryRowContext(ctx, r.s.dialect.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`),
		domuser.NormalizeEmail(email)).Scan(&n)
	if err != nil {
		return false, mapError(err, nil)
	}
	return n > 0, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*domuser.User, error) {
	if len(ids) == 0 {
		return []*domuser.User{}, nil
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.s.db.QueryContext(ctx, r.s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	users := make([]*domuser.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return users, nil
}
