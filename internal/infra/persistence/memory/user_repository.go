package memory

import (
	"context"

	domuser "example.com/shopfront/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domuser.NormalizeEmail(u.Email)
	if _, taken := r.s.emails[key]; taken {
		return nil, domuser.ErrEmailAlreadyUsed
	}

	created := *u
	created.ID = r.s.newID()
	r.s.users[created.ID] = created
	r.s.emails[key] = created.ID
	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domuser.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[domuser.NormalizeEmail(email)]
	if !ok {
		return nil, domuser.ErrUserNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.emails[domuser.NormalizeEmail(email)]
	return ok, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*domuser.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*domuser.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, &u)
		}
	}
	return users, nil
}
