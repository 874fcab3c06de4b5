package user

import "context"

type Repository interface {
	// Create fails with ErrEmailAlreadyUsed when the normalized email is taken.
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListByIDs returns the users that exist; unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*User, error)
}
