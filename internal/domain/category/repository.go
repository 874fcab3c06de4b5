package category

import "context"

type Repository interface {
	// Create fails with ErrCategoryNameExists when the name key is taken.
	Create(ctx context.Context, c *Category) (*Category, error)
	Update(ctx context.Context, c *Category) (*Category, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// FindByName matches case-insensitively, skipping excludeID when set.
	// It returns nil, nil when nothing matches.
	FindByName(ctx context.Context, name string, excludeID string) (*Category, error)
	// List returns every category ordered by name ascending.
	List(ctx context.Context) ([]*Category, error)
}
