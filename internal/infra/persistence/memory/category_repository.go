package memory

import (
	"context"
	"slices"
	"sort"

	domcategory "example.com/shopfront/internal/domain/category"
)

type CategoryRepository struct {
	s *Store
}

func cloneCategory(c domcategory.Category) *domcategory.Category {
	c.Subcategories = slices.Clone(c.Subcategories)
	return &c
}

func (r *CategoryRepository) Create(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domcategory.NameKey(c.Name)
	if _, taken := r.s.names[key]; taken {
		return nil, domcategory.ErrCategoryNameExists
	}

	created := *cloneCategory(*c)
	created.ID = r.s.newID()
	r.s.categories[created.ID] = created
	r.s.names[key] = created.ID
	return cloneCategory(created), nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.categories[c.ID]
	if !ok {
		return nil, domcategory.ErrCategoryNotFound
	}

	oldKey := domcategory.NameKey(existing.Name)
	newKey := domcategory.NameKey(c.Name)
	if owner, taken := r.s.names[newKey]; taken && owner != c.ID {
		return nil, domcategory.ErrCategoryNameExists
	}

	delete(r.s.names, oldKey)
	r.s.names[newKey] = c.ID
	r.s.categories[c.ID] = *cloneCategory(*c)
	return cloneCategory(*c), nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.categories[id]
	if !ok {
		return domcategory.ErrCategoryNotFound
	}
	delete(r.s.names, domcategory.NameKey(existing.Name))
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domcategory.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, domcategory.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string, excludeID string) (*domcategory.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.names[domcategory.NameKey(name)]
	if !ok || (excludeID != "" && id == excludeID) {
		return nil, nil
	}
	return cloneCategory(r.s.categories[id]), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]*domcategory.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		categories = append(categories, cloneCategory(c))
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}
