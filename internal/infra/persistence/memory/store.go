// Package memory keeps users, categories and products in process memory.
// It backs STORAGE_DRIVER=memory and the use-case tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domcategory "example.com/shopfront/internal/domain/category"
	domproduct "example.com/shopfront/internal/domain/product"
	domuser "example.com/shopfront/internal/domain/user"
)

type Store struct {
	mu         sync.RWMutex
	users      map[string]domuser.User
	emails     map[string]string
	categories map[string]domcategory.Category
	names      map[string]string
	products   map[string]domproduct.Product
	newID      func() string
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]domuser.User),
		emails:     make(map[string]string),
		categories: make(map[string]domcategory.Category),
		names:      make(map[string]string),
		products:   make(map[string]domproduct.Product),
		newID:      uuid.NewString,
	}
}

// WithIDs replaces the id generator; tests use it for readable ids.
func (s *Store) WithIDs(next func() string) *Store {
	s.newID = next
	return s
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{s: s}
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{s: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(context.Context) error {
	return nil
}
