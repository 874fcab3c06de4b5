package category

import "example.com/shopfront/internal/apperr"

var (
	ErrCategoryNotFound    = apperr.NotFound("Category not found")
	ErrCategoryInvalidName = apperr.Validation("Category name must be at least 2 characters")
	ErrCategoryNameExists  = apperr.Conflict("Category with this name already exists")
)
