package product

import "example.com/shopfront/internal/apperr"

var (
	ErrProductNotFound    = apperr.NotFound("Product not found")
	ErrCategoryRequired   = apperr.Validation("Category is required")
	ErrCategoryEmpty      = apperr.Validation("Category cannot be empty")
	ErrTitleRequired      = apperr.Validation("Title is required")
	ErrNegativePrice      = apperr.Validation("Price must be a positive number")
	ErrInvalidPriceFilter = apperr.Validation("minPrice and maxPrice must be numbers")
	ErrEditForbidden      = apperr.Authorization("You can only edit your own products")
	ErrDeleteForbidden    = apperr.Authorization("You can only delete your own products")
)
