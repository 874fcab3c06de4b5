package user

import "example.com/shopfront/internal/apperr"

var (
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrEmailAlreadyUsed   = apperr.Conflict("User already exists with this email")
	ErrInvalidRole        = apperr.Validation("Role must be customer or merchant")
	ErrInvalidCredentials = apperr.Authentication("Invalid credentials")
	ErrMissingToken       = apperr.Authentication("Access denied. No token provided")
	ErrInvalidToken       = apperr.Authentication("Invalid token")
	ErrTokenExpired       = apperr.Authentication("Token expired")
	ErrForbidden          = apperr.Authorization("Access denied. Insufficient permissions")
	ErrPasswordTooLong    = apperr.Validation("Password must be at most 72 bytes")
)
