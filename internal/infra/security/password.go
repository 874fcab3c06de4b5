package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	domuser "example.com/shopfront/internal/domain/user"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// BcryptService hashes user passwords. Its errors are domuser sentinels so
// bad input never reaches the client as an internal failure.
type BcryptService struct {
	cost int
}

func NewBcryptService(cost int) *BcryptService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

func (s *BcryptService) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", domuser.ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domuser.ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

// Compare reports ErrInvalidCredentials for a wrong or over-long password.
func (s *BcryptService) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return domuser.ErrInvalidCredentials
	default:
		return err
	}
}
