package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/shopfront/internal/apperr"
	domuser "example.com/shopfront/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	UserID string
	Role   domuser.Role
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	userRepo domuser.Repository
	hasher   PasswordHasher
	tokens   TokenService
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	userRepo domuser.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	log *zap.Logger,
) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Result struct {
	Token string
	User  *domuser.User
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	role, err := domuser.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	email := domuser.NormalizeEmail(in.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domuser.ErrEmailAlreadyUsed
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	// Concurrent registrations can both pass ExistsByEmail; the store's
	// unique email index rejects the loser with ErrEmailAlreadyUsed.
	u, err := s.userRepo.Create(ctx, &domuser.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &Result{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	email := domuser.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domuser.ErrUserNotFound) {
			return nil, domuser.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, domuser.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		s.log.Debug("Password mismatch", zap.String("user_id", u.ID))
		return nil, domuser.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}

	return &Result{Token: token, User: u}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*domuser.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Authenticate resolves a bearer token to a live, active user. The role is
// taken from storage rather than from the token.
func (s *Service) Authenticate(ctx context.Context, token string) (*domuser.User, error) {
	if token == "" {
		return nil, domuser.ErrMissingToken
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		if apperr.Is(err, apperr.KindAuthentication) {
			return nil, err
		}
		return nil, domuser.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domuser.ErrUserNotFound) {
			return nil, domuser.ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, domuser.ErrInvalidToken
	}
	return u, nil
}
