package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/validate"
)

// UserStore is the persistence surface AuthService needs. Implemented by
// repository.UserRepository; tests substitute an in-memory store.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register validates the payload, hashes the password and stores the user.
// The returned user carries no token; the client logs in separately.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := validate.Register(name, email, password).Err(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        validate.NormalizeEmail(email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and issues a bearer token. Unknown email and
// wrong password both come back as ErrInvalidCredentials so the response
// never reveals which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := validate.Login(email, password).Err(); err != nil {
		return "", err
	}

	u, err := s.users.GetByEmail(ctx, validate.NormalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return GenerateJWT(u.ID, u.Email)
}

// Me returns the caller's profile. The record can vanish after token
// issuance, in which case this is a plain not-found.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
