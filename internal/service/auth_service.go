package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"emkaan/api/internal/config"
	"emkaan/api/internal/models"
	"emkaan/api/internal/repository"
	"emkaan/api/internal/security"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// two cases are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the principal persistence surface the auth service drives.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, id string, username string, email string) (models.User, error)
}

type AuthService struct {
	users UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

type LoginResult struct {
	Token string
	User  models.User
}

// Login verifies the password and issues a long-lived bearer token carrying
// the principal id and role. Only an unknown email or a wrong password map
// to ErrInvalidCredentials; store and hash failures propagate so they
// surface as server errors, not as a rejected login.
func (s *AuthService) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("find user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := security.GenerateToken(s.cfg.Security.JWTSecret, user.ID, string(user.Role), s.cfg.Security.JWTTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

// UpdateProfile changes username and/or email of the acting principal.
// Empty fields keep their current value; role and password are never
// mutable through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, user models.User, username string, email string) (models.User, error) {
	if username == "" {
		username = user.Username
	}
	if email == "" {
		email = user.Email
	}
	email = strings.TrimSpace(strings.ToLower(email))

	return s.users.UpdateProfile(ctx, user.ID, username, email)
}
