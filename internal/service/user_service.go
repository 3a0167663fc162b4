package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/auth"
	"github.com/oaknest/storefront/internal/config"
	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
)

// Default credentials for the bootstrap admin. SeedAdmin only creates the
// account if it does not exist, so running it twice is harmless.
const (
	seedAdminName     = "Store Admin"
	seedAdminEmail    = "admin@storefront.local"
	seedAdminPassword = "admin123"
)

type UserService struct {
	repo repository.UserRepository
	cfg  config.AuthConfig
	log  *zap.SugaredLogger
}

func NewUserService(repo repository.UserRepository, cfg config.AuthConfig, log *zap.SugaredLogger) *UserService {
	return &UserService{repo: repo, cfg: cfg, log: log}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, "", ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailPattern.MatchString(email) {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidEmail, in.Email)
	}
	if len(in.Password) < 6 {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.Email, user.Name, user.IsAdmin, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same failure for unknown email and wrong password.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.Email, user.Name, user.IsAdmin, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Profile(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// SeedAdmin creates the bootstrap admin account if it is missing and reports
// whether it did so.
func (s *UserService) SeedAdmin(ctx context.Context) (*domain.User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, seedAdminEmail)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, err
	}

	hash, err := auth.HashPassword(seedAdminPassword)
	if err != nil {
		return nil, false, err
	}

	admin := &domain.User{
		Name:         seedAdminName,
		Email:        seedAdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		// Lost a race with a concurrent seed; the account exists now.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			existing, getErr := s.repo.GetByEmail(ctx, seedAdminEmail)
			return existing, false, getErr
		}
		return nil, false, err
	}

	s.log.Infow("seeded bootstrap admin", "email", seedAdminEmail)
	return admin, true, nil
}
