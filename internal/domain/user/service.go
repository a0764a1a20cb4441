package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// dummyHash is compared against when the email is unknown, so a failed login
// costs the same bcrypt work whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("carnet-dummy-password"), bcrypt.DefaultCost)

type Servicer interface {
	Register(ctx context.Context, c Credentials) (User, error)
	Authenticate(ctx context.Context, c Credentials) (User, error)
	Find(ctx context.Context, id string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, c Credentials) (User, error) {
	c.Email = NormalizeEmail(c.Email)
	if err := s.validator.ValidateRegister(c); err != nil {
		s.log.Debug("validation failed", "email", c.Email, "error", err)
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, err := s.repo.FindByEmail(ctx, c.Email)
	switch {
	case err == nil:
		return User{}, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        c.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	// the unique index still decides when two signups race past the lookup above
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, ErrAlreadyExists
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)

	return u, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *Service) Authenticate(ctx context.Context, c Credentials) (User, error) {
	c.Email = NormalizeEmail(c.Email)
	if err := s.validator.ValidateLogin(c); err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(c.Password))
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, c.Email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return User{}, fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(c.Password))
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Find(ctx context.Context, id string) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
