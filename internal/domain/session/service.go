package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"

	"carnet/internal/domain/user"
)

const DefaultTTL = 7 * 24 * time.Hour

// UserFinder resolves the subject of a token to a stored user.
type UserFinder interface {
	Find(ctx context.Context, id string) (user.User, error)
}

type Servicer interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (user.User, error)
}

// Service mints and verifies self-contained HS256 tokens. Nothing is stored
// server side, so expiry is the only way a token stops working.
type Service struct {
	users  UserFinder
	secret []byte
	ttl    time.Duration
	log    *slog.Logger
	now    func() time.Time
}

func NewService(users UserFinder, secret string, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With(slog.String("component", "session_service")),
		now:    time.Now,
	}
}

func (s *Service) Create(_ context.Context, userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Validate verifies signature and expiry, then checks that the subject still
// resolves to a user. Every failure wraps ErrUnauthorized.
func (s *Service) Validate(ctx context.Context, token string) (user.User, error) {
	if token == "" {
		return user.User{}, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.User{}, errors.Join(ErrUnauthorized, ErrExpired)
		}
		return user.User{}, errors.Join(ErrUnauthorized, ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return user.User{}, errors.Join(ErrUnauthorized, ErrInvalidToken)
	}

	u, err := s.users.Find(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.log.Debug("token subject no longer exists", "user_id", claims.Subject)
			return user.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return user.User{}, fmt.Errorf("resolve token subject: %w", err)
	}

	return u, nil
}
