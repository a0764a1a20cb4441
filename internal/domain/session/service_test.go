package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"carnet/internal/domain/user"
)

// MockUserFinder is a mock implementation of the UserFinder interface for testing
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) Find(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

const testSecret = "test-secret"

func newTestService(users UserFinder, now time.Time) *Service {
	s := NewService(users, testSecret, DefaultTTL, slog.Default())
	s.now = func() time.Time { return now }
	return s
}

func TestService_CreateAndValidate(t *testing.T) {
	users := new(MockUserFinder)
	now := time.Now()
	service := newTestService(users, now)

	users.On("Find", mock.Anything, "u1").Return(user.User{ID: "u1", Email: "a@x.com"}, nil)

	token, err := service.Create(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	u, err := service.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	users.AssertExpectations(t)
}

func TestService_Create_ClaimsCarrySubjectAndSevenDayExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(new(MockUserFinder), now)

	token, err := service.Create(context.Background(), "u1")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, now.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestService_Validate_ValidUntilExpiry(t *testing.T) {
	users := new(MockUserFinder)
	users.On("Find", mock.Anything, "u1").Return(user.User{ID: "u1"}, nil)

	issued := time.Now()
	token, err := newTestService(users, issued).Create(context.Background(), "u1")
	require.NoError(t, err)

	_, err = newTestService(users, issued.Add(DefaultTTL-time.Minute)).Validate(context.Background(), token)
	assert.NoError(t, err)

	_, err = newTestService(users, issued.Add(DefaultTTL+time.Minute)).Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestService_Validate_Rejections(t *testing.T) {
	now := time.Now()

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "u1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not.a.jwt"},
		{name: "wrong secret", token: otherSecret},
		{name: "no expiry", token: noExpiry},
		{name: "no subject", token: noSubject},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserFinder)
			service := newTestService(users, now)

			_, err := service.Validate(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrUnauthorized)
			users.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Validate_SubjectGone(t *testing.T) {
	users := new(MockUserFinder)
	service := newTestService(users, time.Now())

	users.On("Find", mock.Anything, "u1").Return(user.User{}, user.ErrNotFound)

	token, err := service.Create(context.Background(), "u1")
	require.NoError(t, err)

	_, err = service.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Validate_StoreFailureIsNotUnauthorized(t *testing.T) {
	users := new(MockUserFinder)
	service := newTestService(users, time.Now())

	users.On("Find", mock.Anything, "u1").Return(user.User{}, errors.New("connection reset"))

	token, err := service.Create(context.Background(), "u1")
	require.NoError(t, err)

	_, err = service.Validate(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestNewService_DefaultTTL(t *testing.T) {
	s := NewService(new(MockUserFinder), testSecret, 0, slog.Default())
	assert.Equal(t, DefaultTTL, s.ttl)
}
