package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"carnet/internal/domain/session"
	"carnet/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const userKey contextKey = "user"

// Middleware resolves the bearer token to a user and stores it in the request
// context. Requests without a valid token never reach the handler.
func (a *Auth) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.writeErr(api, ctx, http.StatusUnauthorized, "Not authenticated")
			return
		}

		u, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrExpired):
				a.writeErr(api, ctx, http.StatusUnauthorized, "Token has expired")
			case errors.Is(err, session.ErrInvalidToken):
				a.writeErr(api, ctx, http.StatusUnauthorized, "Invalid token")
			case errors.Is(err, session.ErrUnauthorized):
				a.writeErr(api, ctx, http.StatusUnauthorized, "Invalid authentication credentials")
			default:
				a.log.Error("validate token", "error", err)
				a.writeErr(api, ctx, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		next(huma.WithValue(ctx, userKey, u))
	}
}

func (a *Auth) writeErr(api huma.API, ctx huma.Context, status int, msg string) {
	if status == http.StatusUnauthorized {
		ctx.SetHeader("WWW-Authenticate", "Bearer")
	}
	if err := huma.WriteErr(api, ctx, status, msg); err != nil {
		a.log.Error("write error response", "error", err)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUser returns the user the middleware resolved for this request.
func GetUser(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userKey).(user.User)
	return u, ok
}

func GetUserID(ctx context.Context) (string, bool) {
	u, ok := GetUser(ctx)
	if !ok || u.ID == "" {
		return "", false
	}
	return u.ID, true
}

// WithUser is what the middleware does to the context, for handler tests.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
