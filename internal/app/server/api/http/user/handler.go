package user

import (
	"context"
	"errors"
	"net/http"

	"carnet/internal/app/server/api/http/middleware/auth"
	"carnet/internal/domain/session"
	"carnet/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	authed     huma.Middlewares
}

// NewHandler builds the auth routes. middleware applies to the public
// operations, authed to the ones that need a bearer token.
func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware, authed huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log.With(slog.String("component", "user_handler")),
		middleware: middleware,
		authed:     authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) signup(ctx context.Context, input *credentialsInput) (*signupOutput, error) {
	if _, err := h.service.Register(ctx, input.Body); err != nil {
		return nil, h.toHTTPError(err)
	}

	return &signupOutput{
		Body: SignupResponse{Message: "Account created successfully"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *credentialsInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	return &loginOutput{
		Body: LoginResponse{
			Token: token,
			User:  u.Summary(),
		},
	}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}
	return &meOutput{Body: u.Summary()}, nil
}

func (h *Handler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, user.ErrAlreadyExists):
		return huma.Error400BadRequest(user.ErrAlreadyExists.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		return huma.Error401Unauthorized("Incorrect email or password")
	case errors.Is(err, user.ErrInvalidInput):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error("auth request failed", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
