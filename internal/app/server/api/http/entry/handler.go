package entry

import (
	"context"
	"errors"
	"net/http"

	"carnet/internal/app/server/api/http/middleware/auth"
	"carnet/internal/domain/entry"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Handler serves the four routes of one collection. PUT is only mounted for
// updatable collections.
type Handler[T any] struct {
	service    entry.Servicer[T]
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler[T any](service entry.Servicer[T], log *slog.Logger, mws huma.Middlewares) *Handler[T] {
	return &Handler[T]{
		service: service,
		log: log.With(
			slog.String("component", "entry_handler"),
			slog.String("collection", service.Collection().Name),
		),
		middleware: mws,
	}
}

func (h *Handler[T]) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	if h.service.Collection().Updatable {
		huma.Register(api, h.updateOp(), h.update)
	}
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler[T]) list(ctx context.Context, _ *struct{}) (*listOutput[T], error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	entries, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &listOutput[T]{Body: entries}, nil
}

func (h *Handler[T]) create(ctx context.Context, input *createInput[T]) (*createOutput[T], error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	e, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &createOutput[T]{Body: e}, nil
}

func (h *Handler[T]) update(ctx context.Context, input *updateInput[T]) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	if err := h.service.Update(ctx, userID, input.ID, input.Body); err != nil {
		return nil, h.toHTTPError(err)
	}

	return &messageOutput{Body: AckResponse{Message: "Updated"}}, nil
}

func (h *Handler[T]) delete(ctx context.Context, input *deleteInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.toHTTPError(err)
	}

	return &messageOutput{Body: AckResponse{Message: "Deleted"}}, nil
}

func (h *Handler[T]) toHTTPError(err error) error {
	switch {
	case errors.Is(err, entry.ErrInvalidData):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, entry.ErrNotUpdatable):
		return huma.NewError(http.StatusMethodNotAllowed, err.Error())
	case errors.Is(err, entry.ErrNoOwner):
		return huma.Error401Unauthorized("Not authenticated")
	default:
		h.log.Error("entry request failed", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
