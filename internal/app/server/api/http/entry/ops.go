package entry

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler[T]) listOp() huma.Operation {
	c := h.service.Collection()
	return huma.Operation{
		OperationID: c.Name + "-list",
		Method:      http.MethodGet,
		Path:        "/" + c.Name,
		Summary:     "List " + c.Summary,
		Description: "Returns the caller's entries, at most 1000 of them.",
		Tags:        []string{c.Name},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler[T]) createOp() huma.Operation {
	c := h.service.Collection()
	return huma.Operation{
		OperationID:   c.Name + "-create",
		Method:        http.MethodPost,
		Path:          "/" + c.Name,
		Summary:       "Create " + c.Summary,
		Tags:          []string{c.Name},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler[T]) updateOp() huma.Operation {
	c := h.service.Collection()
	return huma.Operation{
		OperationID: c.Name + "-update",
		Method:      http.MethodPut,
		Path:        "/" + c.Name + "/{id}",
		Summary:     "Replace " + c.Summary,
		Description: "Replaces every field of the entry. Unknown or foreign ids are acknowledged without effect.",
		Tags:        []string{c.Name},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler[T]) deleteOp() huma.Operation {
	c := h.service.Collection()
	return huma.Operation{
		OperationID: c.Name + "-delete",
		Method:      http.MethodDelete,
		Path:        "/" + c.Name + "/{id}",
		Summary:     "Delete " + c.Summary,
		Description: "Unknown or foreign ids are acknowledged without effect.",
		Tags:        []string{c.Name},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}
