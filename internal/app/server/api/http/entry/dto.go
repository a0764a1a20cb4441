package entry

import "carnet/internal/domain/entry"

type listOutput[T any] struct {
	Body []entry.Entry[T]
}

type createInput[T any] struct {
	Body T
}

type createOutput[T any] struct {
	Body entry.Entry[T]
}

type updateInput[T any] struct {
	ID   string `path:"id" doc:"Entry ID"`
	Body T
}

type deleteInput struct {
	ID string `path:"id" doc:"Entry ID"`
}

type AckResponse struct {
	Message string `json:"message" example:"Deleted"`
}

type messageOutput struct {
	Body AckResponse
}
