package entry

import "errors"

var (
	ErrInvalidData       = errors.New("invalid entry data")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrNotUpdatable      = errors.New("collection does not support updates")
	ErrNoOwner           = errors.New("entry owner is required")
)
