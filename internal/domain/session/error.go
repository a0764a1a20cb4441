package session

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrExpired      = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)
