package domain

import "errors"

var (
	// ErrNotFound covers any unresolvable scope: short code, alias,
	// topic with no links, or user with no links.
	ErrNotFound = errors.New("not found")

	// ErrAliasTaken is returned when a requested custom alias collides
	// with an existing short code or alias.
	ErrAliasTaken = errors.New("custom alias already in use")

	// ErrUnauthenticated is returned when an operation requires a user
	// identity and the request carries none.
	ErrUnauthenticated = errors.New("authentication required")
)
