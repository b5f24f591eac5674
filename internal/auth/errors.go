package auth

import "errors"

var (
	// ErrMissingToken is returned when the request carries no credential.
	ErrMissingToken = errors.New("missing credential")

	// ErrInvalidToken is returned when the credential is not accepted.
	ErrInvalidToken = errors.New("invalid or expired token")
)
