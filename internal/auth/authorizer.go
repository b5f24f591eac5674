package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
)

// Principal identifies the authenticated caller.
type Principal struct {
	Subject string `json:"subject"`
	Mode    string `json:"mode"`
}

// Authorizer validates a credential taken from the request.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*Principal, error)
}

// NoopAuthorizer accepts every request, with or without a credential.
type NoopAuthorizer struct{}

func NewNoopAuthorizer() *NoopAuthorizer { return &NoopAuthorizer{} }

func (NoopAuthorizer) Authorize(context.Context, string) (*Principal, error) {
	return &Principal{Subject: "anonymous", Mode: "none"}, nil
}

// StaticAuthorizer accepts a single configured token.
type StaticAuthorizer struct {
	token []byte
}

func NewStaticAuthorizer(token string) *StaticAuthorizer {
	return &StaticAuthorizer{token: []byte(token)}
}

func (s *StaticAuthorizer) Authorize(_ context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if len(s.token) == 0 || subtle.ConstantTimeCompare(s.token, []byte(token)) != 1 {
		return nil, ErrInvalidToken
	}
	return &Principal{Subject: "admin", Mode: "static"}, nil
}

// TokenVerifier checks a token against the system that issued it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// RemoteAuthorizer delegates to the portfolio backend's session check.
type RemoteAuthorizer struct {
	verifier TokenVerifier
}

func NewRemoteAuthorizer(v TokenVerifier) *RemoteAuthorizer {
	return &RemoteAuthorizer{verifier: v}
}

func (r *RemoteAuthorizer) Authorize(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	ok, err := r.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Principal{Subject: "admin", Mode: "remote"}, nil
}
