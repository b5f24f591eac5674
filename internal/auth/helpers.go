package auth

import (
	"errors"
	"net/http"
	"strings"
)

// TokenQueryParam is the query parameter the dashboard uses for the admin token.
const TokenQueryParam = "token"

// ExtractToken reads the credential from "Authorization: Bearer <token>", falling
// back to the token query parameter.
func ExtractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
		}
		return parts[1], nil
	}
	if tok := r.URL.Query().Get(TokenQueryParam); tok != "" {
		return tok, nil
	}
	return "", ErrMissingToken
}
