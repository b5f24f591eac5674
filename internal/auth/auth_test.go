package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Authorization", "Bearer abc")
	tok, err := ExtractToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	r = httptest.NewRequest(http.MethodGet, "/x?token=q123", nil)
	tok, err = ExtractToken(r)
	require.NoError(t, err)
	assert.Equal(t, "q123", tok)

	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	_, err = ExtractToken(r)
	assert.ErrorIs(t, err, ErrMissingToken)

	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Authorization", "Basic zzz")
	_, err = ExtractToken(r)
	assert.Error(t, err)
}

func TestStaticAuthorizer(t *testing.T) {
	a := NewStaticAuthorizer("s3cret")
	p, err := a.Authorize(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "static", p.Mode)

	_, err = a.Authorize(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = a.Authorize(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

type fakeVerifier struct {
	ok  bool
	err error
}

func (f fakeVerifier) VerifyToken(context.Context, string) (bool, error) { return f.ok, f.err }

func TestRemoteAuthorizer(t *testing.T) {
	_, err := NewRemoteAuthorizer(fakeVerifier{ok: true}).Authorize(context.Background(), "t")
	require.NoError(t, err)

	_, err = NewRemoteAuthorizer(fakeVerifier{ok: false}).Authorize(context.Background(), "t")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewRemoteAuthorizer(fakeVerifier{err: errors.New("down")}).Authorize(context.Background(), "t")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		a      Authorizer
		target string
		header string
		want   int
	}{
		{"none accepts anonymous", NewNoopAuthorizer(), "/x", "", http.StatusNoContent},
		{"static bearer", NewStaticAuthorizer("k"), "/x", "Bearer k", http.StatusNoContent},
		{"static query", NewStaticAuthorizer("k"), "/x?token=k", "", http.StatusNoContent},
		{"static missing", NewStaticAuthorizer("k"), "/x", "", http.StatusUnauthorized},
		{"static wrong", NewStaticAuthorizer("k"), "/x", "Bearer z", http.StatusUnauthorized},
		{"malformed header", NewStaticAuthorizer("k"), "/x", "Token k", http.StatusUnauthorized},
		{"remote down", NewRemoteAuthorizer(fakeVerifier{err: errors.New("down")}), "/x?token=k", "", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			Middleware(tc.a, zerolog.Nop())(next).ServeHTTP(rr, r)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusNoContent {
				require.NotNil(t, seen)
			}
		})
	}
}
