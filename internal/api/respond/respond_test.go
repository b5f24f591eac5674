package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteBadRequest(rr, "message is required")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "Bad Request", Code: 400, Message: "message is required"}, body)
}

func TestWriteErrorEchoesRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set(RequestIDHeader, "abc-123")
	WriteInternalError(rr, "internal error")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "abc-123", body.RequestID)
	assert.Equal(t, 500, body.Code)
}

func TestWriteServiceError(t *testing.T) {
	cases := map[string]struct {
		err     error
		status  int
		message string
	}{
		"validation": {model.NewValidationError("message", "cannot be empty"), http.StatusBadRequest, ""},
		"storage":    {model.NewStorageError("append", errors.New("disk full")), http.StatusInternalServerError, "memory store unavailable"},
		"other":      {errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for name, tc := range cases {
		rr := httptest.NewRecorder()
		WriteServiceError(rr, httptest.NewRequest(http.MethodGet, "/api/ai/memory", nil), tc.err)

		assert.Equal(t, tc.status, rr.Code, name)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), name)
		if tc.message != "" {
			assert.Equal(t, tc.message, body.Message, name)
		}
		assert.NotContains(t, body.Message, "disk full", name)
	}
}
