// Package respond writes the assistant API's JSON bodies and error envelopes.
package respond

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// RequestIDHeader carries the request id in and out. Error bodies echo it.
const RequestIDHeader = "X-Request-ID"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes data with statusCode. A value that cannot be encoded
// becomes a 500 without a partial body.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(b, '\n'))
}

// WriteError writes the error envelope, echoing the request id already set on w.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:     http.StatusText(statusCode),
		Code:      statusCode,
		Message:   message,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteServiceError maps assistant errors to statuses. Validation messages
// reach the client; memory store and other failures are logged on r's logger
// and answered with a generic message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	reqLog := zerolog.Ctx(r.Context())
	var ve model.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteBadRequest(w, ve.Error())
	case model.IsStorageError(err):
		reqLog.Error().Err(err).Msg("memory store failure")
		WriteInternalError(w, "memory store unavailable")
	default:
		reqLog.Error().Err(err).Msg("request failed")
		WriteInternalError(w, "internal error")
	}
}
