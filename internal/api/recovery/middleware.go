// Package recovery turns handler panics into the API's 500 envelope.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/api/respond"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/metrics"
)

// Middleware recovers panics from assistant handlers, logs them on the
// request logger (falling back to log) and answers 500. http.ErrAbortHandler
// is re-raised so net/http can drop the connection.
func Middleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				reqLog := zerolog.Ctx(r.Context())
				if reqLog.GetLevel() == zerolog.Disabled {
					reqLog = &log
				}
				route := r.URL.Path
				if cur := mux.CurrentRoute(r); cur != nil {
					if tmpl, err := cur.GetPathTemplate(); err == nil {
						route = tmpl
					}
				}
				metrics.RecordPanic(route)
				reqLog.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("route", route).
					Bytes("stack", debug.Stack()).
					Msg("handler panic recovered")

				respond.WriteInternalError(w, "internal error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
