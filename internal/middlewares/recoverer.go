package middlewares

import (
	"net/http"
	"runtime/debug"

	"github.com/saulo-duarte/quizhub-api/internal/config"
)

// Recoverer turns a panic into the generic 500 problem envelope. The stack
// goes to the log only.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			config.WithContext(r.Context()).
				WithField("panic", rec).
				WithField("stack", string(debug.Stack())).
				Error("Recovered from panic")
			config.WriteProblem(w, r, http.StatusInternalServerError, "")
		}()

		next.ServeHTTP(w, r)
	})
}
