package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Recover turns a panicking handler into a 500 so no request ever
// escapes without a structured response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			slog.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
		}()

		next.ServeHTTP(w, r)
	})
}
