package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Amoory-Elmihy-77/Baraka/internal/ctxkeys"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RequireAuth verifies the bearer token and puts the user ID into the
// request context. Every failure mode past a missing header collapses
// into one "token invalid" response.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "Not authorized, token missing")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")

			userID, err := authService.VerifyJWT(token)
			if err != nil {
				writeUnauthorized(w, "Not authorized, token invalid")
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
