package validation

import (
	"strings"
)

// ValidateUsername checks the display name picked at registration.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return Error("username is required")
	}

	if len(trimmed) > 100 {
		return Error("username is too long (max 100 characters)")
	}

	return nil
}
