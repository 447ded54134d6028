package main

import (
	"fmt"
	"strings"
)

// shortID renders the first 8 characters of a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func mark(done bool) string {
	if done {
		return "x"
	}
	return "-"
}

// matchID resolves arg against ids, accepting either an exact ID or a
// prefix that matches exactly one entry.
func matchID(ids []string, arg string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no entry matches %q", arg)
	default:
		return "", fmt.Errorf("%q is ambiguous, matches %d entries", arg, len(matches))
	}
}
