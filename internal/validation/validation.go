// Package validation holds input checks shared by the services. Every
// failure is reported as an Error so handlers can map the whole class
// to a bad-request response.
package validation

// Error is a user-facing input validation failure.
type Error string

func (e Error) Error() string { return string(e) }
