package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials means the gateway rejected the login request.
	// Transport failures during login are reported separately so callers can
	// tell a wrong password from an unreachable gateway.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoToken means an authenticated call was attempted without a stored
	// session token.
	ErrNoToken = errors.New("no session token, log in first")
)

// APIError is a non-success response from the gateway, carrying the
// server-provided message when one was present in the body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned status %d", e.Status)
}
