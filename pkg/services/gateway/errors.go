package gateway

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport failures and non-2xx responses without a
// structured error body. Match with errors.Is.
var ErrNetwork = errors.New("generator unreachable")

// BackendError carries the generator's structured `detail` message.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generator rejected request (%d): %s", e.StatusCode, e.Detail)
}

// CredentialError marks a credentialed operation rejected for invalid AWS
// credentials, so callers can prompt for re-entry.
type CredentialError struct {
	Detail string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("aws credentials rejected: %s", e.Detail)
}
