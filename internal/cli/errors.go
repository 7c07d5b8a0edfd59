package cli

import "errors"

var (
	// ErrNoOrganizations is returned when --org-id yields no usable identifiers.
	ErrNoOrganizations = errors.New("no organization IDs provided")

	// ErrMissingSecretKey is returned when no Clerk secret key is configured.
	ErrMissingSecretKey = errors.New("the Clerk API key must be provided via --secret-key or the CLERK_SECRET_KEY environment variable")
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
