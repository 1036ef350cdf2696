package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the three failure kinds. Typed errors below match them via errors.Is.
var (
	ErrMaliciousQuery     = errors.New("query rejected by safety policy")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendExecution   = errors.New("backend execution failed")

	// ErrDriverNotInstalled is returned by a backend executor whose database/sql
	// driver is not linked into the binary.
	ErrDriverNotInstalled = errors.New("driver not installed")
)

// MaliciousQueryError is returned when a query fails the safety policy.
// No backend is contacted before this error is returned.
type MaliciousQueryError struct {
	Dialect string
	Query   string
}

func (e *MaliciousQueryError) Error() string {
	return fmt.Sprintf("the SQL query is deemed unsafe for dialect %q and will not be executed", e.Dialect)
}

// Is reports whether target is ErrMaliciousQuery.
func (e *MaliciousQueryError) Is(target error) bool {
	return target == ErrMaliciousQuery
}

// BackendUnavailableError is returned when no usable executor exists for a dialect.
type BackendUnavailableError struct {
	Dialect   string
	Available []string
	Err       error
}

func (e *BackendUnavailableError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no backend available for dialect %q", e.Dialect)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	fmt.Fprintf(&b, "\nAvailable backends: %v", e.Available)
	fmt.Fprintf(&b, "\nHint: link the backend with import _ \"github.com/leapstack-labs/sqlframe/pkg/adapters/%s\"", e.Dialect)
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBackendUnavailable.
func (e *BackendUnavailableError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// BackendExecutionError wraps a failure raised by the backend while running a query.
type BackendExecutionError struct {
	Dialect string
	Err     error
}

func (e *BackendExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dialect, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *BackendExecutionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBackendExecution.
func (e *BackendExecutionError) Is(target error) bool {
	return target == ErrBackendExecution
}
