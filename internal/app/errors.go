package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the user asked the application to exit
	// normally. Drivers return it from their run loops; entry points
	// treat it as a clean exit.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates a run loop was started twice.
	ErrAlreadyRunning = errors.New("already running")
)

// InitError reports a component that failed to initialize during
// bootstrap.
type InitError struct {
	// Component names what failed: "settings", "store".
	Component string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
