// Package errors provides sentinel errors and error types for chessboard-go.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidPlacement indicates a malformed piece placement string.
	ErrInvalidPlacement = errors.New("invalid placement string")

	// ErrInvalidSquare indicates a square index or name outside the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrGameNotFound indicates an unknown game session ID.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidToken indicates a missing, malformed or foreign seat token.
	ErrInvalidToken = errors.New("invalid seat token")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoChange is returned by an update that left the game as it was.
	ErrNoChange = errors.New("game unchanged")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ParseError represents a placement parsing error with position context.
type ParseError struct {
	Err    error  // The underlying error
	Input  string // The text being parsed
	Column int    // Column number (1-based, 0 if unknown)
	Got    string // What was found instead
	Reason string // Short description of the rule that failed
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		loc := fmt.Sprintf("%q", e.Input)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Reason != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("%s, got %s", e.Reason, e.Got))
	} else if e.Reason != "" {
		parts = append(parts, e.Reason)
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
