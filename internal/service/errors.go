// Package service holds the marketplace's business rules.  Every method that
// acts on behalf of a user takes the caller identity as an explicit userID
// parameter; an empty userID is rejected with ErrUnauthorized.
package service

import (
	"errors"

	"github.com/labstack/gommon/log"
)

var logger = log.New("service")

// ErrUnauthorized is returned when an operation requires a caller identity
// and none was supplied.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a request that is missing or has malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
