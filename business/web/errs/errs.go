// Package errs provides types and support related to web v1 functionality.
package errs

import (
	"errors"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/validate"
)

// Response is the form used for API responses from failures in the API.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is used to pass an error during the request through the
// application with web specific context.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewTrusted(err error, status int) error {
	return &Trusted{err, status}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap gives errors.Is access to the wrapped error.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// GetTrusted returns a copy of the Trusted pointer.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}

// =============================================================================

// Classify turns an error returned by a handler into the response the client
// sees. Errors that are not recognized are hidden behind a 500 so internal
// details never leak.
func Classify(err error) (Response, int) {
	status := http.StatusInternalServerError
	if te := GetTrusted(err); te != nil {
		status = te.Status
	}

	switch {
	case validate.IsFieldErrors(err):
		return Response{
			Error:  "data validation error",
			Fields: validate.GetFieldErrors(err).Fields(),
		}, http.StatusBadRequest

	case errors.Is(err, database.ErrMissingField), errors.Is(err, database.ErrInvalidAmount), errors.Is(err, peer.ErrInvalidAddress):
		return Response{Error: err.Error()}, http.StatusBadRequest

	case errors.Is(err, state.ErrTailMoved):
		return Response{Error: err.Error()}, http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		return Response{Error: http.StatusText(status)}, status
	}

	return Response{Error: err.Error()}, status
}
