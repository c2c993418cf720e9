package apperr

import (
	"errors"
	"net/http"
)

// E carries an HTTP-semantic code alongside the client-facing message.
// Wrapped causes stay server-side; only Msg is ever written to a response.
type E struct {
	Code int
	Msg  string
	Err  error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *E) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &E{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &E{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &E{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &E{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &E{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// CodeOf resolves the HTTP status for any error; unknown errors are 500.
func CodeOf(err error) int {
	var ae *E
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}
