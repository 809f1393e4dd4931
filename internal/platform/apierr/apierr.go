package apierr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/yungbote/maturity-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the generic sentinels in pkg/errors by status, so callers below
// the HTTP layer can test errors.Is(err, pkgerrors.ErrNotFound).
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case pkgerrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case pkgerrors.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case pkgerrors.ErrForbidden:
		return e.Status == http.StatusForbidden
	case pkgerrors.ErrInvalidArgument:
		return e.Status == http.StatusBadRequest
	case pkgerrors.ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code, msg string) *Error {
	return New(http.StatusBadRequest, code, errors.New(msg))
}

func Unauthorized(code, msg string) *Error {
	return New(http.StatusUnauthorized, code, errors.New(msg))
}

func Forbidden(code, msg string) *Error {
	return New(http.StatusForbidden, code, errors.New(msg))
}

func NotFound(code, msg string) *Error {
	return New(http.StatusNotFound, code, errors.New(msg))
}

func Conflict(code, msg string) *Error {
	return New(http.StatusConflict, code, errors.New(msg))
}

// As reports whether err carries an *Error and returns it.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}
