// Package cerr contains the core errors which may be returned by the
// use cases layer. Each Error carries the HTTP status code which best
// describes it, so the REST adapter can report it without knowing
// about the specific use case which has failed.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest marks err as a validation error. The caller input was
// malformed or out of range and retrying it will not help.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// NotFound marks err as a not-found error. One or more referenced
// entities do not exist.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// DataStore marks err as a data store access failure. Its details are
// meant for the server logs, while end-users should only be asked to
// retry later.
func DataStore(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusServiceUnavailable}
}

// IsDataStore reports if err is or wraps a DataStore error.
func IsDataStore(err error) bool {
	var ce *Error
	return errors.As(err, &ce) &&
		ce.HTTPStatusCode == http.StatusServiceUnavailable
}

// OrDataStore returns err unchanged if it already wraps an *Error,
// otherwise, it is marked as a DataStore error. Nil is kept as nil.
// Use cases call it on errors which were returned from a repo.Pool
// since anything which was not classified by a repository belongs to
// the connection management itself.
func OrDataStore(err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return DataStore(err)
}
