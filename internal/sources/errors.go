package sources

import (
	"fmt"
)

// FetchErrorKind classifies why a window could not be fetched.
type FetchErrorKind string

const (
	FetchErrorTransport FetchErrorKind = "transport"
	FetchErrorAuth      FetchErrorKind = "auth"
	FetchErrorStatus    FetchErrorKind = "status"
	FetchErrorParse     FetchErrorKind = "parse"
)

// FetchError is returned by a RowSource when a whole window cannot be retrieved.
// Individual malformed rows never produce a FetchError; they are skipped.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int // set for auth and status failures
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch rows failed (%s, http %d): %v", e.Kind, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("fetch rows failed (%s): %v", e.Kind, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
