// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks a failed, timed out or non-2xx document request.
	ErrNetwork = errors.New("network error")

	// ErrIO marks a failure to write the document to its destination.
	ErrIO = errors.New("io error")

	// ErrInvalidChapter marks a chapter number that cannot be rendered as
	// two digits.
	ErrInvalidChapter = errors.New("invalid chapter")
)

// NetworkError carries the URL that failed and, when the server answered,
// its status code. Nothing is written to the destination when it occurs.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: GET %s: status %d", ErrNetwork, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%v: GET %s: %v", ErrNetwork, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// IOError carries the destination path and the underlying cause.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v: writing %s: %v", ErrIO, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
