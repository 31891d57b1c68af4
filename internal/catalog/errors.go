// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"fmt"

	"github.com/pdiddy/study-planner/pkg/types"
)

var (
	// ErrConfig marks a malformed embedded catalog payload.
	ErrConfig = errors.New("invalid catalog configuration")

	// ErrUnsupportedGrade marks a grade with no catalog section.
	ErrUnsupportedGrade = errors.New("unsupported grade")

	// ErrBookNotFound marks a subject with no books in a grade.
	ErrBookNotFound = errors.New("book not found")

	// ErrTitleNotFound marks a title query with no matching book.
	ErrTitleNotFound = errors.New("title not found")

	// ErrUnknownSubject marks subject input that names no subject.
	ErrUnknownSubject = errors.New("unknown subject")
)

// ConfigError reports why the catalog payload could not be loaded.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrConfig, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrConfig, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(err error, format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// UnsupportedGradeError carries the rejected grade.
type UnsupportedGradeError struct {
	Grade types.Grade
}

func (e *UnsupportedGradeError) Error() string {
	return fmt.Sprintf("%v %d (supported: %v)", ErrUnsupportedGrade, int(e.Grade), types.SupportedGrades)
}

func (e *UnsupportedGradeError) Is(target error) bool { return target == ErrUnsupportedGrade }

// BookNotFoundError carries the subject and grade that have no books.
type BookNotFoundError struct {
	Subject types.Subject
	Grade   types.Grade
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("no book found for subject %s and grade %d", e.Subject, int(e.Grade))
}

func (e *BookNotFoundError) Is(target error) bool { return target == ErrBookNotFound }

// TitleNotFoundError carries the title query that matched nothing.
type TitleNotFoundError struct {
	Title string
}

func (e *TitleNotFoundError) Error() string {
	return fmt.Sprintf("no book found with title %q", e.Title)
}

func (e *TitleNotFoundError) Is(target error) bool { return target == ErrTitleNotFound }
