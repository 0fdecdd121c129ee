package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a submission failed
type ErrorKind string

const (
	InputError      ErrorKind = "InputError"
	FilesystemError ErrorKind = "FilesystemError"
	SubmissionError ErrorKind = "SubmissionError"
)

// Process exit codes
const (
	ExitOK         = 0
	ExitUsage      = 2
	ExitInput      = 3
	ExitFilesystem = 4
	ExitSubmission = 5
)

// SubmitError is returned by every failing step of a submission
type SubmitError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Cause lets errors.Cause from github.com/pkg/errors reach the underlying error.
func (e *SubmitError) Cause() error { return e.Err }

func inputErrorf(op string, err error, format string, args ...interface{}) error {
	return &SubmitError{Kind: InputError, Op: op, Err: errors.Wrapf(err, format, args...)}
}

func filesystemErrorf(op string, err error, format string, args ...interface{}) error {
	return &SubmitError{Kind: FilesystemError, Op: op, Err: errors.Wrapf(err, format, args...)}
}

func submissionErrorf(op string, err error, format string, args ...interface{}) error {
	return &SubmitError{Kind: SubmissionError, Op: op, Err: errors.Wrapf(err, format, args...)}
}

// KindOf returns the kind of err, or "" if err is not a *SubmitError
func KindOf(err error) ErrorKind {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// ExitCode maps err to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case InputError:
		return ExitInput
	case FilesystemError:
		return ExitFilesystem
	case SubmissionError:
		return ExitSubmission
	}
	return 1
}
