package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAcquisition
	KindCollaborator
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAcquisition:
		return "acquisition"
	case KindCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

const FallbackErrorMessage = "Upload process failed."

var (
	ErrMissingFields = errors.New("Missing required fields.")
	ErrNoSource      = errors.New("Provide either a video file or link.")
)

// Error is the failure returned by the upload pipeline. Message is what the
// caller sees; Err keeps the cause for errors.Is/As.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil && e.Err.Error() != "" {
		return e.Err.Error()
	}
	return FallbackErrorMessage
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	e := &Error{Kind: kind, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func Validation(err error) *Error {
	return newError(KindValidation, err)
}

func Acquisition(err error) *Error {
	return newError(KindAcquisition, err)
}

func Collaborator(err error) *Error {
	return newError(KindCollaborator, err)
}

// DownloadError reports a remote link answering with a non-2xx status.
type DownloadError struct {
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("Failed to download video from link (%d)", e.StatusCode)
}

// ErrTooLarge is returned when an asset exceeds the configured size limit.
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("video exceeds the maximum size of %d bytes", e.Limit)
}
