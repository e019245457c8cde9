package semchan

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrFull is returned by a non-blocking send that could not proceed.
	ErrFull = errors.New("semchan: channel full")

	// ErrEmpty is returned by a non-blocking receive that could not proceed.
	ErrEmpty = errors.New("semchan: channel empty")

	// ErrClosed is returned by every operation on a closed channel, except
	// receives that can still drain buffered values, and by a second Close.
	ErrClosed = errors.New("semchan: channel closed")

	// ErrDestroy is returned by Destroy on an open or already destroyed
	// channel.
	ErrDestroy = errors.New("semchan: destroy on open or destroyed channel")

	// ErrGeneric reports an internal failure or a misuse of the API.
	ErrGeneric = errors.New("semchan: generic error")

	// ErrTimeout is returned by the timed variants when the wait expires.
	ErrTimeout = errors.New("semchan: operation timed out")

	// ErrNotReady is returned by [TrySelect] when no case can proceed.
	ErrNotReady = errors.New("semchan: no case ready")

	// ErrNoCases is returned by Select called without any case.
	ErrNoCases = fmt.Errorf("%w: select with no cases", ErrGeneric)

	// ErrNilSlot is returned by Select for a case with a nil channel or a
	// nil receive destination.
	ErrNilSlot = fmt.Errorf("%w: nil channel or payload slot", ErrGeneric)
)

// Status is the coarse outcome of a channel or select operation.
type Status int

const (
	Success Status = iota
	ChannelFull
	ChannelEmpty
	ClosedError
	DestroyError
	GenericError
	Timeout
	Canceled
)

var statusNames = [...]string{
	Success:      "success",
	ChannelFull:  "channel full",
	ChannelEmpty: "channel empty",
	ClosedError:  "closed",
	DestroyError: "destroy error",
	GenericError: "generic error",
	Timeout:      "timeout",
	Canceled:     "canceled",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// StatusOf classifies err. Errors that are not produced by this package
// map to GenericError.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrFull):
		return ChannelFull
	case errors.Is(err, ErrEmpty), errors.Is(err, ErrNotReady):
		return ChannelEmpty
	case errors.Is(err, ErrClosed):
		return ClosedError
	case errors.Is(err, ErrDestroy):
		return DestroyError
	case errors.Is(err, ErrTimeout):
		return Timeout
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	default:
		return GenericError
	}
}

// CaseError attributes a Select failure to the case that produced it.
type CaseError struct {
	Index int
	Dir   Dir
	Err   error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("semchan: select case %d (%s): %v", e.Index, e.Dir, e.Err)
}

func (e *CaseError) Unwrap() error {
	return e.Err
}

// IsCaseError reports whether err (or any error in its chain) is a [*CaseError].
func IsCaseError(err error) bool {
	if err == nil {
		return false
	}
	var ce *CaseError
	return errors.As(err, &ce)
}

// IndexOf returns the case index recorded in the first [*CaseError] in
// err's chain, or -1 if there is none.
func IndexOf(err error) int {
	var ce *CaseError
	if errors.As(err, &ce) {
		return ce.Index
	}
	return -1
}
