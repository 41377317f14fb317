package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the HTTP boundary can map it to a
// status code without string matching.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInvalidState
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "storage_failure"
	}
}

// Error is the typed error returned by the ledger, the intake and the
// stores. Err carries the underlying cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Fixed conditions the repository implementations report. Comparable with
// errors.Is since each is a single value.
var (
	ErrSlotNotFound  = &Error{Kind: KindNotFound, Msg: "slot not found"}
	ErrDuplicateSlot = &Error{Kind: KindConflict, Msg: "slot already exists"}
	ErrSlotClaimed   = &Error{Kind: KindInvalidState, Msg: "cannot delete a slot that is pending or confirmed"}
	ErrUnknownSlots  = &Error{Kind: KindInvalidInput, Msg: "one or more selected slots do not exist"}
	ErrSlotsTaken    = &Error{Kind: KindInvalidInput, Msg: "one or more selected slots are no longer available"}
)

func invalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func storageErr(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, defaulting to a storage failure for
// anything untyped (driver errors, context cancellation).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}
