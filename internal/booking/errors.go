package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a booking failure so the transport layer can map it
// to a response code without string matching.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindDuplicate
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error is the only error type returned by the engine. All kinds are
// recoverable business errors; none indicate corrupted state.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf reports the kind of an engine error. ok is false for errors
// that did not originate here.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func validationErr(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func duplicateErr(format string, args ...any) error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func conflictErr(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}
