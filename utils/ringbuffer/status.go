package ringbuffer

import "github.com/flowbehappy/ringq/pkg/apperror"

// Status is the outcome of a single ring buffer operation.
type Status int

const (
	StatusSuccess Status = iota
	// StatusFailure means the handle is nil or destroyed, or an output pointer is nil.
	// Nothing was mutated.
	StatusFailure
	// StatusOverflow means the push was written and the element at the opposite end was evicted.
	StatusOverflow
	// StatusUnderflow means the buffer was empty. Nothing was mutated or written.
	StatusUnderflow
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusOverflow:
		return "Overflow"
	case StatusUnderflow:
		return "Underflow"
	default:
		return "Unknown"
	}
}

// Ok reports whether the operation took effect.
// Overflow counts as a successful write.
func (s Status) Ok() bool {
	return s == StatusSuccess || s == StatusOverflow
}

// Err converts the status into an error, nil for StatusSuccess.
func (s Status) Err() error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusOverflow:
		return apperror.ErrOverflow.FastGenByArgs()
	case StatusUnderflow:
		return apperror.ErrUnderflow.FastGenByArgs()
	default:
		return apperror.ErrInvalidHandle.FastGenByArgs()
	}
}

// State is the fullness of a ring buffer.
type State int

const (
	StateEmpty State = iota
	StateNonEmpty
	StateFull
	// StateInvalid is reported for a nil or destroyed handle.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateNonEmpty:
		return "NonEmpty"
	case StateFull:
		return "Full"
	default:
		return "Invalid"
	}
}

// Op identifies an operation reported to an Observer.
type Op int

const (
	OpPushBack Op = iota
	OpPushFront
	OpPopFront
	OpPopBack
	OpPeekFront
	OpPeekBack
)

func (o Op) String() string {
	switch o {
	case OpPushBack:
		return "push_back"
	case OpPushFront:
		return "push_front"
	case OpPopFront:
		return "pop_front"
	case OpPopBack:
		return "pop_back"
	case OpPeekFront:
		return "peek_front"
	case OpPeekBack:
		return "peek_back"
	default:
		return "unknown"
	}
}
