package ringbuffer

import (
	"math"

	"github.com/flowbehappy/ringq/pkg/apperror"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// RingBuffer is a fixed capacity double-ended ring buffer.
//
// The backing slice has capacity+1 slots. The spare slot keeps head == tail
// meaning empty, so full and empty can never be confused.
// Elements live in the half-open range [head, tail) modulo capacity+1.
//
// A full buffer accepts pushes by evicting the element at the opposite end:
// PushBack drops the front, PushFront drops the back.
//
// RingBuffer is not safe for concurrent use.
type RingBuffer[T any] struct {
	buffer     []T
	capacity   int
	head, tail int

	logger   *zap.Logger
	observer Observer

	zero T
}

// New creates a ring buffer holding at most capacity elements.
// Capacity must be at least 1.
func New[T any](capacity int, opts ...Option[T]) (*RingBuffer[T], error) {
	o := newOptions(opts)
	if capacity < 1 {
		o.logger.Debug("reject ring buffer capacity", zap.Int("capacity", capacity))
		return nil, apperror.ErrInvalidCapacity.GenWithStackByArgs(capacity)
	}
	if capacity == math.MaxInt {
		return nil, apperror.ErrAllocation.GenWithStackByArgs(uint64(capacity) + 1)
	}

	slots, err := o.allocator(capacity + 1)
	if err == nil && len(slots) != capacity+1 {
		err = errors.Errorf("allocator returned %d slots", len(slots))
	}
	if err != nil {
		o.logger.Debug("allocate ring buffer failed",
			zap.Int("capacity", capacity), zap.Error(err))
		return nil, errors.Annotate(apperror.ErrAllocation.GenWithStackByArgs(capacity+1), err.Error())
	}

	return &RingBuffer[T]{
		buffer:   slots,
		capacity: capacity,
		logger:   o.logger,
		observer: o.observer,
	}, nil
}

// valid is the entry guard of every operation. It runs before any index arithmetic.
func (rb *RingBuffer[T]) valid() bool {
	return rb != nil && rb.buffer != nil
}

func (rb *RingBuffer[T]) next(i int) int {
	return (i + 1) % (rb.capacity + 1)
}

func (rb *RingBuffer[T]) prev(i int) int {
	if i == 0 {
		return rb.capacity
	}
	return i - 1
}

func (rb *RingBuffer[T]) observe(op Op, status Status) {
	if status != StatusSuccess {
		if ce := rb.logger.Check(zap.DebugLevel, "ring buffer operation"); ce != nil {
			ce.Write(zap.Stringer("op", op), zap.Stringer("status", status),
				zap.Int("len", rb.Len()), zap.Int("capacity", rb.capacity))
		}
	}
	if rb.observer != nil {
		rb.observer.Observe(op, status, rb.Len())
	}
}

// PushBack appends item after the newest element.
// On a full buffer the oldest element is dropped and StatusOverflow is returned.
func (rb *RingBuffer[T]) PushBack(item T) Status {
	if !rb.valid() {
		return StatusFailure
	}
	status := StatusSuccess
	rb.buffer[rb.tail] = item
	rb.tail = rb.next(rb.tail)
	if rb.tail == rb.head {
		// The front element now sits in the spare slot.
		rb.buffer[rb.head] = rb.zero
		rb.head = rb.next(rb.head)
		status = StatusOverflow
	}
	rb.observe(OpPushBack, status)
	return status
}

// PushFront inserts item before the oldest element.
// On a full buffer the newest element is dropped and StatusOverflow is returned.
func (rb *RingBuffer[T]) PushFront(item T) Status {
	if !rb.valid() {
		return StatusFailure
	}
	status := StatusSuccess
	rb.head = rb.prev(rb.head)
	rb.buffer[rb.head] = item
	if rb.head == rb.tail {
		rb.tail = rb.prev(rb.tail)
		rb.buffer[rb.tail] = rb.zero
		status = StatusOverflow
	}
	rb.observe(OpPushFront, status)
	return status
}

// PopFront removes and returns the oldest element.
func (rb *RingBuffer[T]) PopFront() (T, Status) {
	if !rb.valid() {
		return rb.zeroValue(), StatusFailure
	}
	if rb.head == rb.tail {
		rb.observe(OpPopFront, StatusUnderflow)
		return rb.zero, StatusUnderflow
	}
	item := rb.buffer[rb.head]
	rb.buffer[rb.head] = rb.zero
	rb.head = rb.next(rb.head)
	rb.observe(OpPopFront, StatusSuccess)
	return item, StatusSuccess
}

// PopBack removes and returns the newest element.
func (rb *RingBuffer[T]) PopBack() (T, Status) {
	if !rb.valid() {
		return rb.zeroValue(), StatusFailure
	}
	if rb.head == rb.tail {
		rb.observe(OpPopBack, StatusUnderflow)
		return rb.zero, StatusUnderflow
	}
	rb.tail = rb.prev(rb.tail)
	item := rb.buffer[rb.tail]
	rb.buffer[rb.tail] = rb.zero
	rb.observe(OpPopBack, StatusSuccess)
	return item, StatusSuccess
}

// PeekFront returns the oldest element without removing it.
func (rb *RingBuffer[T]) PeekFront() (T, Status) {
	if !rb.valid() {
		return rb.zeroValue(), StatusFailure
	}
	if rb.head == rb.tail {
		rb.observe(OpPeekFront, StatusUnderflow)
		return rb.zero, StatusUnderflow
	}
	rb.observe(OpPeekFront, StatusSuccess)
	return rb.buffer[rb.head], StatusSuccess
}

// PeekBack returns the newest element without removing it.
func (rb *RingBuffer[T]) PeekBack() (T, Status) {
	if !rb.valid() {
		return rb.zeroValue(), StatusFailure
	}
	if rb.head == rb.tail {
		rb.observe(OpPeekBack, StatusUnderflow)
		return rb.zero, StatusUnderflow
	}
	rb.observe(OpPeekBack, StatusSuccess)
	return rb.buffer[rb.prev(rb.tail)], StatusSuccess
}

// PopFrontTo stores the oldest element into out and removes it.
// out is written only when StatusSuccess is returned.
func (rb *RingBuffer[T]) PopFrontTo(out *T) Status {
	return rb.into(out, rb.PopFront)
}

// PopBackTo stores the newest element into out and removes it.
// out is written only when StatusSuccess is returned.
func (rb *RingBuffer[T]) PopBackTo(out *T) Status {
	return rb.into(out, rb.PopBack)
}

// PeekFrontTo stores the oldest element into out.
// out is written only when StatusSuccess is returned.
func (rb *RingBuffer[T]) PeekFrontTo(out *T) Status {
	return rb.into(out, rb.PeekFront)
}

// PeekBackTo stores the newest element into out.
// out is written only when StatusSuccess is returned.
func (rb *RingBuffer[T]) PeekBackTo(out *T) Status {
	return rb.into(out, rb.PeekBack)
}

func (rb *RingBuffer[T]) into(out *T, fn func() (T, Status)) Status {
	if !rb.valid() || out == nil {
		return StatusFailure
	}
	item, status := fn()
	if status == StatusSuccess {
		*out = item
	}
	return status
}

// zeroValue is safe to call on a nil receiver.
func (rb *RingBuffer[T]) zeroValue() T {
	var zero T
	return zero
}

// State reports whether the buffer is empty, full or neither.
func (rb *RingBuffer[T]) State() State {
	if !rb.valid() {
		return StateInvalid
	}
	if rb.next(rb.tail) == rb.head {
		return StateFull
	}
	if rb.head == rb.tail {
		return StateEmpty
	}
	return StateNonEmpty
}

func (rb *RingBuffer[T]) IsFull() bool {
	return rb.State() == StateFull
}

func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.State() == StateEmpty
}

// Len returns the number of held elements, 0 for an invalid handle.
func (rb *RingBuffer[T]) Len() int {
	if !rb.valid() {
		return 0
	}
	return (rb.tail - rb.head + rb.capacity + 1) % (rb.capacity + 1)
}

// Cap returns the maximum number of held elements, 0 for an invalid handle.
func (rb *RingBuffer[T]) Cap() int {
	if !rb.valid() {
		return 0
	}
	return rb.capacity
}

// Clear drops every element and keeps the backing storage.
func (rb *RingBuffer[T]) Clear() Status {
	if !rb.valid() {
		return StatusFailure
	}
	for i := range rb.buffer {
		rb.buffer[i] = rb.zero
	}
	rb.head, rb.tail = 0, 0
	return StatusSuccess
}

// Destroy releases the backing storage. Any later call on the buffer,
// including a second Destroy, returns StatusFailure.
func (rb *RingBuffer[T]) Destroy() Status {
	if !rb.valid() {
		if rb != nil {
			rb.logger.Debug("destroy invalid ring buffer")
		}
		return StatusFailure
	}
	rb.buffer = nil
	rb.head, rb.tail = 0, 0
	return StatusSuccess
}
