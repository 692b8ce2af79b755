package boundedqueue

import (
	"strings"

	"github.com/flowbehappy/ringq/pkg/apperror"
	"github.com/flowbehappy/ringq/utils/ringbuffer"
	"github.com/pingcap/errors"
)

// Policy decides which end Pop and Peek read from.
type Policy int

const (
	// PolicyFIFO pops the oldest element.
	PolicyFIFO Policy = iota
	// PolicyLIFO pops the newest element. When full, a push drops the oldest one.
	PolicyLIFO
)

func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyLIFO:
		return "lifo"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo", "":
		return PolicyFIFO, nil
	case "lifo":
		return PolicyLIFO, nil
	default:
		return PolicyFIFO, apperror.ErrInvalidPolicy.GenWithStackByArgs(s)
	}
}

// Queue is a bounded queue that overwrites its oldest element when full.
type Queue[T any] struct {
	rb     *ringbuffer.RingBuffer[T]
	policy Policy
}

func New[T any](capacity int, policy Policy, opts ...ringbuffer.Option[T]) (*Queue[T], error) {
	if err := checkPolicy(policy); err != nil {
		return nil, err
	}
	rb, err := ringbuffer.New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{rb: rb, policy: policy}, nil
}

// Wrap builds a queue over an existing ring buffer. The queue and the caller
// share rb, so operations on either side are visible to the other.
func Wrap[T any](rb *ringbuffer.RingBuffer[T], policy Policy) (*Queue[T], error) {
	if rb == nil {
		return nil, errors.Trace(apperror.NewAppError(apperror.ErrorTypeFailure, "nil ring buffer"))
	}
	if err := checkPolicy(policy); err != nil {
		return nil, err
	}
	return &Queue[T]{rb: rb, policy: policy}, nil
}

func checkPolicy(policy Policy) error {
	if policy != PolicyFIFO && policy != PolicyLIFO {
		return apperror.ErrInvalidPolicy.GenWithStackByArgs(policy.String())
	}
	return nil
}

func (q *Queue[T]) Policy() Policy {
	return q.policy
}

// Push adds item. StatusOverflow means the oldest element was dropped.
func (q *Queue[T]) Push(item T) ringbuffer.Status {
	if q == nil {
		return ringbuffer.StatusFailure
	}
	return q.rb.PushBack(item)
}

func (q *Queue[T]) Pop() (T, ringbuffer.Status) {
	if q == nil {
		var zero T
		return zero, ringbuffer.StatusFailure
	}
	if q.policy == PolicyLIFO {
		return q.rb.PopBack()
	}
	return q.rb.PopFront()
}

// PopTo writes the popped element into out only on success.
func (q *Queue[T]) PopTo(out *T) ringbuffer.Status {
	if q == nil {
		return ringbuffer.StatusFailure
	}
	if q.policy == PolicyLIFO {
		return q.rb.PopBackTo(out)
	}
	return q.rb.PopFrontTo(out)
}

func (q *Queue[T]) Peek() (T, ringbuffer.Status) {
	if q == nil {
		var zero T
		return zero, ringbuffer.StatusFailure
	}
	if q.policy == PolicyLIFO {
		return q.rb.PeekBack()
	}
	return q.rb.PeekFront()
}

// PeekTo writes the next element into out only on success.
func (q *Queue[T]) PeekTo(out *T) ringbuffer.Status {
	if q == nil {
		return ringbuffer.StatusFailure
	}
	if q.policy == PolicyLIFO {
		return q.rb.PeekBackTo(out)
	}
	return q.rb.PeekFrontTo(out)
}

// Drain pops every element in pop order.
func (q *Queue[T]) Drain() []T {
	if q == nil {
		return nil
	}
	var items []T
	for {
		item, st := q.Pop()
		if st != ringbuffer.StatusSuccess {
			return items
		}
		items = append(items, item)
	}
}

func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return q.rb.Len()
}

func (q *Queue[T]) Cap() int {
	if q == nil {
		return 0
	}
	return q.rb.Cap()
}

func (q *Queue[T]) IsFull() bool {
	return q != nil && q.rb.IsFull()
}

func (q *Queue[T]) IsEmpty() bool {
	return q != nil && q.rb.IsEmpty()
}

// Close releases the storage. Later calls return StatusFailure.
func (q *Queue[T]) Close() ringbuffer.Status {
	if q == nil {
		return ringbuffer.StatusFailure
	}
	return q.rb.Destroy()
}
