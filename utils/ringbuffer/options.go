package ringbuffer

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// Observer receives the outcome of every push, pop and peek.
// It is called synchronously and must not call back into the buffer.
type Observer interface {
	Observe(op Op, status Status, length int)
}

// Allocator returns a backing slice of exactly n slots.
type Allocator[T any] func(n int) ([]T, error)

type options[T any] struct {
	logger    *zap.Logger
	observer  Observer
	allocator Allocator[T]
}

type Option[T any] func(*options[T])

// WithLogger sets the logger used for debug diagnostics. A nil logger disables them.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(o *options[T]) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

func WithObserver[T any](observer Observer) Option[T] {
	return func(o *options[T]) {
		o.observer = observer
	}
}

// WithAllocator replaces the backing slice allocator. A nil allocator keeps the default.
func WithAllocator[T any](allocator Allocator[T]) Option[T] {
	return func(o *options[T]) {
		if allocator != nil {
			o.allocator = allocator
		}
	}
}

func newOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{
		logger:    log.L(),
		allocator: makeSlots[T],
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// makeSlots converts the runtime panic for an unsatisfiable length into an error.
func makeSlots[T any](n int) (slots []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			slots = nil
			err = errors.Errorf("%v", r)
		}
	}()
	return make([]T, n), nil
}
