package boundedqueue

import (
	"testing"

	"github.com/flowbehappy/ringq/pkg/apperror"
	"github.com/flowbehappy/ringq/utils/ringbuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestQueue(t *testing.T, capacity int, policy Policy) *Queue[int] {
	t.Helper()
	q, err := New[int](capacity, policy, ringbuffer.WithLogger[int](zap.NewNop()))
	require.NoError(t, err)
	return q
}

func TestSmokePushPeekPop(t *testing.T) {
	q := newTestQueue(t, 5, PolicyFIFO)
	var1, var2 := 10, 0

	assert.Equal(t, ringbuffer.StatusSuccess, q.Push(var1))
	assert.Equal(t, ringbuffer.StatusSuccess, q.PeekTo(&var2))
	assert.Equal(t, var1, var2)

	var2 = 0
	assert.Equal(t, ringbuffer.StatusSuccess, q.PopTo(&var2))
	assert.Equal(t, var1, var2)
	assert.Equal(t, ringbuffer.StatusSuccess, q.Close())
}

func TestCapacityZero(t *testing.T) {
	q, err := New[int](0, PolicyFIFO)
	assert.Nil(t, q)
	assert.True(t, apperror.ErrInvalidCapacity.Equal(err))
}

func TestInvalidPolicy(t *testing.T) {
	q, err := New[int](3, Policy(7))
	assert.Nil(t, q)
	assert.True(t, apperror.ErrInvalidPolicy.Equal(err))
}

func TestFullQueuePushOverwritesOldest(t *testing.T) {
	tests := []struct {
		policy   Policy
		expected []int
	}{
		{PolicyFIFO, []int{2, 3, 4}},
		{PolicyLIFO, []int{4, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			q := newTestQueue(t, 3, tt.policy)
			require.Equal(t, ringbuffer.StatusSuccess, q.Push(1))
			require.Equal(t, ringbuffer.StatusSuccess, q.Push(2))
			require.Equal(t, ringbuffer.StatusSuccess, q.Push(3))
			require.True(t, q.IsFull())

			assert.Equal(t, ringbuffer.StatusOverflow, q.Push(4))
			assert.Equal(t, tt.expected, q.Drain())
			assert.True(t, q.IsEmpty())
		})
	}
}

func TestEmptyQueueUnderflow(t *testing.T) {
	for _, policy := range []Policy{PolicyFIFO, PolicyLIFO} {
		q := newTestQueue(t, 3, policy)
		val := 101

		assert.Equal(t, ringbuffer.StatusUnderflow, q.PopTo(&val))
		assert.Equal(t, 101, val)
		assert.Equal(t, ringbuffer.StatusUnderflow, q.PeekTo(&val))
		assert.Equal(t, 101, val)

		_, st := q.Pop()
		assert.Equal(t, ringbuffer.StatusUnderflow, st)
		_, st = q.Peek()
		assert.Equal(t, ringbuffer.StatusUnderflow, st)
	}
}

func TestCirculation(t *testing.T) {
	for capacity := 1; capacity <= 3; capacity++ {
		q := newTestQueue(t, capacity, PolicyFIFO)
		val := 0
		for round := 0; round < 3*capacity; round++ {
			for i := 0; i < capacity; i++ {
				require.Equal(t, ringbuffer.StatusSuccess, q.Push(round*10+i))
			}
			for i := 0; i < capacity; i++ {
				require.Equal(t, ringbuffer.StatusSuccess, q.PopTo(&val))
				require.Equal(t, round*10+i, val)
			}
		}
	}
}

func TestLIFO(t *testing.T) {
	q := newTestQueue(t, 4, PolicyLIFO)
	for i := 1; i <= 3; i++ {
		q.Push(i)
	}
	item, st := q.Peek()
	assert.Equal(t, ringbuffer.StatusSuccess, st)
	assert.Equal(t, 3, item)
	item, st = q.Pop()
	assert.Equal(t, ringbuffer.StatusSuccess, st)
	assert.Equal(t, 3, item)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 4, q.Cap())
	assert.Equal(t, PolicyLIFO, q.Policy())
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in       string
		expected Policy
		wantErr  bool
	}{
		{"fifo", PolicyFIFO, false},
		{"", PolicyFIFO, false},
		{" LIFO ", PolicyLIFO, false},
		{"stack", PolicyFIFO, true},
	}
	for _, tt := range tests {
		p, err := ParsePolicy(tt.in)
		if tt.wantErr {
			assert.True(t, apperror.ErrInvalidPolicy.Equal(err), tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.expected, p)
	}
}

func TestClosedQueue(t *testing.T) {
	q := newTestQueue(t, 2, PolicyFIFO)
	q.Push(1)
	require.Equal(t, ringbuffer.StatusSuccess, q.Close())

	val := 7
	assert.Equal(t, ringbuffer.StatusFailure, q.Close())
	assert.Equal(t, ringbuffer.StatusFailure, q.Push(2))
	assert.Equal(t, ringbuffer.StatusFailure, q.PopTo(&val))
	assert.Equal(t, 7, val)
	assert.Nil(t, q.Drain())
	assert.Equal(t, 0, q.Len())

	var nilQueue *Queue[int]
	assert.Equal(t, ringbuffer.StatusFailure, nilQueue.Push(1))
	assert.Equal(t, ringbuffer.StatusFailure, nilQueue.Close())
	assert.False(t, nilQueue.IsEmpty())
}

func TestWrap(t *testing.T) {
	rb, err := ringbuffer.New[int](3, ringbuffer.WithLogger[int](zap.NewNop()))
	require.NoError(t, err)
	q, err := Wrap(rb, PolicyLIFO)
	require.NoError(t, err)

	require.Equal(t, ringbuffer.StatusSuccess, rb.PushBack(1))
	require.Equal(t, ringbuffer.StatusSuccess, q.Push(2))
	assert.Equal(t, 2, rb.Len())
	val, st := q.Pop()
	assert.Equal(t, ringbuffer.StatusSuccess, st)
	assert.Equal(t, 2, val)
	val, st = rb.PopFront()
	assert.Equal(t, ringbuffer.StatusSuccess, st)
	assert.Equal(t, 1, val)
	assert.True(t, q.IsEmpty())

	q, err = Wrap(rb, Policy(7))
	assert.Nil(t, q)
	assert.True(t, apperror.ErrInvalidPolicy.Equal(err))

	q, err = Wrap[int](nil, PolicyFIFO)
	assert.Nil(t, q)
	require.Error(t, err)
	assert.Equal(t, apperror.ErrorTypeFailure, apperror.ErrorTypeOf(err))
	assert.Contains(t, err.Error(), "nil ring buffer")
}
