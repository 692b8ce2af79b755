package ringbuffer

// Iter walks the buffer from the oldest to the newest element.
// Any mutation of the buffer invalidates it.
type Iter[T any] struct {
	rb    *RingBuffer[T]
	index int
}

func (rb *RingBuffer[T]) Iterator() *Iter[T] {
	if !rb.valid() {
		return &Iter[T]{}
	}
	return &Iter[T]{rb: rb, index: rb.head}
}

func (it *Iter[T]) Next() (T, bool) {
	var zero T
	if it.rb == nil || !it.rb.valid() || it.index == it.rb.tail {
		return zero, false
	}
	item := it.rb.buffer[it.index]
	it.index = it.rb.next(it.index)
	return item, true
}

// ReverseIter walks the buffer from the newest to the oldest element.
// Any mutation of the buffer invalidates it.
type ReverseIter[T any] struct {
	rb    *RingBuffer[T]
	index int
}

func (rb *RingBuffer[T]) ReverseIterator() *ReverseIter[T] {
	if !rb.valid() {
		return &ReverseIter[T]{}
	}
	return &ReverseIter[T]{rb: rb, index: rb.tail}
}

func (it *ReverseIter[T]) Next() (T, bool) {
	var zero T
	if it.rb == nil || !it.rb.valid() || it.index == it.rb.head {
		return zero, false
	}
	it.index = it.rb.prev(it.index)
	return it.rb.buffer[it.index], true
}

// ForEach calls fn from the oldest to the newest element until fn returns false.
func (rb *RingBuffer[T]) ForEach(fn func(item T) bool) {
	it := rb.Iterator()
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		if !fn(item) {
			return
		}
	}
}

// ToSlice copies the elements in FIFO order. It returns nil when the buffer is empty.
func (rb *RingBuffer[T]) ToSlice() []T {
	n := rb.Len()
	if n == 0 {
		return nil
	}
	result := make([]T, 0, n)
	rb.ForEach(func(item T) bool {
		result = append(result, item)
		return true
	})
	return result
}
