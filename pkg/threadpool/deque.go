package threadpool

import "sync"

// deque is an unbounded double-ended queue guarded by its own mutex.
// Every method except lock/unlock expects the caller to hold mu.
type deque[T any] struct {
	mu    sync.Mutex
	items []T
}

func newDeque[T any]() *deque[T] {
	return &deque[T]{}
}

func (d *deque[T]) Len() int { return len(d.items) }

func (d *deque[T]) PushBack(t T) {
	d.items = append(d.items, t)
}

func (d *deque[T]) PopFront() (T, bool) {
	var zero T
	if len(d.items) == 0 {
		return zero, false
	}
	x := d.items[0]
	d.items[0] = zero
	d.items = d.items[1:]
	if len(d.items) == 0 {
		d.items = nil
	}
	return x, true
}

// SplitBack removes the back half of the deque, starting at index len/2,
// and returns it in order. An empty deque yields nil; a single element is
// returned whole.
func (d *deque[T]) SplitBack() []T {
	n := len(d.items)
	if n == 0 {
		return nil
	}
	at := n / 2
	tail := make([]T, n-at)
	copy(tail, d.items[at:])

	var zero T
	for i := at; i < n; i++ {
		d.items[i] = zero
	}
	d.items = d.items[:at]
	return tail
}

// Append moves items onto the back of the deque.
func (d *deque[T]) Append(items []T) {
	d.items = append(d.items, items...)
}
