// Package ordered holds the append-only sequences the keyboard tree is built from.
package ordered

import "iter"

// List is an append-ordered sequence of T. It is not safe for concurrent use,
// and must not be appended to while it is being iterated.
type List[T any] struct {
	items []T
}

func (l *List[T]) Append(item T) {
	l.items = append(l.items, item)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// First returns the first item, or false when the list is empty.
func (l *List[T]) First() (T, bool) {
	return l.Nth(0)
}

// Last returns the most recently appended item, or false when the list is empty.
func (l *List[T]) Last() (T, bool) {
	return l.Nth(len(l.items) - 1)
}

// Nth returns the item at zero-based index n, or false when n is out of range.
func (l *List[T]) Nth(n int) (T, bool) {
	if n < 0 || n >= len(l.items) {
		var zero T

		return zero, false
	}

	return l.items[n], true
}

// ForEach calls fn for every item in append order.
func (l *List[T]) ForEach(fn func(T)) {
	for _, item := range l.items {
		fn(item)
	}
}

// All iterates over index/item pairs in append order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Values iterates over items in append order.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range l.items {
			if !yield(item) {
				return
			}
		}
	}
}
