// Package sortable holds the reorder logic behind drag-and-drop lists: a
// single list move and transfers between named containers.
package sortable

import "slices"

// Move returns a copy of items with the element at from relocated to to.
// Out-of-range indexes return an unchanged copy.
func Move[T any](items []T, from, to int) []T {
	out := slices.Clone(items)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}

// Board is an ordered set of containers, each an ordered list of items.
type Board[K comparable, T any] struct {
	order []K
	items map[K][]T
}

// NewBoard creates an empty board with containers in the given order.
func NewBoard[K comparable, T any](keys ...K) *Board[K, T] {
	b := &Board[K, T]{items: make(map[K][]T, len(keys))}
	for _, k := range keys {
		if _, ok := b.items[k]; ok {
			continue
		}
		b.order = append(b.order, k)
		b.items[k] = nil
	}
	return b
}

// Keys returns the container keys in order.
func (b *Board[K, T]) Keys() []K {
	return slices.Clone(b.order)
}

// Items returns a copy of one container's items.
func (b *Board[K, T]) Items(key K) []T {
	return slices.Clone(b.items[key])
}

// Set returns a new board with key's items replaced. Unknown keys are
// appended as new containers.
func (b *Board[K, T]) Set(key K, items []T) *Board[K, T] {
	out := b.clone()
	if _, ok := out.items[key]; !ok {
		out.order = append(out.order, key)
	}
	out.items[key] = slices.Clone(items)
	return out
}

// Transfer moves the item at fromIdx in from to position toIdx in to.
// toIdx is clamped to the destination length. Unknown containers or an
// invalid fromIdx return an unchanged copy.
func (b *Board[K, T]) Transfer(from K, fromIdx int, to K, toIdx int) *Board[K, T] {
	out := b.clone()
	src, ok := out.items[from]
	if !ok || fromIdx < 0 || fromIdx >= len(src) {
		return out
	}
	if _, ok := out.items[to]; !ok {
		return out
	}
	if from == to {
		toIdx = min(max(toIdx, 0), len(src)-1)
		out.items[from] = Move(src, fromIdx, toIdx)
		return out
	}

	v := src[fromIdx]
	out.items[from] = slices.Delete(slices.Clone(src), fromIdx, fromIdx+1)
	dst := slices.Clone(out.items[to])
	toIdx = min(max(toIdx, 0), len(dst))
	out.items[to] = slices.Insert(dst, toIdx, v)
	return out
}

// Find returns the container and index of the first item matching pred.
func (b *Board[K, T]) Find(pred func(T) bool) (K, int, bool) {
	for _, k := range b.order {
		for i, v := range b.items[k] {
			if pred(v) {
				return k, i, true
			}
		}
	}
	var zero K
	return zero, -1, false
}

// Len returns the total number of items across containers.
func (b *Board[K, T]) Len() int {
	total := 0
	for _, k := range b.order {
		total += len(b.items[k])
	}
	return total
}

// clone copies the container map; item slices are shared until replaced.
func (b *Board[K, T]) clone() *Board[K, T] {
	out := &Board[K, T]{
		order: slices.Clone(b.order),
		items: make(map[K][]T, len(b.items)),
	}
	for k, v := range b.items {
		out.items[k] = v
	}
	return out
}
