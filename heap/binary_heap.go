// Package heap provides an indexed binary heap over any element type and a
// priority queue built on top of it.
package heap

import "cmp"

// InvalidIndex is returned by the index helpers when the requested node
// does not exist in the heap.
const InvalidIndex = -1

// BinaryHeap is an array backed binary heap. The ordering is defined by a
// compare function: compare(a, b) returns true when a belongs above b.
// A compare of a > b gives a max-heap, a < b a min-heap.
//
// For a node at index i the parent is at (i-1)/2 and the children are at
// 2i+1 and 2i+2. After every Add, Remove and Assign no child is favoured
// by compare over its parent.
//
// A BinaryHeap is not safe for concurrent use.
type BinaryHeap[E any] struct {
	heap    []E
	compare func(a, b E) bool
}

// New creates a heap ordered by compare and populated with list.
func New[E any](compare func(a, b E) bool, list ...E) *BinaryHeap[E] {
	h := &BinaryHeap[E]{compare: compare}
	h.Assign(list)
	return h
}

// NewMax creates a heap whose root is the greatest element.
func NewMax[E cmp.Ordered](list ...E) *BinaryHeap[E] {
	return New(func(a, b E) bool { return a > b }, list...)
}

// NewMin creates a heap whose root is the smallest element.
func NewMin[E cmp.Ordered](list ...E) *BinaryHeap[E] {
	return New(func(a, b E) bool { return a < b }, list...)
}

// sanitizeIndex returns index if it addresses a node, InvalidIndex otherwise
func (h *BinaryHeap[E]) sanitizeIndex(index int) int {
	if index > InvalidIndex && index < len(h.heap) {
		return index
	}
	return InvalidIndex
}

// Len returns the number of elements in the heap.
func (h *BinaryHeap[E]) Len() int {
	return len(h.heap)
}

// ParentIndex returns the index of the parent of the node at index, or
// InvalidIndex for the root or an invalid index.
func (h *BinaryHeap[E]) ParentIndex(index int) int {
	if h.sanitizeIndex(index) <= 0 {
		return InvalidIndex
	}
	return (index - 1) >> 1
}

// LeftChildIndex returns the index of the left child of index, or
// InvalidIndex if there is none.
func (h *BinaryHeap[E]) LeftChildIndex(index int) int {
	if h.sanitizeIndex(index) < 0 {
		return InvalidIndex
	}
	return h.sanitizeIndex(1 + index<<1)
}

// RightChildIndex returns the index of the right child of index, or
// InvalidIndex if there is none.
func (h *BinaryHeap[E]) RightChildIndex(index int) int {
	if h.sanitizeIndex(index) < 0 {
		return InvalidIndex
	}
	return h.sanitizeIndex(2 + index<<1)
}

// SiblingIndex returns the index of the other child of index's parent, or
// InvalidIndex if there is none.
func (h *BinaryHeap[E]) SiblingIndex(index int) int {
	if h.sanitizeIndex(index) <= 0 {
		return InvalidIndex
	}
	if index&1 == 1 {
		return h.sanitizeIndex(index + 1)
	}
	return h.sanitizeIndex(index - 1)
}

// MaxIndex returns the index of the root, or InvalidIndex if the heap is empty.
func (h *BinaryHeap[E]) MaxIndex() int {
	return h.sanitizeIndex(0)
}

// MaxValue returns the root element without removing it. The boolean is
// false if the heap is empty.
func (h *BinaryHeap[E]) MaxValue() (E, bool) {
	index := h.MaxIndex()
	if index < 0 {
		var zero E
		return zero, false
	}
	return h.heap[index], true
}

// swap exchanges two nodes and returns the new index of the from node
func (h *BinaryHeap[E]) swap(from, to int) int {
	h.heap[from], h.heap[to] = h.heap[to], h.heap[from]
	return to
}

// heapUp moves the node at index towards the root while compare favours it
// over its parent and returns its final position
func (h *BinaryHeap[E]) heapUp(index int) int {
	for index > 0 {
		parent := (index - 1) >> 1
		if !h.compare(h.heap[index], h.heap[parent]) {
			break
		}
		index = h.swap(index, parent)
	}
	return index
}

// heapDown moves the node at index towards the leaves while one of its
// children is favoured over it and returns its final position
func (h *BinaryHeap[E]) heapDown(index int) int {
	n := len(h.heap)
	for {
		left := 1 + index<<1
		if left >= n {
			return index
		}
		child := left
		if right := left + 1; right < n && h.compare(h.heap[right], h.heap[left]) {
			child = right
		}
		if !h.compare(h.heap[child], h.heap[index]) {
			return index
		}
		index = h.swap(index, child)
	}
}

// Add inserts value and returns the index it settled at.
func (h *BinaryHeap[E]) Add(value E) int {
	h.heap = append(h.heap, value)
	return h.heapUp(len(h.heap) - 1)
}

// Remove deletes the node at index and returns its value. The boolean is
// false, and nothing is removed, if index does not address a node.
func (h *BinaryHeap[E]) Remove(index int) (E, bool) {
	if h.sanitizeIndex(index) < 0 {
		var zero E
		return zero, false
	}
	lastIndex := len(h.heap) - 1
	value := h.heap[index]
	if index != lastIndex {
		h.swap(index, lastIndex)
	}
	var zero E
	h.heap[lastIndex] = zero // release the reference held by the backing array
	h.heap = h.heap[:lastIndex]
	if index == lastIndex {
		return value, true
	}
	// the moved node may belong either above or below its new position
	if h.heapDown(index) == index {
		h.heapUp(index)
	}
	return value, true
}

// Assign replaces the contents of the heap with list. The heap is built
// bottom-up in linear time; list itself is not modified.
func (h *BinaryHeap[E]) Assign(list []E) {
	h.heap = make([]E, len(list))
	copy(h.heap, list)
	for i := len(h.heap)/2 - 1; i >= 0; i-- {
		h.heapDown(i)
	}
}

// Reset removes all elements.
func (h *BinaryHeap[E]) Reset() {
	h.heap = nil
}

// Values returns a copy of the backing array in heap order.
func (h *BinaryHeap[E]) Values() []E {
	out := make([]E, len(h.heap))
	copy(out, h.heap)
	return out
}
