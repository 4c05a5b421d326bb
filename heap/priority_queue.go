package heap

import "fmt"

// PriorityQueue is a min-priority queue implemented with a BinaryHeap.
// Pop returns the item for which lessFunc holds against every other item.
type PriorityQueue[E any] struct {
	h *BinaryHeap[E]
}

// NewPriorityQueue creates a new heap based PriorityQueue using lessFunc as the comparison function
func NewPriorityQueue[E any](lessFunc func(E, E) bool) *PriorityQueue[E] {
	return &PriorityQueue[E]{h: New(lessFunc)}
}

// Len returns the number of items in the queue
func (pq *PriorityQueue[E]) Len() int {
	return pq.h.Len()
}

// Push adds x to the queue
func (pq *PriorityQueue[E]) Push(x E) {
	pq.h.Add(x)
}

// Pop removes and returns the next item in the queue.
// The boolean is false if the queue is empty.
func (pq *PriorityQueue[E]) Pop() (E, bool) {
	return pq.h.Remove(pq.h.MaxIndex())
}

// Peek returns the next item in the queue without removing it.
// The boolean is false if the queue is empty.
func (pq *PriorityQueue[E]) Peek() (E, bool) {
	return pq.h.MaxValue()
}

// String formats the queue contents in heap order
func (pq *PriorityQueue[E]) String() string {
	return fmt.Sprint(pq.h.heap)
}
