// Package pqueue implements the priority index: a binary min-heap of tasks
// ordered by their Priority field.
//
// The heap holds pointers to tasks owned by the store. When a caller changes
// the Priority of a task that is in the heap, it must call ReheapifyAll before
// the next heap operation.
package pqueue

import "smarttodo/internal/task"

// DefaultCapacity is the initial size of the backing array.
const DefaultCapacity = 100

// Heap is a min-heap of tasks keyed by priority.
// Ties between equal priorities are returned in no particular order.
type Heap struct {
	items []*task.Task
	size  int
}

// New creates an empty heap with room for capacity tasks.
// A capacity below 1 uses DefaultCapacity.
func New(capacity int) *Heap {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Heap{items: make([]*task.Task, capacity)}
}

// Len returns the number of tasks in the heap.
func (h *Heap) Len() int { return h.size }

// Cap returns the size of the backing array.
func (h *Heap) Cap() int { return len(h.items) }

// Insert adds t to the heap.
func (h *Heap) Insert(t *task.Task) {
	if h.size == len(h.items) {
		h.grow()
	}
	h.items[h.size] = t
	h.size++
	h.siftUp(h.size - 1)
}

// PeekMin returns the task with the smallest priority without removing it.
// The second result is false if the heap is empty.
func (h *Heap) PeekMin() (*task.Task, bool) {
	if h.size == 0 {
		return nil, false
	}
	return h.items[0], true
}

// ExtractMin removes and returns the task with the smallest priority.
// The second result is false if the heap is empty.
func (h *Heap) ExtractMin() (*task.Task, bool) {
	if h.size == 0 {
		return nil, false
	}
	top := h.items[0]
	h.removeAt(0)
	return top, true
}

// RemoveByID removes the task with the given id.
// Returns false if no such task is in the heap.
func (h *Heap) RemoveByID(id int) bool {
	i := h.indexOf(id)
	if i < 0 {
		return false
	}
	h.removeAt(i)
	return true
}

// Contains reports whether a task with the given id is in the heap.
func (h *Heap) Contains(id int) bool {
	return h.indexOf(id) >= 0
}

// ReheapifyAll restores heap order after priorities were changed in place.
func (h *Heap) ReheapifyAll() {
	for i := h.size/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// IDs returns the ids of all tasks in heap slot order.
func (h *Heap) IDs() []int {
	ids := make([]int, h.size)
	for i := 0; i < h.size; i++ {
		ids[i] = h.items[i].ID
	}
	return ids
}

func (h *Heap) indexOf(id int) int {
	for i := 0; i < h.size; i++ {
		if h.items[i].ID == id {
			return i
		}
	}
	return -1
}

// removeAt moves the last task into slot i and repairs the heap around it.
func (h *Heap) removeAt(i int) {
	last := h.size - 1
	h.items[i] = h.items[last]
	h.items[last] = nil
	h.size--
	if i == last {
		return
	}
	// The moved task may be smaller than its new parent or larger than its
	// new children, never both.
	h.siftDown(i)
	h.siftUp(i)
}

func (h *Heap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[parent].Priority <= h.items[i].Priority {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap) siftDown(i int) {
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < h.size && h.items[left].Priority < h.items[smallest].Priority {
			smallest = left
		}
		if right < h.size && h.items[right].Priority < h.items[smallest].Priority {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *Heap) swap(a, b int) {
	h.items[a], h.items[b] = h.items[b], h.items[a]
}

// grow doubles the backing array, keeping every slot in place.
func (h *Heap) grow() {
	next := make([]*task.Task, len(h.items)*2)
	copy(next, h.items)
	h.items = next
}
