package pqueue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttodo/internal/task"
)

// checkHeap fails the test if any parent has a larger priority than a child.
func checkHeap(t *testing.T, h *Heap) {
	t.Helper()
	for i := 1; i < h.size; i++ {
		parent := (i - 1) / 2
		if h.items[parent].Priority > h.items[i].Priority {
			t.Fatalf("heap order violated: slot %d (priority %d) > slot %d (priority %d)",
				parent, h.items[parent].Priority, i, h.items[i].Priority)
		}
	}
}

func newTasks(priorities ...int) []*task.Task {
	tasks := make([]*task.Task, len(priorities))
	for i, p := range priorities {
		tasks[i] = &task.Task{ID: i + 1, Name: "t", Priority: p}
	}
	return tasks
}

func minPriority(tasks []*task.Task, removed map[int]bool) int {
	m := -1
	for _, tk := range tasks {
		if removed[tk.ID] {
			continue
		}
		if m < 0 || tk.Priority < m {
			m = tk.Priority
		}
	}
	return m
}

func TestHeap_EmptyQueries(t *testing.T) {
	h := New(0)

	assert.Equal(t, DefaultCapacity, h.Cap())

	got, ok := h.PeekMin()
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = h.ExtractMin()
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.False(t, h.RemoveByID(1))
	h.ReheapifyAll()
	assert.Equal(t, 0, h.Len())
}

func TestHeap_PeekMinAfterEveryInsert(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := New(4)
	var inserted []*task.Task

	for i := 0; i < 200; i++ {
		tk := &task.Task{ID: i + 1, Priority: rng.Intn(20) + 1}
		h.Insert(tk)
		inserted = append(inserted, tk)

		top, ok := h.PeekMin()
		require.True(t, ok)
		assert.Equal(t, minPriority(inserted, nil), top.Priority)
		checkHeap(t, h)
	}
	assert.Equal(t, 200, h.Len())
}

func TestHeap_ExtractMinYieldsAscendingPriorities(t *testing.T) {
	h := New(2)
	for _, tk := range newTasks(5, 3, 8, 1, 9, 2, 7, 3) {
		h.Insert(tk)
	}

	var got []int
	for {
		tk, ok := h.ExtractMin()
		if !ok {
			break
		}
		got = append(got, tk.Priority)
		checkHeap(t, h)
	}

	assert.Equal(t, []int{1, 2, 3, 3, 5, 7, 8, 9}, got)
	assert.Equal(t, 0, h.Len())
}

func TestHeap_GrowKeepsEntries(t *testing.T) {
	h := New(1)
	tasks := newTasks(4, 2, 6, 1, 5)
	for _, tk := range tasks {
		h.Insert(tk)
	}

	assert.Equal(t, 8, h.Cap())
	assert.Equal(t, 5, h.Len())
	ids := h.IDs()
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
	checkHeap(t, h)
}

func TestHeap_RemoveByID(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		priorities := make([]int, 30)
		for i := range priorities {
			priorities[i] = rng.Intn(10) + 1
		}
		tasks := newTasks(priorities...)
		h := New(8)
		for _, tk := range tasks {
			h.Insert(tk)
		}

		removed := make(map[int]bool)
		for _, idx := range rng.Perm(len(tasks))[:15] {
			id := tasks[idx].ID
			require.True(t, h.RemoveByID(id))
			removed[id] = true
			checkHeap(t, h)

			assert.False(t, h.Contains(id))
			top, ok := h.PeekMin()
			require.True(t, ok)
			assert.NotEqual(t, id, top.ID)
			assert.Equal(t, minPriority(tasks, removed), top.Priority)
		}

		for {
			tk, ok := h.ExtractMin()
			if !ok {
				break
			}
			assert.False(t, removed[tk.ID], "extracted removed task %d", tk.ID)
		}
	}
}

func TestHeap_RemoveByIDMissingIsNoop(t *testing.T) {
	h := New(4)
	for _, tk := range newTasks(3, 1, 2) {
		h.Insert(tk)
	}

	assert.False(t, h.RemoveByID(99))
	assert.Equal(t, 3, h.Len())
	top, _ := h.PeekMin()
	assert.Equal(t, 2, top.ID)
}

// Removing a deep slot can move a small task under a large parent, which
// needs a sift up rather than a sift down.
func TestHeap_RemoveByIDSiftsUp(t *testing.T) {
	h := New(8)
	//        1
	//     10    2
	//   11  12 3  4
	for _, tk := range newTasks(1, 10, 2, 11, 12, 3, 4) {
		h.Insert(tk)
	}
	checkHeap(t, h)

	require.True(t, h.RemoveByID(4)) // priority 11, replaced by priority 4
	checkHeap(t, h)

	var got []int
	for {
		tk, ok := h.ExtractMin()
		if !ok {
			break
		}
		got = append(got, tk.Priority)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 10, 12}, got)
}

func TestHeap_ReheapifyAllAfterExternalEdit(t *testing.T) {
	tasks := newTasks(5, 4, 3, 2, 1)
	h := New(4)
	for _, tk := range tasks {
		h.Insert(tk)
	}

	tasks[0].Priority = 0
	tasks[4].Priority = 50
	h.ReheapifyAll()
	checkHeap(t, h)

	top, ok := h.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 1, top.ID)
}

func TestHeap_ReprioritizeToFront(t *testing.T) {
	tasks := newTasks(5, 3)
	h := New(0)
	for _, tk := range tasks {
		h.Insert(tk)
	}

	tasks[0].Priority = 1
	h.ReheapifyAll()

	top, _ := h.PeekMin()
	assert.Equal(t, 1, top.ID)
}
