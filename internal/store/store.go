// Package store owns the task collection and keeps the priority index and
// the undo log consistent with every mutation.
//
// A Store is not safe for concurrent use. Each mutating method validates its
// arguments before touching any state, so a returned error always means
// nothing changed.
package store

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"smarttodo/internal/pqueue"
	"smarttodo/internal/task"
	"smarttodo/internal/undo"
)

// Filter selects tasks by completion state.
type Filter int

const (
	FilterPending Filter = iota
	FilterCompleted
	FilterAll
)

func (f Filter) match(t *task.Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Store holds every live task in insertion order.
// The priority index contains exactly the pending tasks.
type Store struct {
	tasks   []*task.Task
	nextID  int
	index   *pqueue.Heap
	history *undo.Log
	logger  *log.Entry

	capacity  int
	undoDepth int
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity sets the initial capacity of the priority index.
func WithCapacity(n int) Option {
	return func(s *Store) { s.capacity = n }
}

// WithUndoDepth bounds the undo log. Zero keeps every reversal.
func WithUndoDepth(n int) Option {
	return func(s *Store) { s.undoDepth = n }
}

// WithLogger sets the entry used for debug logging.
func WithLogger(l *log.Entry) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty store. The first task gets id 1.
func New(opts ...Option) *Store {
	s := &Store{
		nextID:   1,
		capacity: pqueue.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewEntry(log.StandardLogger())
	}
	s.index = pqueue.New(s.capacity)
	s.history = undo.NewLog(s.undoDepth)
	return s
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// NextID returns the id the next added task will receive.
func (s *Store) NextID() int { return s.nextID }

// UndoDepth returns the number of mutations that can currently be undone.
func (s *Store) UndoDepth() int { return s.history.Len() }

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (task.Task, bool) {
	t, _ := s.find(id)
	if t == nil {
		return task.Task{}, false
	}
	return *t, true
}

// Add creates a pending task and returns its id.
func (s *Store) Add(name string, priority int) (int, error) {
	name, err := validate(name, priority)
	if err != nil {
		return 0, err
	}

	t := &task.Task{ID: s.nextID, Name: name, Priority: priority}
	s.history.Record(undo.Reversal{Kind: undo.ReverseAdd, Task: t, NextID: s.nextID})
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.index.Insert(t)

	s.logger.WithFields(log.Fields{"op": "add", "task": t.ID, "priority": priority}).Debug("task added")
	return t.ID, nil
}

// List returns copies of the tasks matching f, ordered by ascending
// priority. Tasks with equal priority keep insertion order.
func (s *Store) List(f Filter) []task.Task {
	result := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.match(t) {
			result = append(result, *t)
		}
	}
	slices.SortStableFunc(result, func(a, b task.Task) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return result
}

// Next returns the most urgent pending task.
func (s *Store) Next() (task.Task, bool) {
	t, ok := s.index.PeekMin()
	if !ok {
		return task.Task{}, false
	}
	return *t, true
}

// Complete marks the task with the given id as done.
// Completing a task that is already done reports ErrNotFound.
func (s *Store) Complete(id int) error {
	t, _ := s.find(id)
	if t == nil {
		return notFound(id)
	}
	if t.Completed {
		return fmt.Errorf("%w: task %d is already completed", ErrNotFound, id)
	}
	s.complete(t)
	return nil
}

// CompleteNext marks the most urgent pending task as done and returns it.
func (s *Store) CompleteNext() (task.Task, error) {
	t, ok := s.index.PeekMin()
	if !ok {
		return task.Task{}, fmt.Errorf("%w: no pending tasks", ErrNotFound)
	}
	s.complete(t)
	return *t, nil
}

func (s *Store) complete(t *task.Task) {
	t.Completed = true
	s.index.RemoveByID(t.ID)
	s.history.Record(undo.Reversal{Kind: undo.ReverseComplete, Task: t})
	s.logger.WithFields(log.Fields{"op": "complete", "task": t.ID}).Debug("task completed")
}

// Delete removes the task with the given id.
func (s *Store) Delete(id int) error {
	t, pos := s.find(id)
	if t == nil {
		return notFound(id)
	}

	s.tasks = slices.Delete(s.tasks, pos, pos+1)
	s.index.RemoveByID(id)
	s.history.Record(undo.Reversal{Kind: undo.ReverseDelete, Task: t, Position: pos})

	s.logger.WithFields(log.Fields{"op": "delete", "task": id}).Debug("task deleted")
	return nil
}

// Edit replaces the name and priority of the task with the given id.
func (s *Store) Edit(id int, name string, priority int) error {
	name, err := validate(name, priority)
	if err != nil {
		return err
	}
	t, _ := s.find(id)
	if t == nil {
		return notFound(id)
	}

	s.history.Record(undo.Reversal{Kind: undo.ReverseEdit, Task: t, Name: t.Name, Priority: t.Priority})
	t.Name = name
	t.Priority = priority
	s.reindex(t)

	s.logger.WithFields(log.Fields{"op": "edit", "task": id, "priority": priority}).Debug("task edited")
	return nil
}

// Reprioritize changes the priority of the task with the given id.
func (s *Store) Reprioritize(id int, priority int) error {
	if err := validatePriority(priority); err != nil {
		return err
	}
	t, _ := s.find(id)
	if t == nil {
		return notFound(id)
	}

	s.history.Record(undo.Reversal{Kind: undo.ReverseReprioritize, Task: t, Priority: t.Priority})
	t.Priority = priority
	s.reindex(t)

	s.logger.WithFields(log.Fields{"op": "reprioritize", "task": id, "priority": priority}).Debug("task reprioritized")
	return nil
}

// Search returns copies of the tasks whose id equals query or whose name
// contains query, ignoring case. Results keep insertion order. An empty
// query matches every task.
func (s *Store) Search(query string) []task.Task {
	query = strings.TrimSpace(query)
	fold := cases.Fold()
	needle := fold.String(query)

	var result []task.Task
	for _, t := range s.tasks {
		if strconv.Itoa(t.ID) == query || strings.Contains(fold.String(t.Name), needle) {
			result = append(result, *t)
		}
	}
	return result
}

// Undo reverts the most recent mutation and returns the reversal applied.
func (s *Store) Undo() (undo.Reversal, error) {
	r, ok := s.history.Peek()
	if !ok {
		return undo.Reversal{}, ErrNothingToUndo
	}
	s.history.UndoLast(undo.ApplierFunc(s.applyReversal))
	return r, nil
}

func (s *Store) applyReversal(r undo.Reversal) {
	t := r.Task
	switch r.Kind {
	case undo.ReverseAdd:
		if _, pos := s.find(t.ID); pos >= 0 {
			s.tasks = slices.Delete(s.tasks, pos, pos+1)
		}
		s.index.RemoveByID(t.ID)
		s.nextID = r.NextID
	case undo.ReverseDelete:
		pos := min(r.Position, len(s.tasks))
		s.tasks = slices.Insert(s.tasks, pos, t)
		if !t.Completed {
			s.index.Insert(t)
		}
	case undo.ReverseEdit:
		t.Name = r.Name
		t.Priority = r.Priority
		s.reindex(t)
	case undo.ReverseComplete:
		t.Completed = false
		s.index.Insert(t)
	case undo.ReverseReprioritize:
		t.Priority = r.Priority
		s.reindex(t)
	}
	s.logger.WithFields(log.Fields{"op": "undo", "reverted": r.Kind.String(), "task": t.ID}).Debug("mutation reverted")
}

// reindex restores heap order after t's priority changed. Completed tasks
// are not in the index.
func (s *Store) reindex(t *task.Task) {
	if s.index.Contains(t.ID) {
		s.index.ReheapifyAll()
	}
}

func (s *Store) find(id int) (*task.Task, int) {
	for i, t := range s.tasks {
		if t.ID == id {
			return t, i
		}
	}
	return nil, -1
}

func validate(name string, priority int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := validatePriority(priority); err != nil {
		return "", err
	}
	return name, nil
}

func validatePriority(priority int) error {
	if priority < 1 {
		return &ValidationError{Field: "priority", Reason: "must be a positive integer"}
	}
	return nil
}
