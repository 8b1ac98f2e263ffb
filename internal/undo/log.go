// Package undo records reversals for store mutations and replays the most
// recent one on request.
package undo

import "smarttodo/internal/task"

// Kind identifies the mutation a Reversal undoes.
type Kind int

const (
	// ReverseAdd removes a task created by add and rolls back the id counter.
	ReverseAdd Kind = iota + 1
	// ReverseDelete re-inserts a deleted task at its former position.
	ReverseDelete
	// ReverseEdit restores a task's former name and priority.
	ReverseEdit
	// ReverseComplete marks a completed task pending again.
	ReverseComplete
	// ReverseReprioritize restores a task's former priority.
	ReverseReprioritize
)

func (k Kind) String() string {
	switch k {
	case ReverseAdd:
		return "add"
	case ReverseDelete:
		return "delete"
	case ReverseEdit:
		return "edit"
	case ReverseComplete:
		return "complete"
	case ReverseReprioritize:
		return "reprioritize"
	default:
		return "unknown"
	}
}

// Reversal carries the prior state needed to undo one mutation.
// Only the fields relevant to Kind are set.
type Reversal struct {
	Kind Kind

	// Task is the task the mutation touched. The log does not own it.
	Task *task.Task

	// Position is the task's index in the store's ordered sequence (ReverseDelete).
	Position int

	// NextID is the id counter value before the task was added (ReverseAdd).
	NextID int

	// Name and Priority are the values before the change (ReverseEdit,
	// ReverseReprioritize).
	Name     string
	Priority int
}

// Applier applies a reversal to the state it was recorded against.
type Applier interface {
	ApplyReversal(r Reversal)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(r Reversal)

// ApplyReversal calls f(r).
func (f ApplierFunc) ApplyReversal(r Reversal) { f(r) }

// Log is a LIFO stack of reversals.
type Log struct {
	entries []Reversal
	depth   int
}

// NewLog creates an empty log. A positive depth keeps only the depth most
// recent reversals; zero keeps all of them.
func NewLog(depth int) *Log {
	if depth < 0 {
		depth = 0
	}
	return &Log{depth: depth}
}

// Record pushes r onto the log.
func (l *Log) Record(r Reversal) {
	if l.depth > 0 && len(l.entries) == l.depth {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, r)
}

// Len returns the number of recorded reversals.
func (l *Log) Len() int { return len(l.entries) }

// Peek returns the most recent reversal without removing it.
func (l *Log) Peek() (Reversal, bool) {
	if len(l.entries) == 0 {
		return Reversal{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// UndoLast pops the most recent reversal and hands it to a.
// Returns false if the log is empty.
func (l *Log) UndoLast(a Applier) bool {
	r, ok := l.Peek()
	if !ok {
		return false
	}
	l.entries[len(l.entries)-1] = Reversal{}
	l.entries = l.entries[:len(l.entries)-1]
	a.ApplyReversal(r)
	return true
}
