// Package service defines the backend-agnostic interface used to export
// tasks to a remote task service.
package service

import (
	"context"
	"errors"
)

var (
	// ErrListNotFound is returned when no list matches a name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned when several lists match a name.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrAuth is returned when the stored credentials are rejected.
	ErrAuth = errors.New("token expired or revoked (run: login)")
)

// Service defines the remote operations needed by export.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrListNotFound or ErrAmbiguousList.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID string, task Task) error
}
