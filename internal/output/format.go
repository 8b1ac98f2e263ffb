// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"smarttodo/internal/service"
	"smarttodo/internal/task"
)

// Format selects how task collections are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// NoTasks is printed for an empty text listing.
const NoTasks = "no tasks found"

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format: %s (want text, json, or yaml)", s)
	}
}

// FormatTask writes one task line.
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintln(w, t.String())
}

// WriteTasks writes tasks in the given format.
// An empty text listing prints NoTasks unless quiet is set; JSON and YAML
// always write a (possibly empty) sequence.
func WriteTasks(w io.Writer, f Format, tasks []task.Task, quiet bool) error {
	if tasks == nil {
		tasks = []task.Task{}
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	default:
		if len(tasks) == 0 {
			if !quiet {
				fmt.Fprintln(w, NoTasks)
			}
			return nil
		}
		for _, t := range tasks {
			FormatTask(w, t)
		}
		return nil
	}
}

// FormatListName formats a Google Tasks list name for the lists command.
// Empty titles become "(untitled)".
func FormatListName(w io.Writer, list service.TaskList, isExportTarget bool) {
	title := list.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	if list.IsDefault {
		title += " [default]"
	}
	if isExportTarget {
		title += " [export]"
	}
	fmt.Fprintln(w, title)
}
