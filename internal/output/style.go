package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders decorated shell text for one writer. Color is used only
// when the writer is a terminal.
type Styles struct {
	title  lipgloss.Style
	hint   lipgloss.Style
	prompt lipgloss.Style
}

// NewStyles creates styles bound to w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		hint:   r.NewStyle().Faint(true),
		prompt: r.NewStyle().Foreground(lipgloss.Color("99")),
	}
}

// Banner writes the shell welcome text.
func (s *Styles) Banner(w io.Writer, version string) {
	fmt.Fprintln(w, s.title.Render("Smart To-Do List "+version))
	fmt.Fprintln(w, s.hint.Render("Type 'help' to list commands, 'quit' to leave."))
}

// Prompt writes the input prompt without a trailing newline.
func (s *Styles) Prompt(w io.Writer, prompt string) {
	fmt.Fprint(w, s.prompt.Render(prompt))
}
