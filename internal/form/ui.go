package form

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
)

// UI renders form output to a terminal.
type UI struct {
	out io.Writer
}

func NewUI(out io.Writer) *UI {
	if out == nil {
		out = os.Stdout
	}
	return &UI{out: out}
}

func (u *UI) Title() {
	fmt.Fprintln(u.out, titleStyle.Render("AI Chatbot Agents"))
	fmt.Fprintln(u.out, subtitleStyle.Render("Create and Interact with the AI Agents!"))
	fmt.Fprintln(u.out)
}

func (u *UI) Info(msg string) {
	fmt.Fprintln(u.out, infoStyle.Render(msg))
}

func (u *UI) Warning(msg string) {
	fmt.Fprintln(u.out, warningStyle.Render(msg))
}

func (u *UI) Error(err error) {
	fmt.Fprintln(u.out, errorStyle.Render(err.Error()))
}

func (u *UI) Response(text string) {
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, headerStyle.Render("Agent Response"))
	fmt.Fprintln(u.out, "Final Response:")
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, text)
}
