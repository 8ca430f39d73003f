package console

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	Header  lipgloss.Style
	Table   lipgloss.Style
	Hand    lipgloss.Style
	Prompt  lipgloss.Style
	Call    lipgloss.Style
	Winner  lipgloss.Style
	Error   lipgloss.Style
	Divider lipgloss.Style
}

// newStyles binds the palette to w. A nil profile lets termenv detect one.
func newStyles(w io.Writer, profile *termenv.Profile) styles {
	var opts []termenv.OutputOption
	if profile != nil {
		opts = append(opts, termenv.WithProfile(*profile))
	}
	r := lipgloss.NewRenderer(w, opts...)

	return styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Table: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Hand: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Call: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Divider: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// paint renders each line on its own so multi-line text is not padded
func paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
