package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Notifier prints the per-file progress notices. Only the leading verb is
// styled; the path is printed verbatim.
type Notifier struct {
	out io.Writer

	skipStyle    lipgloss.Style
	checkStyle   lipgloss.Style
	processStyle lipgloss.Style
}

// NewNotifier binds the styles to w. Colors are dropped automatically when w
// is not a terminal.
func NewNotifier(w io.Writer) *Notifier {
	r := lipgloss.NewRenderer(w)
	return &Notifier{
		out: w,
		skipStyle: r.NewStyle().
			Foreground(lipgloss.Color("240")), // Grey
		checkStyle: r.NewStyle().
			Foreground(lipgloss.Color("81")), // Sky Blue/Cyan
		processStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")), // Orange
	}
}

// Skipping announces an ignored path.
func (n *Notifier) Skipping(path string) {
	n.print(n.skipStyle, "Skipping", path)
}

// Checking announces a path about to be checked.
func (n *Notifier) Checking(path string) {
	n.print(n.checkStyle, "Checking", path)
}

// Processing announces a path about to be rewritten.
func (n *Notifier) Processing(path string) {
	n.print(n.processStyle, "Processing", path)
}

func (n *Notifier) print(style lipgloss.Style, verb, path string) {
	fmt.Fprintf(n.out, "%s %s\n", style.Render(verb), path)
}
