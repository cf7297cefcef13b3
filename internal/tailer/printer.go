package tailer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))

// Printer writes header-grouped lines. A separator is printed only when the
// incoming header differs from the most recently printed one, so consecutive
// results from the same file read as one block. Grouping is purely by
// printing adjacency: cross-file interleaving follows network completion
// order.
type Printer struct {
	w      io.Writer
	last   string
	styled bool
}

// NewPrinter creates a Printer on w. Header styling is enabled only when w
// is a terminal.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd())
	}
	return &Printer{w: w, styled: styled}
}

// Print writes lines under header. Empty results print nothing and leave the
// grouping state untouched.
func (p *Printer) Print(header string, lines []string) {
	if len(lines) == 0 {
		return
	}
	if header != p.last {
		sep := fmt.Sprintf("===> %s <===", header)
		if p.styled {
			sep = headerStyle.Render(sep)
		}
		fmt.Fprintln(p.w, sep)
	}
	for _, line := range lines {
		fmt.Fprintln(p.w, line)
	}
	p.last = header
}

// LastHeader returns the most recently printed header.
func (p *Printer) LastHeader() string {
	return p.last
}
