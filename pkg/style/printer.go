package style

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Printer writes styled diagnostics to one stream.
type Printer struct {
	out    io.Writer
	color  bool
	styles map[string]lipgloss.Style
}

// NewPrinter returns a printer for f, colored only when f can show colors.
func NewPrinter(f *os.File) *Printer {
	return newPrinter(f, ColorEnabled(f))
}

// NewPlainPrinter returns a printer that never emits escape sequences.
func NewPlainPrinter(w io.Writer) *Printer {
	return newPrinter(w, false)
}

func newPrinter(w io.Writer, color bool) *Printer {
	p := &Printer{out: w, color: color}
	if !color {
		return p
	}
	cfg, err := ParseStyles(embeddedStyles)
	if err != nil {
		p.color = false
		return p
	}
	p.styles = cfg.build(lipgloss.NewRenderer(w))
	return p
}

// ColorEnabled reports whether f should receive colored output.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).Profile != termenv.Ascii
}

// Render applies the named style to text. Unknown names and plain
// printers return text unchanged.
func (p *Printer) Render(name, text string) string {
	if !p.color {
		return text
	}
	s, ok := p.styles[name]
	if !ok {
		return text
	}
	return s.Render(text)
}

// Error prints a fatal error.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.Render("Error", "Error:"), err)
}

// Warning prints a non-fatal problem.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.Render("Warning", "Warning:"), fmt.Sprintf(format, args...))
}

// Note prints an informational line in the muted style.
func (p *Printer) Note(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.Render("Muted", fmt.Sprintf(format, args...)))
}
