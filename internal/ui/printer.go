package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Terminal glyphs
const (
	GlyphHeader   = "✯"
	GlyphArrow    = "➢"
	GlyphOK       = "✔"
	GlyphKO       = "✘"
	GlyphWarning  = "⚠"
	GlyphBuilding = "🏢"
)

// Printer renders styled status lines. Colors are dropped automatically when
// the writer is not a color-capable terminal or NO_COLOR is set.
type Printer struct {
	w io.Writer

	green  lipgloss.Style
	yellow lipgloss.Style
	red    lipgloss.Style
	white  lipgloss.Style
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		green:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		yellow: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		red:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		white:  r.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
	}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Header displays a section header
func (p *Printer) Header(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.yellow.Render(GlyphHeader), p.green.Render(msg))
}

// Arrow displays an informational line
func (p *Printer) Arrow(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.yellow.Render(GlyphArrow), msg)
}

// LabelArrow displays a "label: value" line
func (p *Printer) LabelArrow(label string, msg any) {
	p.Arrow(fmt.Sprintf("%s: %v", p.white.Render(label), msg))
}

// Success displays a final success line
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.green.Render(GlyphOK), p.white.Render(msg))
}

// Error displays an error line followed by optional details
func (p *Printer) Error(msg string, details string) {
	fmt.Fprintln(p.w, p.red.Render(GlyphKO+" "+msg))
	if details != "" {
		fmt.Fprintln(p.w, details)
	}
}

// Highlight renders v in bold white for inline emphasis
func (p *Printer) Highlight(v any) string {
	return p.white.Render(fmt.Sprint(v))
}

// Warning renders a warning sentence for inline use
func (p *Printer) Warning(msg string) string {
	return p.yellow.Render(GlyphWarning) + " " + msg
}

// Println writes a plain line
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}
