// Package ui prints benchmark reports to the terminal, highlighting
// regressions against the stored baseline.
package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"readygo/internal/baseline"
	"readygo/pkg/benchmark"
	"readygo/pkg/report"
)

// Colour modes accepted by NewPrinter.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes formatted results. Output to a writer that is not a
// terminal carries no escape sequences in auto mode.
type Printer struct {
	w         io.Writer
	formatter report.Formatter
	threshold float64
	styles    styles
}

// NewPrinter creates a Printer for w. threshold is the p80 change, in
// percent, beyond which the Current line is coloured.
func NewPrinter(w io.Writer, color string, formatter report.Formatter, threshold float64) *Printer {
	r := lipgloss.NewRenderer(w)
	switch strings.ToLower(color) {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Printer{
		w:         w,
		formatter: formatter,
		threshold: threshold,
		styles:    newStyles(r),
	}
}

// PrintResult writes the report block for current followed by a blank line.
func (p *Printer) PrintResult(current, base *benchmark.Result) error {
	lines, err := p.formatter.FormatResults(current, base)
	if err != nil {
		return err
	}

	currentLine := len(lines) - 2
	currentStyle := p.currentStyle(current, base)

	var sb strings.Builder
	for i, line := range lines {
		switch {
		case i == 0:
			line = p.styles.name.Render(line)
		case i == currentLine && currentStyle != nil:
			line = currentStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	_, err = io.WriteString(p.w, sb.String())
	return err
}

// PrintComparisons writes the p80 change of every compared benchmark, one
// line each, coloured like the Current bar. Nothing is written for an empty
// list.
func (p *Printer) PrintComparisons(comps []baseline.Comparison) error {
	if len(comps) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Change against baseline\n")
	for _, c := range comps {
		line := "  " + c.String()
		if style := p.comparisonStyle(c); style != nil {
			line = style.Render(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *Printer) currentStyle(current, base *benchmark.Result) *lipgloss.Style {
	if base == nil {
		return nil
	}
	return p.comparisonStyle(baseline.Diff(*base, *current))
}

func (p *Printer) comparisonStyle(comp baseline.Comparison) *lipgloss.Style {
	switch {
	case comp.Regressed(p.threshold):
		return &p.styles.regressed
	case comp.Improved(p.threshold):
		return &p.styles.improved
	}
	return nil
}
