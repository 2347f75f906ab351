// Package report renders benchmark results as fixed-width text: one bar per
// result on a shared linear axis from zero to the largest p80 being shown,
// followed by a legend.
package report

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"readygo/pkg/benchmark"
)

const (
	DefaultLineWidth  = 80
	DefaultLeftMargin = 12
)

// ErrInvalidArgument is returned when a required argument is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// Formatter lays out report lines. Zero fields fall back to the defaults.
type Formatter struct {
	LineWidth  int
	LeftMargin int
}

// Default is the 80 column layout with a 12 column label margin.
var Default = Formatter{LineWidth: DefaultLineWidth, LeftMargin: DefaultLeftMargin}

func (f Formatter) lineWidth() int {
	if f.LineWidth <= 0 {
		return DefaultLineWidth
	}
	return f.LineWidth
}

func (f Formatter) leftMargin() int {
	if f.LeftMargin <= 0 {
		return DefaultLeftMargin
	}
	return f.LeftMargin
}

// FormatTime renders a duration given in milliseconds with two decimals,
// picking ns, us, ms or s by magnitude.
func FormatTime(ms float64) string {
	switch abs := math.Abs(ms); {
	case abs < 0.001:
		return fmt.Sprintf("%.2f ns", ms*1e6)
	case abs < 1:
		return fmt.Sprintf("%.2f us", ms*1e3)
	case abs < 5000:
		return fmt.Sprintf("%.2f ms", ms)
	default:
		return fmt.Sprintf("%.2f s", ms/1e3)
	}
}

// FormatBar draws min and p80 on a width-cell axis from 0 to max: an 'x' at
// min, dashes after it up to and including p80, spaces elsewhere, all between
// two pipes.
func FormatBar(min, p80, max float64, width int) string {
	var b strings.Builder
	writeBar(&b, min, p80, max, width)
	return b.String()
}

func writeBar(b *strings.Builder, min, p80, max float64, width int) {
	if width < 1 {
		width = 1
	}
	minPos := barPosition(min, max, width)
	p80Pos := barPosition(p80, max, width)

	b.WriteByte('|')
	cursor := 0
	for ; cursor < minPos; cursor++ {
		b.WriteByte(' ')
	}
	b.WriteByte('x')
	cursor++
	for ; cursor <= p80Pos; cursor++ {
		b.WriteByte('-')
	}
	for ; cursor < width; cursor++ {
		b.WriteByte(' ')
	}
	b.WriteByte('|')
}

// barPosition maps [0, max] onto cells [0, width-1].
func barPosition(v, max float64, width int) int {
	if !(max > 0) || width <= 1 || math.IsNaN(v) {
		return 0
	}
	pos := int(math.Round(v / (max / float64(width-1))))
	if pos < 0 {
		return 0
	}
	if pos > width-1 {
		return width - 1
	}
	return pos
}

// FormatLine renders a labelled bar lineWidth columns wide using the default
// margin.
func FormatLine(label string, min, p80, max float64, lineWidth int) string {
	return Formatter{LineWidth: lineWidth, LeftMargin: DefaultLeftMargin}.FormatLine(label, min, p80, max)
}

// FormatLine renders "  <label>: " padded to the left margin followed by the
// bar. Labels longer than the margin push the line past the line width.
func (f Formatter) FormatLine(label string, min, p80, max float64) string {
	margin := f.leftMargin()

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(label)
	b.WriteString(": ")
	if b.Len() < margin {
		b.WriteString(strings.Repeat(" ", margin-b.Len()))
	}
	writeBar(&b, min, p80, max, f.lineWidth()-margin-2)
	return b.String()
}

// FormatLegend renders the axis labels: 0 under the start of the bars and
// max right-aligned at the end of the line.
func (f Formatter) FormatLegend(max float64) string {
	margin := f.leftMargin()
	maxTime := FormatTime(max)

	pad := f.lineWidth() - margin - 1 - len(maxTime)
	if pad < 1 {
		pad = 1
	}
	return strings.Repeat(" ", margin) + "0" + strings.Repeat(" ", pad) + maxTime
}

// FormatResults renders current, and baseline when non-nil, as report lines:
// the benchmark name, a Baseline bar, a Current bar and the legend. Both bars
// share an axis ending at the larger p80.
func (f Formatter) FormatResults(current, baseline *benchmark.Result) ([]string, error) {
	if current == nil {
		return nil, fmt.Errorf("%w: current result is nil", ErrInvalidArgument)
	}

	max := current.P80
	if baseline != nil && baseline.P80 > max {
		max = baseline.P80
	}

	lines := make([]string, 0, 4)
	lines = append(lines, current.Name)
	if baseline != nil {
		lines = append(lines, f.FormatLine("Baseline", baseline.MinimumTime, baseline.P80, max))
	}
	lines = append(lines, f.FormatLine("Current", current.MinimumTime, current.P80, max))
	lines = append(lines, f.FormatLegend(max))
	return lines, nil
}

// FormatResults formats with the Default layout.
func FormatResults(current, baseline *benchmark.Result) ([]string, error) {
	return Default.FormatResults(current, baseline)
}
