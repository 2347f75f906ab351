package report

import (
	"strings"
	"testing"

	"readygo/pkg/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name   string
		ms     float64
		want   string
		suffix string
	}{
		{"nanoseconds", 0.000001, "1.00 ns", "ns"},
		{"microseconds", 0.001, "1.00 us", "us"},
		{"milliseconds", 1, "1.00 ms", "ms"},
		{"thousand milliseconds", 1000, "1000.00 ms", "s"},
		{"seconds", 5000, "5.00 s", " s"},
		{"keeps formatting as seconds", 10000000, "10000.00 s", " s"},
		{"zero", 0, "0.00 ns", "ns"},
		{"sub nanosecond", 0.00000025, "0.25 ns", "ns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTime(tt.ms)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasSuffix(got, tt.suffix), "%q should end with %q", got, tt.suffix)
		})
	}
}

func TestFormatBar(t *testing.T) {
	tests := []struct {
		name          string
		min, p80, max float64
		want          string
	}{
		{"front", 0, 0, 4, "|x    |"},
		{"midpoint", 2, 2, 4, "|  x  |"},
		{"end", 4, 4, 4, "|    x|"},
		{"span", 0, 4, 4, "|x----|"},
		{"almost", 0, 2, 4, "|x--  |"},
		{"back half", 2, 4, 4, "|  x--|"},
		{"midspan", 1, 3, 4, "| x-- |"},
		{"adjacent", 0, 1, 4, "|x-   |"},
		{"degenerate", 0, 0, 0, "|x    |"},
		{"negative minimum", -1, 2, 4, "|x--  |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBar(tt.min, tt.p80, tt.max, 5))
		})
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"normal label", "Before", "  Before:   |x  |"},
		{"long label", "ASDFASDFASDFASDF", "  ASDFASDFASDFASDF: |x  |"},
		{"empty label", "", "  :         |x  |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLine(tt.label, 0, 0, 3, 17))
		})
	}
}

func TestFormatResults_NoBaseline(t *testing.T) {
	current := &benchmark.Result{Name: "Foo", MinimumTime: 1, P80: 2}

	lines, err := FormatResults(current, nil)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "Foo", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Current:  |"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "-|"), "the current bar spans to the right edge")
	assert.Len(t, lines[1], DefaultLineWidth)

	assert.True(t, strings.HasSuffix(lines[2], "2.00 ms"), lines[2])
	assert.Equal(t, strings.Repeat(" ", DefaultLeftMargin)+"0", lines[2][:DefaultLeftMargin+1])
	assert.Len(t, lines[2], DefaultLineWidth)
}

func TestFormatResults_SlowerThanBaseline(t *testing.T) {
	baseline := &benchmark.Result{Name: "Foo", MinimumTime: 1, P80: 2}
	current := &benchmark.Result{Name: "Foo", MinimumTime: 2, P80: 4}

	lines, err := FormatResults(current, baseline)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, "Foo", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Baseline: |"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " |"), "the baseline bar stops before the edge")
	assert.True(t, strings.HasPrefix(lines[2], "  Current:  |"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], "-|"), "the current bar reaches the edge")
	assert.True(t, strings.HasSuffix(lines[3], "4.00 ms"), lines[3])
}

func TestFormatResults_FasterThanBaseline(t *testing.T) {
	baseline := &benchmark.Result{Name: "Foo", MinimumTime: 2, P80: 4}
	current := &benchmark.Result{Name: "Foo", MinimumTime: 1, P80: 2}

	lines, err := FormatResults(current, baseline)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[1], "-|"))
	assert.True(t, strings.HasSuffix(lines[2], " |"))
	assert.True(t, strings.HasSuffix(lines[3], "4.00 ms"), "the legend follows the larger p80")
}

func TestFormatResults_NilCurrent(t *testing.T) {
	_, err := FormatResults(nil, &benchmark.Result{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "current")
}

func TestFormatter_CustomWidth(t *testing.T) {
	f := Formatter{LineWidth: 40, LeftMargin: 12}
	lines, err := f.FormatResults(&benchmark.Result{Name: "Small", MinimumTime: 0.5, P80: 1}, nil)
	require.NoError(t, err)
	for _, line := range lines[1:] {
		assert.Len(t, line, 40)
	}
}

func TestFormatter_ZeroValueUsesDefaults(t *testing.T) {
	var f Formatter
	assert.Equal(t, Default.FormatLegend(3), f.FormatLegend(3))
	assert.Equal(t, Default.FormatLine("Current", 1, 2, 3), f.FormatLine("Current", 1, 2, 3))
}
