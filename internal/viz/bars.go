package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

// eighths indexes partial block glyphs by fill level 0..8.
var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// barColor picks the color for bar i of f.
func barColor(f playback.Frame, i int, th Theme) lipgloss.Color {
	if f.State == playback.Finished && f.Total > 0 {
		return th.Sorted
	}
	if f.Kind != trace.KindNone && (f.Pair[0] == i || f.Pair[1] == i) {
		if f.Kind == trace.KindComparing {
			return th.Comparing
		}
		return th.Swapping
	}
	return th.Bar
}

// RenderBars draws the frame's array as vertical bars in a width x height
// cell area. Bar height is proportional to value.
func RenderBars(f playback.Frame, width, height int, th Theme) string {
	n := len(f.Array)
	if n == 0 || width <= 0 || height <= 0 {
		return strings.Repeat("\n", max(height-1, 0))
	}

	col := width / n
	if col < 1 {
		col = 1
	}
	gap := 0
	if col >= 3 {
		gap = 1
	}

	maxVal := 1
	for _, v := range f.Array {
		if v > maxVal {
			maxVal = v
		}
	}

	styles := make([]lipgloss.Style, n)
	units := make([]int, n)
	for i, v := range f.Array {
		styles[i] = lipgloss.NewStyle().Foreground(barColor(f, i, th))
		units[i] = v * height * 8 / maxVal
		if v > 0 && units[i] == 0 {
			units[i] = 1
		}
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		floor := (height - 1 - r) * 8
		var b strings.Builder
		for i := range f.Array {
			fill := units[i] - floor
			if fill > 8 {
				fill = 8
			}
			if fill < 0 {
				fill = 0
			}
			cell := strings.Repeat(string(eighths[fill]), col-gap)
			if fill > 0 {
				cell = styles[i].Render(cell)
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", gap))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}
