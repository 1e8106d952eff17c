package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

// Palette holds the hex colors used for SVG output.
type Palette struct {
	Background string
	Bar        string
	Comparing  string
	Swapping   string
	Text       string
}

var DefaultPalette = Palette{
	Background: "#0a0a0a",
	Bar:        "#00ccff",
	Comparing:  "#ffcc00",
	Swapping:   "#ff4444",
	Text:       "#cccccc",
}

// BarColor returns the fill for bar i of frame f.
func (p Palette) BarColor(f playback.Frame, i int) string {
	if f.Kind == trace.KindNone || (f.Pair[0] != i && f.Pair[1] != i) {
		return p.Bar
	}
	if f.Kind == trace.KindComparing {
		return p.Comparing
	}
	return p.Swapping
}

// FrameToSVG renders one frame as a bar chart. Bar height is proportional to
// the value; highlighted bars take the comparing or swapping color.
func FrameToSVG(f playback.Frame, width, height int, pal Palette) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, pal.Background))

	label := fmt.Sprintf("step %d / %d", f.Index+1, f.Total)
	if f.Index < 0 {
		label = fmt.Sprintf("unsorted (%d steps)", f.Total)
	}
	sb.WriteString(fmt.Sprintf(`<text x="8" y="16" font-family="monospace" font-size="12" fill="%s">%s</text>
`, pal.Text, label))

	if len(f.Array) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	maxVal := 1
	for _, v := range f.Array {
		if v > maxVal {
			maxVal = v
		}
	}

	top := 24.0
	plotH := float64(height) - top - 4
	slot := float64(width) / float64(len(f.Array))
	gap := slot * 0.15
	if gap > 4 {
		gap = 4
	}

	sb.WriteString("<g>\n")
	for i, v := range f.Array {
		h := plotH * float64(v) / float64(maxVal)
		x := float64(i)*slot + gap/2
		y := float64(height) - 4 - h
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, slot-gap, h, pal.BarColor(f, i)))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG draws an integer series (for example inversions per step) as a
// polyline.
func SeriesToSVG(values []int, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := float64(maxY - minY)
	if rangeY == 0 {
		rangeY = 1
	}
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - float64(v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
