// Package export renders simulated trajectories and dose-response curves
// as standalone SVG figures.
package export

import (
	"fmt"
	"strings"

	"github.com/Pain0430/lead-network-toxicology/internal/analysis"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

var strokePalette = []string{
	"#ff5555", "#50fa7b", "#8be9fd", "#ffb86c", "#bd93f9", "#f1fa8c",
}

// TimeSeriesSVG renders the selected species' trajectories as SVG
// polylines over a shared time axis. Unknown species are skipped.
func TimeSeriesSVG(ts *sim.TimeSeries, species []string, width, height int) string {
	if ts.Len() < 2 {
		return ""
	}

	type trace struct {
		id     string
		values []float64
	}
	traces := make([]trace, 0, len(species))
	maxY := 0.0
	for _, id := range species {
		values, ok := ts.Series(id)
		if !ok {
			continue
		}
		for _, v := range values {
			if v > maxY {
				maxY = v
			}
		}
		traces = append(traces, trace{id: id, values: values})
	}
	if len(traces) == 0 {
		return ""
	}
	if maxY == 0 {
		maxY = 1
	}

	t0 := ts.Times[0]
	span := ts.Times[len(ts.Times)-1] - t0
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	header(&sb, width, height)

	for i, tr := range traces {
		color := strokePalette[i%len(strokePalette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, v := range tr.values {
			x := (ts.Times[j] - t0) / span * float64(width)
			y := float64(height) - v/maxY*float64(height)*0.92 - float64(height)*0.04
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-size="12" font-family="monospace">%s</text>`,
			16+14*i, color, tr.id))
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// DoseResponseSVG renders a dose-response curve with sample markers.
func DoseResponseSVG(points []analysis.ResponsePoint, width, height int) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].Dose, points[len(points)-1].Dose
	minY, maxY := points[0].Value, points[0].Value
	for _, p := range points {
		if p.Value < minY {
			minY = p.Value
		}
		if p.Value > maxY {
			maxY = p.Value
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	var sb strings.Builder
	header(&sb, width, height)

	place := func(p analysis.ResponsePoint) (float64, float64) {
		x := (p.Dose - minX) / rangeX * float64(width) * 0.92
		y := float64(height) - (p.Value-minY)/rangeY*float64(height)*0.92 - float64(height)*0.04
		return x + float64(width)*0.04, y
	}

	sb.WriteString(`<path fill="none" stroke="#50fa7b" stroke-width="1.5" d="M`)
	for i, p := range points {
		x, y := place(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	for _, p := range points {
		x, y := place(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#ff5555"/>`, x, y))
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}
