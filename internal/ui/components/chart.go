// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/styles"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/util"
)

// =============================================================================
// CHART RENDERER
// =============================================================================

// NoDataNotice is shown when a chart was requested but the spec carried
// no points to plot.
const NoDataNotice = "No data available for visualization"

// chart layout limits
const (
	maxBarWidth    = 30
	maxChartPoints = 24
	scatterRows    = 10
	scatterCols    = 40
	maxLabelWidth  = 18
)

// Chart renders one chart artifact in the terminal.
type Chart struct {
	Kind     string
	Spec     *model.ChartSpec
	MaxWidth int
}

// NewChart creates a chart of the given kind.
func NewChart(kind string, spec *model.ChartSpec) Chart {
	return Chart{
		Kind:     kind,
		Spec:     spec,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the chart.
func (c *Chart) SetMaxWidth(width int) {
	c.MaxWidth = width
}

// Render dispatches on the chart kind. Unknown kinds and empty specs
// produce notices instead of artifacts.
func (c Chart) Render() string {
	theme := styles.NewTheme()

	if c.Spec == nil || c.Spec.IsEmpty() {
		return theme.ChartBox.Render(theme.ChartNoData.Render(NoDataNotice))
	}
	if !model.IsSupportedChartKind(c.Kind) {
		notice := fmt.Sprintf("Unsupported chart type %q", c.Kind)
		return theme.ChartBox.Render(theme.WarningStyle.Render(notice))
	}

	points := c.points()
	if len(points) == 0 {
		return theme.ChartBox.Render(theme.ChartNoData.Render(NoDataNotice))
	}

	var body string
	switch c.Kind {
	case model.ChartBar:
		body = renderBars(theme, points)
	case model.ChartLine:
		body = renderLine(theme, points)
	case model.ChartPie:
		body = renderPie(theme, points)
	case model.ChartScatter:
		body = renderScatter(theme, points)
	}

	title := theme.ChartTitle.Render(strings.ToUpper(c.Kind[:1]) + c.Kind[1:] + " chart")
	maxWidth := c.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}
	return theme.ChartBox.MaxWidth(maxWidth).Render(title + "\n" + body)
}

// point is one plotted label/value pair.
type point struct {
	Label string
	Value float64
}

// points extracts plot points from the spec. Bar, line, and scatter
// charts read the axis keys; pie charts read the label/value keys.
// Rows whose value is missing or non-numeric are skipped.
func (c Chart) points() []point {
	labelKey := c.Spec.XAxis
	valueKey := c.Spec.YAxis
	if c.Kind == model.ChartPie {
		labelKey = c.Spec.Label
		valueKey = c.Spec.Value
	}

	var pts []point
	for _, row := range c.Spec.Data {
		v, ok := numericValue(row[valueKey])
		if !ok {
			continue
		}
		pts = append(pts, point{
			Label: FormatCell(row[labelKey]),
			Value: v,
		})
		if len(pts) == maxChartPoints {
			break
		}
	}
	return pts
}

func renderBars(theme *styles.Theme, pts []point) string {
	maxVal := 0.0
	labelW := 0
	for _, p := range pts {
		if p.Value > maxVal {
			maxVal = p.Value
		}
		if w := runewidth.StringWidth(p.Label); w > labelW {
			labelW = w
		}
	}
	if labelW > maxLabelWidth {
		labelW = maxLabelWidth
	}

	var sb strings.Builder
	for i, p := range pts {
		bar := 0
		if maxVal > 0 {
			bar = int(p.Value / maxVal * maxBarWidth)
		}
		if bar == 0 && p.Value > 0 {
			bar = 1
		}
		color := styles.ChartSeries[i%len(styles.ChartSeries)]
		label := util.PadRight(util.TruncateWidth(p.Label, labelW), labelW)
		sb.WriteString(theme.ChartLabel.Render(label))
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", bar)))
		sb.WriteString(" ")
		sb.WriteString(theme.ChartValue.Render(formatValue(p.Value)))
		if i < len(pts)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// sparkRunes map a normalized value onto block heights.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func renderLine(theme *styles.Theme, pts []point) string {
	minVal, maxVal := pts[0].Value, pts[0].Value
	for _, p := range pts {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	var spark strings.Builder
	for _, p := range pts {
		idx := 0
		if maxVal > minVal {
			idx = int((p.Value - minVal) / (maxVal - minVal) * float64(len(sparkRunes)-1))
		}
		spark.WriteRune(sparkRunes[idx])
	}

	line := lipgloss.NewStyle().Foreground(styles.Cyan).Render(spark.String())
	rangeNote := theme.ChartLabel.Render(
		fmt.Sprintf("%s … %s  (%d points, %s → %s)",
			formatValue(minVal), formatValue(maxVal),
			len(pts), pts[0].Label, pts[len(pts)-1].Label))
	return line + "\n" + rangeNote
}

func renderPie(theme *styles.Theme, pts []point) string {
	total := 0.0
	labelW := 0
	for _, p := range pts {
		if p.Value > 0 {
			total += p.Value
		}
		if w := runewidth.StringWidth(p.Label); w > labelW {
			labelW = w
		}
	}
	if labelW > maxLabelWidth {
		labelW = maxLabelWidth
	}
	if total == 0 {
		return theme.ChartNoData.Render(NoDataNotice)
	}

	var sb strings.Builder
	for i, p := range pts {
		share := 0.0
		if p.Value > 0 {
			share = p.Value / total
		}
		bar := int(share * maxBarWidth)
		color := styles.ChartSeries[i%len(styles.ChartSeries)]
		label := util.PadRight(util.TruncateWidth(p.Label, labelW), labelW)
		sb.WriteString(theme.ChartLabel.Render(label))
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", bar)))
		sb.WriteString(" ")
		sb.WriteString(theme.ChartValue.Render(fmt.Sprintf("%.1f%%", share*100)))
		if i < len(pts)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderScatter(theme *styles.Theme, pts []point) string {
	minVal, maxVal := pts[0].Value, pts[0].Value
	for _, p := range pts {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	grid := make([][]rune, scatterRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", scatterCols))
	}
	for i, p := range pts {
		col := 0
		if len(pts) > 1 {
			col = i * (scatterCols - 1) / (len(pts) - 1)
		}
		row := scatterRows - 1
		if maxVal > minVal {
			row = scatterRows - 1 - int((p.Value-minVal)/(maxVal-minVal)*float64(scatterRows-1))
		}
		grid[row][col] = '•'
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Purple).Render(string(row)))
		sb.WriteByte('\n')
	}
	sb.WriteString(theme.ChartLabel.Render(
		fmt.Sprintf("y: %s … %s  x: %s → %s",
			formatValue(minVal), formatValue(maxVal),
			pts[0].Label, pts[len(pts)-1].Label)))
	return sb.String()
}

// numericValue coerces a decoded JSON value into a float64.
func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// formatValue renders an axis value compactly.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
