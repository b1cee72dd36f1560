package ui

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
)

const (
	committedGlyph = "█"
	relaxedGlyph   = "░"
	markerGlyph    = "│"
	maxLabelWidth  = 40
	minBarColumns  = 10
	helpfulHeader  = "Helpful actions"
)

// Gantt draws plans as text timelines, one character column per time slice
type Gantt struct {
	colors  *Colors
	columns int
	opts    model.ViewOptions
	logger  *logging.Logger
}

// NewGantt creates a Gantt that fits its output into columns characters
func NewGantt(colors *Colors, opts model.ViewOptions, columns int, logger *logging.Logger) *Gantt {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Gantt{colors: colors, columns: columns, opts: opts, logger: logger}
}

type ganttLine struct {
	row  int
	text string
}

// Render writes one plan. Plan-head rows come first, then the helpful
// actions row at the now cursor, then the relaxed rows.
func (g *Gantt) Render(w io.Writer, plan *model.Plan, planIndex int, pred timeline.Predicate) error {
	plan.Capitalize()
	labelWidth := labelColumnWidth(plan, pred)
	barColumns := max(minBarColumns, g.columns-labelWidth-2)

	opts := g.opts
	opts.DisplayWidth = float64(barColumns)
	opts.RowHeight = 1
	layout := timeline.NewRenderer(opts, g.logger).Layout(plan, planIndex, pred)

	var b strings.Builder
	b.WriteString(g.header(plan, planIndex))
	b.WriteString("\n")

	lines := make([]ganttLine, 0, len(layout.Rows)+1)
	for _, row := range layout.Rows {
		lines = append(lines, ganttLine{row: row.Index, text: g.stepLine(row, labelWidth)})
	}
	if layout.Helpful != nil {
		lines = append(lines, ganttLine{row: layout.Helpful.Row, text: g.helpfulLine(layout.Helpful, labelWidth)})
	}
	slices.SortFunc(lines, func(a, b ganttLine) int { return a.row - b.row })

	for _, line := range lines {
		b.WriteString(line.text)
		b.WriteString("\n")
	}
	b.WriteString(g.axis(plan, labelWidth, barColumns))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (g *Gantt) header(plan *model.Plan, planIndex int) string {
	title := g.colors.Bold(fmt.Sprintf("Plan %d", planIndex+1))
	details := fmt.Sprintf("  %d steps, makespan %s", len(plan.Steps), formatTime(plan.Makespan))
	if plan.Now != nil {
		details += ", now " + formatTime(*plan.Now)
	}
	return title + g.colors.Gray(details)
}

func (g *Gantt) stepLine(row timeline.Row, labelWidth int) string {
	label := padLabel(row.Label, labelWidth)
	if row.Section == timeline.Relaxed {
		label = g.colors.Gray(label)
	}

	left := columns(row.Left)
	bar := max(1, columns(row.BarWidth))
	relaxed := columns(row.RelaxedWidth)

	return label + "  " + strings.Repeat(" ", left) +
		g.colors.Bar(row.Color, strings.Repeat(committedGlyph, bar)) +
		g.colors.RelaxedBar(row.Color, strings.Repeat(relaxedGlyph, relaxed))
}

func (g *Gantt) helpfulLine(marker *timeline.HelpfulMarker, labelWidth int) string {
	labels := make([]string, 0, len(marker.Items))
	for _, item := range marker.Items {
		labels = append(labels, item.Label)
	}
	return g.colors.Bold(padLabel(helpfulHeader, labelWidth)) + "  " +
		strings.Repeat(" ", columns(marker.Left)) +
		g.colors.Yellow(markerGlyph+" "+strings.Join(labels, "  "))
}

func (g *Gantt) axis(plan *model.Plan, labelWidth, barColumns int) string {
	end := formatTime(plan.Makespan)
	gap := max(1, barColumns-1-len(end))
	return g.colors.Gray(strings.Repeat(" ", labelWidth+2) + "0" + strings.Repeat(" ", gap) + end)
}

func labelColumnWidth(plan *model.Plan, pred timeline.Predicate) int {
	width := 0
	if len(plan.HelpfulActions) > 0 {
		width = lipgloss.Width(helpfulHeader)
	}
	for _, step := range plan.Steps {
		if pred != nil && !pred.ShouldDisplay(step) {
			continue
		}
		width = max(width, lipgloss.Width(timeline.StepLabel(step)))
	}
	return min(width, maxLabelWidth)
}

// padLabel truncates or pads label to exactly width display columns
func padLabel(label string, width int) string {
	if lipgloss.Width(label) > width {
		runes := []rune(label)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		label = string(runes) + "…"
	}
	return label + strings.Repeat(" ", max(0, width-lipgloss.Width(label)))
}

func columns(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
