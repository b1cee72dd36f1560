package timeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drew/planview/internal/model"
)

// Glyphs appended to helpful action names
const (
	StartGlyph = "├"
	EndGlyph   = "┤"
)

// HelpfulActionSuffix returns the directional glyph for a helpful action kind
func HelpfulActionSuffix(kind model.HappeningKind) string {
	switch model.HappeningKind(strings.ToUpper(string(kind))) {
	case model.HappeningStart:
		return StartGlyph
	case model.HappeningEnd:
		return EndGlyph
	default:
		return ""
	}
}

// HelpfulActionLabel is the action name followed by its suffix glyph
func HelpfulActionLabel(action model.HelpfulAction) string {
	return action.ActionName + HelpfulActionSuffix(action.Kind)
}

// StepLabel is "ACTION OBJ... Nx", with the iteration count only when > 1
func StepLabel(step model.PlanStep) string {
	label := step.FullActionName()
	if step.Iterations > 1 {
		label += " " + strconv.Itoa(step.Iterations) + "x"
	}
	return label
}

// StepTooltip lists start, duration and end, one per line
func StepTooltip(step model.PlanStep) string {
	var lines []string
	if step.StartTime != nil {
		lines = append(lines, "Start: "+formatTime(*step.StartTime))
	}
	if step.IsDurative {
		if step.Duration != nil {
			lines = append(lines, fmt.Sprintf("Duration: %.4f", *step.Duration))
		}
		lines = append(lines, "End: "+formatTime(step.EndTime()))
	}
	return strings.Join(lines, "\n")
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
