package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/drew/planview/internal/timeline"
)

// Terminal stand-in for the gray fallback bar colour
const fallbackHex = "#808080"

// Colors wraps text in terminal styles when colours are enabled
type Colors struct {
	enabled  bool
	renderer *lipgloss.Renderer
}

// NewColors creates a Colors writing to w. The colour profile is detected from w.
func NewColors(w io.Writer, enabled bool) *Colors {
	return &Colors{enabled: enabled, renderer: lipgloss.NewRenderer(w)}
}

// Enabled reports whether styles are applied
func (c *Colors) Enabled() bool {
	return c.enabled
}

func (c *Colors) style(s string, style lipgloss.Style) string {
	if !c.enabled {
		return s
	}
	return style.Render(s)
}

func (c *Colors) base() lipgloss.Style {
	return c.renderer.NewStyle()
}

// Red returns red text
func (c *Colors) Red(s string) string {
	return c.style(s, c.base().Foreground(lipgloss.Color("9")))
}

// Green returns green text
func (c *Colors) Green(s string) string {
	return c.style(s, c.base().Foreground(lipgloss.Color("10")))
}

// Yellow returns yellow text
func (c *Colors) Yellow(s string) string {
	return c.style(s, c.base().Foreground(lipgloss.Color("11")))
}

// Gray returns dimmed text
func (c *Colors) Gray(s string) string {
	return c.style(s, c.base().Foreground(lipgloss.Color("8")))
}

// Bold returns bold text
func (c *Colors) Bold(s string) string {
	return c.style(s, c.base().Bold(true))
}

// Bar colours s with an action colour from the timeline palette
func (c *Colors) Bar(color, s string) string {
	return c.style(s, c.base().Foreground(lipgloss.Color(terminalColor(color))))
}

// RelaxedBar colours the speculative remainder of a bar
func (c *Colors) RelaxedBar(color, s string) string {
	return c.style(s, c.base().Foreground(lipgloss.Color(terminalColor(color))).Faint(true))
}

func terminalColor(color string) string {
	if color == timeline.FallbackColor || color == "" {
		return fallbackHex
	}
	return color
}
