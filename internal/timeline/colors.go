package timeline

import (
	"strings"

	"github.com/drew/planview/internal/model"
)

// FallbackColor is used when the action is not in the domain catalog
const FallbackColor = "gray"

// colorSpread walks the palette in steps of 7 so that consecutive actions get
// distant hues. Changing it changes every rendered plan.
const colorSpread = 7

// Palette spans the hue wheel in 15 degree steps
var Palette = [24]string{
	"#ff0000", "#ff4000", "#ff8000", "#ffbf00", "#ffff00", "#bfff00",
	"#80ff00", "#40ff00", "#00ff00", "#00ff40", "#00ff80", "#00ffbf",
	"#00ffff", "#00bfff", "#0080ff", "#0040ff", "#0000ff", "#4000ff",
	"#8000ff", "#bf00ff", "#ff00ff", "#ff00bf", "#ff0080", "#ff0040",
}

// ActionColor picks the bar colour for an action by its position in the
// domain's action list (case-insensitive).
func ActionColor(actionName string, domain *model.Domain) string {
	index := actionIndex(actionName, domain)
	if index < 0 {
		return FallbackColor
	}
	return Palette[(index*colorSpread)%len(Palette)]
}

func actionIndex(actionName string, domain *model.Domain) int {
	if domain == nil {
		return -1
	}
	for i, a := range domain.Actions {
		if strings.EqualFold(a, actionName) {
			return i
		}
	}
	return -1
}
