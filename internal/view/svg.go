package view

import (
	"unicode/utf8"

	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/timeline"
)

const (
	svgFontSize     = 12
	svgLabelPadding = 10
	svgBarInset     = 3
	svgFontFamily   = "Arial, sans-serif"
	svgRelaxedFill  = "#e8e8e8"
	svgMarkerColor  = "#333333"
)

// BuildSVG renders a layout as a standalone SVG tree: labels on the left,
// bars on the right, and a vertical now line through the helpful actions row.
func BuildSVG(layout timeline.Layout) *element.Element {
	labelWidth := svgLabelWidth(layout)
	width := labelWidth + layout.Width + svgLabelPadding

	root := element.SVG("svg").
		Attr("xmlns", "http://www.w3.org/2000/svg").
		Attr("width", num(width)).
		Attr("height", num(layout.Height)).
		Attr("font-family", svgFontFamily).
		Attr("font-size", num(svgFontSize))

	labels := element.SVG("g").Attr("class", "labels")
	bars := element.SVG("g").Attr("class", "gantt").
		Attr("transform", "translate("+num(labelWidth)+",0)")

	for _, row := range layout.Rows {
		labels.Append(svgText(0, textBaseline(row.Top, layout.RowHeight), row.Label))
		bars.Append(svgBars(layout, row))
	}

	if layout.Helpful != nil {
		labels.Append(svgText(0, textBaseline(layout.Helpful.Top, layout.RowHeight), helpfulActionsHeader))
		bars.Append(svgHelpful(layout))
	}

	return root.Append(labels, bars)
}

func svgBars(layout timeline.Layout, row timeline.Row) *element.Element {
	g := element.SVG("g").
		Attr("id", StepID(layout.PlanIndex, row.StepIndex)).
		Attr("class", ClassStep+" "+sectionClass(row.Section))

	height := layout.RowHeight - 2*svgBarInset
	bar := element.SVG("rect").
		Attr("x", num(row.Left)).
		Attr("y", num(row.Top+svgBarInset)).
		Attr("width", num(row.BarWidth)).
		Attr("height", num(height)).
		Attr("fill", row.Color)
	if row.Tooltip != "" {
		bar.Append(element.SVG("title").SetText(row.Tooltip))
	}
	g.Append(bar)

	if row.RelaxedWidth > 0 {
		g.Append(element.SVG("rect").
			Attr("class", ClassRelaxedBar).
			Attr("x", num(row.Left+row.BarWidth)).
			Attr("y", num(row.Top+svgBarInset)).
			Attr("width", num(row.RelaxedWidth)).
			Attr("height", num(height)).
			Attr("fill", svgRelaxedFill).
			Attr("stroke", row.Color).
			Attr("stroke-dasharray", "3,2"))
	}
	return g
}

func svgHelpful(layout timeline.Layout) *element.Element {
	marker := layout.Helpful
	g := element.SVG("g").Attr("class", ClassHelpfulMarker)

	g.Append(element.SVG("line").
		Attr("x1", num(marker.Left)).
		Attr("y1", "0").
		Attr("x2", num(marker.Left)).
		Attr("y2", num(layout.Height)).
		Attr("stroke", svgMarkerColor).
		Attr("stroke-dasharray", "2,2"))

	x := marker.Left + 4
	for _, item := range marker.Items {
		g.Append(svgText(x, textBaseline(marker.Top, layout.RowHeight), item.Label).
			Attr("class", ClassHelpfulAction))
		x += estimateTextWidth(item.Label) + svgLabelPadding
	}
	return g
}

func svgText(x, y float64, text string) *element.Element {
	return element.SVG("text").
		Attr("x", num(x)).
		Attr("y", num(y)).
		SetText(text)
}

func textBaseline(top, rowHeight float64) float64 {
	return top + rowHeight*0.7
}

func svgLabelWidth(layout timeline.Layout) float64 {
	widest := 0.0
	if layout.Helpful != nil {
		widest = estimateTextWidth(helpfulActionsHeader)
	}
	for _, row := range layout.Rows {
		widest = max(widest, estimateTextWidth(row.Label))
	}
	return widest + svgLabelPadding
}

// estimateTextWidth assumes an average glyph is 0.6 of the font size wide
func estimateTextWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * svgFontSize * 0.6
}
