package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMapPane rasterizes the cached field boundaries onto a cell
// grid. Each cell resolves to the first feature containing its center
// coordinate; the geocode marker draws on top of everything.
func (m Model) renderMapPane() string {
	w, h := m.mapSize()
	cols, rows := w-2, h-2

	markerCol, markerRow := -1, -1
	if m.hasMarker {
		if c, r, ok := m.view.coordToCell(m.markerLat, m.markerLon, cols, rows); ok {
			markerCol, markerRow = c, r
		}
	}

	lines := make([]string, 0, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			if x == markerCol && y == markerRow {
				b.WriteString(markerStyle.Render("✚"))
				continue
			}
			lat, lon := m.view.cellToCoord(x, y, cols, rows)
			b.WriteString(m.renderMapCell(lat, lon))
		}
		lines = append(lines, b.String())
	}

	return mapPaneStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderMapCell(lat, lon float64) string {
	for i := range m.features {
		if m.features[i].Contains(lat, lon) {
			color := cropColor(m.features[i].Props.CropType)
			return lipgloss.NewStyle().Foreground(color).Render("█")
		}
	}
	return emptyCellStyle.Render("·")
}
