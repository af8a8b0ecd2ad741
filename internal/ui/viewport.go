package ui

// mapViewport is the geographic window the map pane renders. Spans are
// in degrees; longitude span runs wider than latitude span because a
// terminal cell is roughly twice as tall as it is wide.
type mapViewport struct {
	centerLat float64
	centerLon float64
	spanLat   float64
	spanLon   float64
}

const (
	minSpanLat = 0.002
	maxSpanLat = 2.0
)

// defaultViewport opens over central Iowa cropland, dense enough in
// CSB coverage that a first render shows fields immediately.
func defaultViewport() mapViewport {
	return mapViewport{
		centerLat: 42.03,
		centerLon: -93.62,
		spanLat:   0.04,
		spanLon:   0.08,
	}
}

// bounds returns the viewport edges as min/max lat and lon.
func (v mapViewport) bounds() (minLat, maxLat, minLon, maxLon float64) {
	return v.centerLat - v.spanLat/2, v.centerLat + v.spanLat/2,
		v.centerLon - v.spanLon/2, v.centerLon + v.spanLon/2
}

// cellToCoord maps a grid cell to the coordinate at its center.
// Row 0 is the top of the pane, so latitude decreases with row.
func (v mapViewport) cellToCoord(col, row, cols, rows int) (lat, lon float64) {
	_, maxLat, minLon, _ := v.bounds()
	lat = maxLat - (float64(row)+0.5)/float64(rows)*v.spanLat
	lon = minLon + (float64(col)+0.5)/float64(cols)*v.spanLon
	return lat, lon
}

// coordToCell is the inverse mapping. ok is false when the coordinate
// falls outside the viewport.
func (v mapViewport) coordToCell(lat, lon float64, cols, rows int) (col, row int, ok bool) {
	minLat, maxLat, minLon, maxLon := v.bounds()
	if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
		return 0, 0, false
	}
	col = int((lon - minLon) / v.spanLon * float64(cols))
	row = int((maxLat - lat) / v.spanLat * float64(rows))
	if col >= cols {
		col = cols - 1
	}
	if row >= rows {
		row = rows - 1
	}
	return col, row, true
}

// pan shifts the center by the given fraction of the current span.
func (v *mapViewport) pan(latFrac, lonFrac float64) {
	v.centerLat += latFrac * v.spanLat
	v.centerLon += lonFrac * v.spanLon
}

// zoom scales both spans, clamped so the viewport can neither collapse
// to a point nor blow out past a county-scale view.
func (v *mapViewport) zoom(factor float64) {
	spanLat := v.spanLat * factor
	if spanLat < minSpanLat {
		spanLat = minSpanLat
	}
	if spanLat > maxSpanLat {
		spanLat = maxSpanLat
	}
	v.spanLon *= spanLat / v.spanLat
	v.spanLat = spanLat
}

// recenter moves the viewport to a new center without changing zoom.
func (v *mapViewport) recenter(lat, lon float64) {
	v.centerLat = lat
	v.centerLon = lon
}
