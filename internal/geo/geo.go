// Package geo holds the small amount of spherical math the map panel needs.
package geo

import (
	"math"

	"github.com/alexanderramin/pinlog/internal/domain"
)

const earthRadiusKm = 6371.0

// cellsPerTile is how many character columns one web-map tile spans.
const cellsPerTile = 16

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b domain.Coords) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Step returns the longitude span of one grid column at the given zoom.
// A row spans twice as much latitude since terminal cells are about twice
// as tall as they are wide.
func Step(zoom int) float64 {
	return 360 / (math.Pow(2, float64(zoom)) * cellsPerTile)
}

// Project maps point onto a w x h grid centered on center. ok is false when
// the point falls outside the grid.
func Project(center, point domain.Coords, zoom, w, h int) (col, row int, ok bool) {
	step := Step(zoom)
	col = w/2 + int(math.Round((point.Lng-center.Lng)/step))
	row = h/2 - int(math.Round((point.Lat-center.Lat)/(2*step)))
	ok = col >= 0 && col < w && row >= 0 && row < h
	return col, row, ok
}

// Offset moves c by the given number of grid cells, clamping latitude to
// the poles and wrapping longitude around the antimeridian.
func Offset(c domain.Coords, zoom, dRows, dCols int) domain.Coords {
	step := Step(zoom)
	lat := c.Lat + float64(dRows)*2*step
	lng := c.Lng + float64(dCols)*step

	lat = math.Max(-90, math.Min(90, lat))
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return domain.Coords{Lat: lat, Lng: lng}
}
