// Package geo provides coordinate parsing and comparison helpers for
// tourism map coordinates (WGS84 lat/lng).
//
// Co-located events are grouped by coordinate equality within Epsilon rather
// than exact float comparison: coordinates round-trip through string-encoded
// document fields, and exact equality produces false negatives.
package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Epsilon is the coordinate-equality tolerance in degrees (~1.1m at the
// equator).
const Epsilon = 1e-5

// ErrInvalidCoordinates is returned when coordinates cannot be parsed or
// fall outside the valid WGS84 range.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// ParseLatLng parses string-encoded latitude/longitude document fields.
func ParseLatLng(latStr, lngStr string) (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	if !Valid(lat, lng) {
		return 0, 0, ErrInvalidCoordinates
	}
	return lat, lng, nil
}

// Valid reports whether the pair is a plausible WGS84 coordinate.
func Valid(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Equal reports coordinate equality within Epsilon on both axes.
func Equal(lat1, lng1, lat2, lng2 float64) bool {
	return math.Abs(lat1-lat2) <= Epsilon && math.Abs(lng1-lng2) <= Epsilon
}

// Point3857 projects a WGS84 lat/lng into an EPSG:3857 point. Web-mercator
// meters keep distance math linear for the small extents we compare.
func Point3857(lat, lng float64) geom.Point {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(lng, lat, 0)
	return geom.NewPoint(geom.Coordinates{
		XY: geom.XY{X: x, Y: y},
	})
}

// DistanceMeters returns the approximate planar distance between two WGS84
// coordinates in EPSG:3857 meters. Used only for grouping diagnostics; route
// distances are the routing vendor's concern.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	p1, ok1 := Point3857(lat1, lng1).Coordinates()
	p2, ok2 := Point3857(lat2, lng2).Coordinates()
	if !ok1 || !ok2 {
		return math.NaN()
	}
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}
