package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	// EarthRadiusMeters is the mean Earth radius used for great-circle distance.
	EarthRadiusMeters = 6_371_000.0
	// NearMaxDistanceMeters bounds proximity search.
	NearMaxDistanceMeters = 100_000.0
	// NearLimit caps the number of proximity results.
	NearLimit = 10
)

// ParseGeoPoint parses raw longitude/latitude strings. It fails with
// ErrInvalidCoordinates for non-numeric, non-finite or out-of-range values.
func ParseGeoPoint(rawLng, rawLat string) (GeoPoint, error) {
	lng, err := strconv.ParseFloat(strings.TrimSpace(rawLng), 64)
	if err != nil {
		return GeoPoint{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil {
		return GeoPoint{}, ErrInvalidCoordinates
	}
	p := GeoPoint{Lng: lng, Lat: lat}
	if !p.Valid() {
		return GeoPoint{}, ErrInvalidCoordinates
	}
	return p, nil
}

// Valid checks finiteness, latitude in [-90,90] and longitude in [-180,180].
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lng) || math.IsNaN(p.Lat) || math.IsInf(p.Lng, 0) || math.IsInf(p.Lat, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceMeters returns the haversine great-circle distance between p and q.
func (p GeoPoint) DistanceMeters(q GeoPoint) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := q.Lat * math.Pi / 180
	dLat := (q.Lat - p.Lat) * math.Pi / 180
	dLng := (q.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}
