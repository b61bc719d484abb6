package geofence

import (
	"math"
)

const earthRadiusMeters = 6371000.0

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Result reports whether the device is inside the fence; DistanceMeters is
// always populated when an office is configured, for diagnostics and audit.
type Result struct {
	Pass           bool
	DistanceMeters float64
	Evaluated      bool
}

// Evaluate measures the great-circle distance between the device and the
// office. A nil office means no geofence is configured and the gate passes.
func Evaluate(device Coordinate, office *Coordinate, radiusMeters float64) Result {
	if office == nil {
		return Result{Pass: true}
	}
	distance := HaversineDistance(device, *office)
	return Result{
		Pass:           distance <= radiusMeters,
		DistanceMeters: distance,
		Evaluated:      true,
	}
}

// HaversineDistance returns the great-circle distance between two coordinates
// in meters.
func HaversineDistance(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
