package fleet

import "math"

type Location struct {
	Latitude  float64 `json:"lat" groups:"basic,detailed" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"lng" groups:"basic,detailed" validate:"gte=-180,lte=180"`

	AccuracyMeters float64 `json:"accuracy_meters,omitempty" groups:"detailed"`
	AltitudeMeters float64 `json:"altitude_meters,omitempty" groups:"detailed"`
}

// DistanceTo returns the great-circle distance in kilometres between two
// recorded positions. Only used for diagnostics - replay itself never
// computes movement.
func (l *Location) DistanceTo(other Location) float64 {
	const earthRadiusKM = 6371

	latA := l.Latitude * math.Pi / 180
	latB := other.Latitude * math.Pi / 180
	deltaLat := (other.Latitude - l.Latitude) * math.Pi / 180
	deltaLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
