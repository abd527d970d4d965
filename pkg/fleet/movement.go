package fleet

// Movement is optional on an event - a nil Movement (or nil field) means the
// sample didn't report it, which is "unknown" rather than zero.
type Movement struct {
	SpeedKMH       *float64 `json:"speed_kmh,omitempty" groups:"basic,detailed" validate:"omitempty,gte=0"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty" groups:"detailed" validate:"omitempty,gte=0,lt=360"`
	Moving         *bool    `json:"moving,omitempty" groups:"detailed"`
}
