package fleet

import "time"

type SignalQuality string

const (
	SignalQualityExcellent SignalQuality = "excellent"
	SignalQualityGood      SignalQuality = "good"
	SignalQualityFair      SignalQuality = "fair"
	SignalQualityPoor      SignalQuality = "poor"
	SignalQualityUnknown   SignalQuality = "unknown"
)

// FleetEvent is a single telemetry sample within a Trip. Events are immutable
// once loaded and keep the order the recorder supplied them in.
type FleetEvent struct {
	EventID   string    `json:"event_id" groups:"basic,detailed" validate:"required"`
	EventType string    `json:"event_type" groups:"detailed"`
	Timestamp time.Time `json:"timestamp" groups:"basic,detailed" validate:"required"`

	VehicleID string `json:"vehicle_id" groups:"detailed" validate:"required"`
	TripID    string `json:"trip_id" groups:"detailed" validate:"required"`
	DeviceID  string `json:"device_id,omitempty" groups:"detailed"`

	Location Location  `json:"location" groups:"basic,detailed"`
	Movement *Movement `json:"movement,omitempty" groups:"basic,detailed"`

	DistanceTravelledKM *float64      `json:"distance_travelled_km,omitempty" groups:"detailed"`
	SignalQuality       SignalQuality `json:"signal_quality,omitempty" groups:"basic,detailed" validate:"omitempty,oneof=excellent good fair poor unknown"`
	Overspeed           bool          `json:"overspeed,omitempty" groups:"basic,detailed"`
}

// SignalQualityOrUnknown collapses an absent quality into the literal
// "unknown" category.
func (e *FleetEvent) SignalQualityOrUnknown() SignalQuality {
	if e.SignalQuality == "" {
		return SignalQualityUnknown
	}

	return e.SignalQuality
}

// SpeedKMH returns the reported speed, or 0 when movement wasn't sampled.
func (e *FleetEvent) SpeedKMH() float64 {
	if e.Movement == nil || e.Movement.SpeedKMH == nil {
		return 0
	}

	return *e.Movement.SpeedKMH
}
