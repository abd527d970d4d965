package fleet

// Trip is one vehicle's recorded journey. Constructed once by the dataset
// loader and never mutated afterwards - every other component reads it.
type Trip struct {
	TripID    string `json:"trip_id" groups:"basic,detailed" validate:"required"`
	VehicleID string `json:"vehicle_id" groups:"basic,detailed" validate:"required"`
	Name      string `json:"name" groups:"basic,detailed" validate:"required"`

	Events []FleetEvent `json:"events" groups:"detailed" validate:"required,min=1,dive"`
}

func (t *Trip) EventCount() int {
	return len(t.Events)
}

// LastIndex is the terminal replay cursor position for this trip.
func (t *Trip) LastIndex() int {
	return len(t.Events) - 1
}
