package analytics

import (
	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

type TripSpeed struct {
	Name      string  `json:"name"`
	SpeedKMH  float64 `json:"speed_kmh"`
	Overspeed bool    `json:"overspeed"`
}

// GetSpeedSnapshot reports each trip's speed at its current replay event. A
// trip whose current event carries no movement sample reports 0; trips
// without playback state are dropped, not null-filled.
func GetSpeedSnapshot(snapshot playback.Snapshot) []TripSpeed {
	speeds := []TripSpeed{}

	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists {
			continue
		}

		speeds = append(speeds, TripSpeed{
			Name:      trip.Name,
			SpeedKMH:  state.CurrentEvent.SpeedKMH(),
			Overspeed: state.CurrentEvent.Overspeed,
		})
	}

	return speeds
}
