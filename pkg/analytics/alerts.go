package analytics

import (
	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

// GetAlertCount sums alert conditions over every trip's current event. An
// overspeed flag contributes one and a poor or fair signal contributes
// another, independently - a single event can add 0, 1 or 2.
func GetAlertCount(snapshot playback.Snapshot) int {
	alerts := 0

	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists {
			continue
		}

		if state.CurrentEvent.Overspeed {
			alerts++
		}

		quality := state.CurrentEvent.SignalQuality
		if quality == fleet.SignalQualityPoor || quality == fleet.SignalQualityFair {
			alerts++
		}
	}

	return alerts
}
