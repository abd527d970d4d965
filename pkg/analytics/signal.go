package analytics

import (
	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

// GetSignalHistogram counts signal quality across every trip's current event.
// An event without a quality reading lands in the "unknown" category.
func GetSignalHistogram(snapshot playback.Snapshot) map[fleet.SignalQuality]int {
	histogram := map[fleet.SignalQuality]int{}

	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists {
			continue
		}

		histogram[state.CurrentEvent.SignalQualityOrUnknown()]++
	}

	return histogram
}
