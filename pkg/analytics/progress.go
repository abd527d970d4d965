package analytics

import (
	"math"

	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

// GetFleetProgress is the fleet-wide completion percentage: consumed events
// over total events, rounded to the nearest integer. Zero when there are no
// events at all - guarded, never computed through a division.
func GetFleetProgress(snapshot playback.Snapshot) int {
	totalEvents := 0
	currentEvents := 0

	for _, trip := range snapshot.Trips {
		totalEvents += len(trip.Events)

		if state, exists := snapshot.States[trip.TripID]; exists {
			currentEvents += state.CurrentIndex
		}
	}

	if totalEvents == 0 {
		return 0
	}

	return int(math.Round(float64(currentEvents) / float64(totalEvents) * 100))
}

// GetAverageTripProgress averages each trip's own completion percentage, so a
// short trip weighs the same as a long one. Zero when no trips are loaded.
func GetAverageTripProgress(snapshot playback.Snapshot) int {
	if len(snapshot.Trips) == 0 {
		return 0
	}

	sum := float64(0)
	for _, trip := range snapshot.Trips {
		if state, exists := snapshot.States[trip.TripID]; exists {
			sum += state.ProgressPercent
		}
	}

	return int(math.Round(sum / float64(len(snapshot.Trips))))
}
