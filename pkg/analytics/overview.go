package analytics

import (
	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

type FleetOverview struct {
	FleetProgressPercent       int `json:"fleet_progress_percent"`
	AverageTripProgressPercent int `json:"average_trip_progress_percent"`

	ActiveVehicles int `json:"active_vehicles"`
	TotalTrips     int `json:"total_trips"`
	TotalEvents    int `json:"total_events"`
	Alerts         int `json:"alerts"`

	GlobalIsPlaying       bool `json:"global_is_playing"`
	GlobalSpeedMultiplier int  `json:"global_speed_multiplier"`
}

// GetFleetOverview bundles the headline fleet stats into one view. Everything
// is O(number of trips) over the snapshot - no event history is scanned.
func GetFleetOverview(snapshot playback.Snapshot) FleetOverview {
	activeVehicles := 0
	totalEvents := 0

	for _, trip := range snapshot.Trips {
		totalEvents += len(trip.Events)

		if state, exists := snapshot.States[trip.TripID]; exists && state.IsPlaying {
			activeVehicles++
		}
	}

	return FleetOverview{
		FleetProgressPercent:       GetFleetProgress(snapshot),
		AverageTripProgressPercent: GetAverageTripProgress(snapshot),
		ActiveVehicles:             activeVehicles,
		TotalTrips:                 len(snapshot.Trips),
		TotalEvents:                totalEvents,
		Alerts:                     GetAlertCount(snapshot),
		GlobalIsPlaying:            snapshot.Global.IsPlaying,
		GlobalSpeedMultiplier:      snapshot.Global.SpeedMultiplier,
	}
}
