package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/fleetreplay/fleetreplay/pkg/eventstore"
	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

type eventSpec struct {
	speedKMH  *float64
	quality   fleet.SignalQuality
	overspeed bool
}

func speed(kmh float64) *float64 {
	return &kmh
}

func makeTrip(t *testing.T, tripID string, specs []eventSpec) *fleet.Trip {
	t.Helper()

	events := make([]fleet.FleetEvent, 0, len(specs))
	for i, spec := range specs {
		event := fleet.FleetEvent{
			EventID:       fmt.Sprintf("%s_evt_%03d", tripID, i),
			EventType:     "location_update",
			Timestamp:     time.Date(2025, 11, 3, 8, i, 0, 0, time.UTC),
			VehicleID:     "VH_TEST",
			TripID:        tripID,
			Location:      fleet.Location{Latitude: 40, Longitude: -74},
			SignalQuality: spec.quality,
			Overspeed:     spec.overspeed,
		}
		if spec.speedKMH != nil {
			event.Movement = &fleet.Movement{SpeedKMH: spec.speedKMH}
		}

		events = append(events, event)
	}

	return &fleet.Trip{
		TripID:    tripID,
		VehicleID: "VH_TEST",
		Name:      "Test " + tripID,
		Events:    events,
	}
}

func plainTrip(t *testing.T, tripID string, eventCount int) *fleet.Trip {
	t.Helper()

	specs := make([]eventSpec, eventCount)
	return makeTrip(t, tripID, specs)
}

func makeSnapshot(t *testing.T, trips []*fleet.Trip, advances map[string]int) playback.Snapshot {
	t.Helper()

	store := playback.NewStore(eventstore.NewStore())
	if err := store.LoadTrips(trips); err != nil {
		t.Fatalf("LoadTrips failed: %v", err)
	}

	for tripID, count := range advances {
		for i := 0; i < count; i++ {
			store.IncrementIndex(tripID)
		}
	}

	return store.Snapshot()
}

func TestCompletionHistogram(t *testing.T) {
	// 20-event trips advanced to 10%, 55% and 95%
	snapshot := makeSnapshot(t,
		[]*fleet.Trip{
			plainTrip(t, "trip_low", 20),
			plainTrip(t, "trip_mid", 20),
			plainTrip(t, "trip_high", 20),
		},
		map[string]int{"trip_low": 2, "trip_mid": 11, "trip_high": 19},
	)

	buckets := GetCompletionHistogram(snapshot)

	expected := map[string]int{
		"0-20%":   1,
		"20-40%":  0,
		"40-60%":  1,
		"60-80%":  0,
		"80-100%": 1,
	}
	for bucketRange, count := range expected {
		if buckets[bucketRange] != count {
			t.Errorf("bucket %s: expected %d, got %d", bucketRange, count, buckets[bucketRange])
		}
	}
}

func TestCompletionHistogramEmptyFleet(t *testing.T) {
	buckets := GetCompletionHistogram(playback.Snapshot{})

	for _, bucketRange := range CompletionBucketRanges {
		if buckets[bucketRange] != 0 {
			t.Errorf("bucket %s: expected 0 for empty fleet, got %d", bucketRange, buckets[bucketRange])
		}
	}
}

func TestSpeedSnapshot(t *testing.T) {
	snapshot := makeSnapshot(t,
		[]*fleet.Trip{
			makeTrip(t, "trip_fast", []eventSpec{{speedKMH: speed(112.4), overspeed: true}}),
			makeTrip(t, "trip_silent", []eventSpec{{}}),
		},
		nil,
	)

	speeds := GetSpeedSnapshot(snapshot)
	if len(speeds) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(speeds))
	}

	if speeds[0].SpeedKMH != 112.4 || !speeds[0].Overspeed {
		t.Errorf("trip_fast: got %+v", speeds[0])
	}

	// No movement sample reports 0, not a dropped entry
	if speeds[1].SpeedKMH != 0 || speeds[1].Overspeed {
		t.Errorf("trip_silent: got %+v", speeds[1])
	}
}

func TestSignalHistogramDefaultsToUnknown(t *testing.T) {
	snapshot := makeSnapshot(t,
		[]*fleet.Trip{
			makeTrip(t, "trip_good", []eventSpec{{quality: fleet.SignalQualityGood}}),
			makeTrip(t, "trip_nosignal", []eventSpec{{}}),
		},
		nil,
	)

	histogram := GetSignalHistogram(snapshot)

	if histogram[fleet.SignalQualityGood] != 1 {
		t.Errorf("expected 1 good, got %d", histogram[fleet.SignalQualityGood])
	}
	if histogram[fleet.SignalQualityUnknown] != 1 {
		t.Errorf("expected missing quality counted as unknown, got %d", histogram[fleet.SignalQualityUnknown])
	}
}

func TestFleetProgress(t *testing.T) {
	snapshot := makeSnapshot(t,
		[]*fleet.Trip{
			plainTrip(t, "trip_a", 10),
			plainTrip(t, "trip_b", 5),
		},
		map[string]int{"trip_a": 5, "trip_b": 4},
	)

	// (5+4) / (10+5) = 60%
	if progress := GetFleetProgress(snapshot); progress != 60 {
		t.Errorf("expected 60, got %d", progress)
	}
}

func TestFleetProgressEmptyFleet(t *testing.T) {
	if progress := GetFleetProgress(playback.Snapshot{}); progress != 0 {
		t.Errorf("expected 0 for empty fleet, got %d", progress)
	}
}

func TestAlertCountSumsConditionsIndependently(t *testing.T) {
	snapshot := makeSnapshot(t,
		[]*fleet.Trip{
			// Overspeed and poor signal on the same event count twice
			makeTrip(t, "trip_double", []eventSpec{{quality: fleet.SignalQualityPoor, overspeed: true}}),
			makeTrip(t, "trip_fair", []eventSpec{{quality: fleet.SignalQualityFair}}),
			makeTrip(t, "trip_clean", []eventSpec{{quality: fleet.SignalQualityExcellent}}),
		},
		nil,
	)

	if alerts := GetAlertCount(snapshot); alerts != 3 {
		t.Errorf("expected 3 alerts, got %d", alerts)
	}
}

func TestFleetOverview(t *testing.T) {
	store := playback.NewStore(eventstore.NewStore())
	err := store.LoadTrips([]*fleet.Trip{
		plainTrip(t, "trip_a", 10),
		plainTrip(t, "trip_b", 5),
	})
	if err != nil {
		t.Fatalf("LoadTrips failed: %v", err)
	}

	store.TogglePlayAll()
	store.SetSpeedAll(4)
	store.IncrementIndex("trip_a")

	overview := GetFleetOverview(store.Snapshot())

	if overview.TotalTrips != 2 {
		t.Errorf("expected 2 trips, got %d", overview.TotalTrips)
	}
	if overview.TotalEvents != 15 {
		t.Errorf("expected 15 events, got %d", overview.TotalEvents)
	}
	if overview.ActiveVehicles != 2 {
		t.Errorf("expected 2 active vehicles, got %d", overview.ActiveVehicles)
	}
	if !overview.GlobalIsPlaying || overview.GlobalSpeedMultiplier != 4 {
		t.Errorf("global state not reflected: %+v", overview)
	}
	// (1+0)/15 ~= 7%
	if overview.FleetProgressPercent != 7 {
		t.Errorf("expected fleet progress 7, got %d", overview.FleetProgressPercent)
	}
	// (10% + 0%) / 2 = 5%
	if overview.AverageTripProgressPercent != 5 {
		t.Errorf("expected average progress 5, got %d", overview.AverageTripProgressPercent)
	}
}
