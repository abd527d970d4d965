package playback

import (
	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// TripPlaybackState is the externally visible copy of one trip's replay
// state. AtEnd is derived, never stored - the authoritative state keeps no
// separate completion flag.
type TripPlaybackState struct {
	TripID          string `groups:"basic,detailed"`
	CurrentIndex    int    `groups:"basic,detailed"`
	EventCount      int    `groups:"basic,detailed"`
	IsPlaying       bool   `groups:"basic,detailed"`
	SpeedMultiplier int    `groups:"basic,detailed"`
	AtEnd           bool   `groups:"basic,detailed"`

	ProgressPercent float64 `groups:"basic,detailed"`

	CurrentEvent fleet.FleetEvent `groups:"detailed"`
}

// GlobalPlaybackState mirrors the broadcast play/speed controls.
type GlobalPlaybackState struct {
	IsPlaying       bool   `groups:"basic,detailed"`
	SpeedMultiplier int    `groups:"basic,detailed"`
	ActiveTripID    string `groups:"basic,detailed"`
}

// Snapshot is a point-in-time copy of the fleet's replay position, safe to
// hand to the aggregator or the API while ticks keep arriving. Trips are the
// shared immutable originals; states are copies.
type Snapshot struct {
	Trips  []*fleet.Trip
	States map[string]TripPlaybackState
	Global GlobalPlaybackState
}

func (s *Store) snapshotTripState(trip *fleet.Trip, state *tripState) TripPlaybackState {
	snapshot := TripPlaybackState{
		TripID:          trip.TripID,
		CurrentIndex:    state.currentIndex,
		EventCount:      len(trip.Events),
		IsPlaying:       state.isPlaying,
		SpeedMultiplier: state.speedMultiplier,
		AtEnd:           state.currentIndex == trip.LastIndex(),
		ProgressPercent: float64(state.currentIndex) / float64(len(trip.Events)) * 100,
	}

	err := copier.CopyWithOption(&snapshot.CurrentEvent, state.cachedEvent, copier.Option{DeepCopy: true})
	if err != nil {
		log.Error().Err(err).Str("trip", trip.TripID).Msg("Failed to copy current event into snapshot")
		snapshot.CurrentEvent = state.cachedEvent
	}

	return snapshot
}

// TripState returns a copy of one trip's playback state.
func (s *Store) TripState(tripID string) (TripPlaybackState, bool) {
	trip, err := s.events.Get(tripID)
	if err != nil {
		return TripPlaybackState{}, false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	state, exists := s.states[tripID]
	if !exists {
		return TripPlaybackState{}, false
	}

	return s.snapshotTripState(trip, state), true
}

func (s *Store) GlobalState() GlobalPlaybackState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return GlobalPlaybackState{
		IsPlaying:       s.globalIsPlaying,
		SpeedMultiplier: s.globalSpeedMultiplier,
		ActiveTripID:    s.activeTripID,
	}
}

// Snapshot copies the whole fleet's replay state in one critical section.
func (s *Store) Snapshot() Snapshot {
	trips := s.events.All()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	snapshot := Snapshot{
		Trips:  trips,
		States: make(map[string]TripPlaybackState, len(s.states)),
		Global: GlobalPlaybackState{
			IsPlaying:       s.globalIsPlaying,
			SpeedMultiplier: s.globalSpeedMultiplier,
			ActiveTripID:    s.activeTripID,
		},
	}

	for _, trip := range trips {
		state, exists := s.states[trip.TripID]
		if !exists {
			continue
		}

		snapshot.States[trip.TripID] = s.snapshotTripState(trip, state)
	}

	return snapshot
}
