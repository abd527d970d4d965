package playback

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fleetreplay/fleetreplay/pkg/eventstore"
	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// SpeedSteps is the enumerated speed cycle. SetSpeedAll only accepts one of
// these; CycleSpeed walks them in order and wraps back to the start.
var SpeedSteps = []int{1, 2, 4, 8, 16}

var ErrInvalidSpeed = errors.New("speed multiplier is not an allowed step")

// tripState is the per-trip replay cursor. cachedEvent is denormalised state
// and must always equal the trip's event at currentIndex - setIndex is the
// only place both are written.
type tripState struct {
	currentIndex    int
	isPlaying       bool
	speedMultiplier int
	cachedEvent     fleet.FleetEvent
}

func (ts *tripState) setIndex(trip *fleet.Trip, index int) {
	ts.currentIndex = index
	ts.cachedEvent = trip.Events[index]
}

// Store is the single authoritative owner of every trip's replay cursor and
// play controls. Commands are serialised behind one mutex, so concurrent tick
// sources can issue them without interleaving read-modify-write halves.
type Store struct {
	mutex sync.Mutex

	events *eventstore.Store
	states map[string]*tripState

	activeTripID          string
	globalIsPlaying       bool
	globalSpeedMultiplier int

	changes chan struct{}
}

func NewStore(events *eventstore.Store) *Store {
	return &Store{
		events:                events,
		states:                map[string]*tripState{},
		globalSpeedMultiplier: 1,
		changes:               make(chan struct{}, 1),
	}
}

// Changes signals that the coarse play/speed signature may have moved and the
// scheduler should re-derive its tick sources. Index advancement never
// signals here.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) signalRewire() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// LoadTrips installs the trips into the event store and creates a fresh
// playback state for each: cursor at 0, paused, speed 1, first event cached.
// A second call with states already present is a no-op, which guards against
// duplicate initialisation replaying its side effects.
func (s *Store) LoadTrips(trips []*fleet.Trip) error {
	if err := s.events.Load(trips); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.states) > 0 {
		log.Debug().Msg("Playback states already initialised, skipping")
		return nil
	}

	for _, trip := range s.events.All() {
		state := &tripState{
			isPlaying:       false,
			speedMultiplier: 1,
		}
		state.setIndex(trip, 0)

		s.states[trip.TripID] = state
	}

	if all := s.events.All(); len(all) > 0 {
		s.activeTripID = all[0].TripID
	}

	s.signalRewire()

	return nil
}

// SetActiveTrip records which trip the presentation layer has focused. Focus
// is advisory metadata - an unknown id is ignored and playback is unaffected.
func (s *Store) SetActiveTrip(tripID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.states[tripID]; !exists {
		return
	}

	s.activeTripID = tripID
}

func (s *Store) ActiveTrip() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.activeTripID
}

// TogglePlayAll flips the global playing flag and broadcasts it into every
// trip's state. It is a broadcast, not a merge - a trip paused on its own is
// swept into the new global state.
func (s *Store) TogglePlayAll() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.globalIsPlaying = !s.globalIsPlaying

	for _, state := range s.states {
		state.isPlaying = s.globalIsPlaying
	}

	s.signalRewire()

	return s.globalIsPlaying
}

// SetSpeedAll broadcasts a speed multiplier to every trip. Only the
// enumerated steps are accepted.
func (s *Store) SetSpeedAll(multiplier int) error {
	if !slices.Contains(SpeedSteps, multiplier) {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, multiplier)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.globalSpeedMultiplier = multiplier

	for _, state := range s.states {
		state.speedMultiplier = multiplier
	}

	s.signalRewire()

	return nil
}

// CycleSpeed advances the global speed to the next step, wrapping 16 back to
// 1, and returns the new multiplier.
func (s *Store) CycleSpeed() int {
	s.mutex.Lock()
	current := s.globalSpeedMultiplier
	s.mutex.Unlock()

	next := SpeedSteps[0]
	if index := slices.Index(SpeedSteps, current); index >= 0 && index < len(SpeedSteps)-1 {
		next = SpeedSteps[index+1]
	}

	// next is always a valid step
	s.SetSpeedAll(next)

	return next
}

// IncrementIndex advances exactly one trip's cursor by one event. At the
// terminal index it is a no-op - the trip simply stops advancing. The cached
// event is updated in the same critical section as the cursor.
func (s *Store) IncrementIndex(tripID string) {
	trip, err := s.events.Get(tripID)
	if err != nil {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	state, exists := s.states[tripID]
	if !exists {
		return
	}

	if state.currentIndex >= trip.LastIndex() {
		return
	}

	state.setIndex(trip, state.currentIndex+1)
}

// ResetAll rewinds every trip to its first event and pauses playback. Global
// speed returns to 1 but per-trip speed values are deliberately left as they
// are - resuming keeps each trip's last broadcast speed.
func (s *Store) ResetAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, trip := range s.events.All() {
		state, exists := s.states[trip.TripID]
		if !exists {
			continue
		}

		state.isPlaying = false
		state.setIndex(trip, 0)
	}

	s.globalIsPlaying = false
	s.globalSpeedMultiplier = 1

	s.signalRewire()
}

// CurrentEvent returns the trip's event at the replay cursor, served from the
// denormalised cache. Returns nil for an unknown trip.
func (s *Store) CurrentEvent(tripID string) *fleet.FleetEvent {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	state, exists := s.states[tripID]
	if !exists {
		return nil
	}

	if state.cachedEvent.EventID != "" {
		event := state.cachedEvent
		return &event
	}

	// Defensive fallback, unreachable after a successful load
	trip, err := s.events.Get(tripID)
	if err != nil || state.currentIndex >= len(trip.Events) {
		return nil
	}

	event := trip.Events[state.currentIndex]
	return &event
}

// Trip exposes the read-only trip record backing a replay cursor.
func (s *Store) Trip(tripID string) (*fleet.Trip, error) {
	return s.events.Get(tripID)
}

// Signature is the coarse play/speed fingerprint of the whole fleet: one
// (trip, playing, speed) entry per trip in load order. The scheduler only
// rewires its tick sources when this changes, so index advancement never
// tears timers down.
func (s *Store) Signature() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var builder strings.Builder
	for _, trip := range s.events.All() {
		state, exists := s.states[trip.TripID]
		if !exists {
			continue
		}

		fmt.Fprintf(&builder, "%s:%t:%d,", trip.TripID, state.isPlaying, state.speedMultiplier)
	}

	return builder.String()
}
