package eventstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/rs/zerolog/log"
)

var (
	ErrTripNotFound = errors.New("trip not found")
	ErrEmptyTrip    = errors.New("trip has no events")
)

// Store holds the immutable trip collection. Load only installs into an
// empty store, so a duplicate initialisation is a harmless no-op; after a
// successful Load every read is lock-free on the trip data itself.
type Store struct {
	mutex   sync.RWMutex
	trips   map[string]*fleet.Trip
	ordered []string
}

func NewStore() *Store {
	return &Store{
		trips: map[string]*fleet.Trip{},
	}
}

// Load installs the supplied trips, preserving their order. A trip with an
// empty event sequence is rejected up front - letting one in would make the
// replay cursor unboundable. Calling Load on an already populated store does
// nothing.
func (s *Store) Load(trips []*fleet.Trip) error {
	for _, trip := range trips {
		if len(trip.Events) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyTrip, trip.TripID)
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.trips) > 0 {
		log.Debug().Msg("Event store already populated, skipping load")
		return nil
	}

	for _, trip := range trips {
		s.trips[trip.TripID] = trip
		s.ordered = append(s.ordered, trip.TripID)
	}

	log.Info().Int("trips", len(trips)).Msg("Loaded trips into event store")

	return nil
}

func (s *Store) Get(tripID string) (*fleet.Trip, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	trip, exists := s.trips[tripID]
	if !exists {
		return nil, ErrTripNotFound
	}

	return trip, nil
}

// All returns the trips in load order.
func (s *Store) All() []*fleet.Trip {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	trips := make([]*fleet.Trip, 0, len(s.ordered))
	for _, tripID := range s.ordered {
		trips = append(trips, s.trips[tripID])
	}

	return trips
}

func (s *Store) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.trips)
}

func (s *Store) TotalEvents() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, trip := range s.trips {
		total += len(trip.Events)
	}

	return total
}
