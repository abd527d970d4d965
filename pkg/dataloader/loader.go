package dataloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slices"
)

type indexedTrip struct {
	index int
	trip  *fleet.Trip
}

// LoadTrips reads the manifest at path, loads every trip's event file
// concurrently and validates the result. Trip order follows the manifest -
// replay order within a trip follows the event file, which is authoritative
// and never re-sorted here.
func LoadTrips(path string) ([]*fleet.Trip, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(manifest); err != nil {
		return nil, fmt.Errorf("invalid dataset manifest %s: %w", path, err)
	}

	baseDirectory := filepath.Dir(path)

	p := pool.NewWithResults[indexedTrip]().WithErrors()
	p.WithMaxGoroutines(8)

	for index, manifestTrip := range manifest.Trips {
		p.Go(func() (indexedTrip, error) {
			trip, err := loadTrip(baseDirectory, manifestTrip)
			if err != nil {
				return indexedTrip{}, err
			}

			return indexedTrip{index: index, trip: trip}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	// Pool results arrive in completion order
	slices.SortFunc(results, func(a, b indexedTrip) int {
		return a.index - b.index
	})

	trips := make([]*fleet.Trip, 0, len(results))
	for _, result := range results {
		if err := validate.Struct(result.trip); err != nil {
			return nil, fmt.Errorf("invalid trip %s: %w", result.trip.TripID, err)
		}

		trips = append(trips, result.trip)
	}

	log.Info().
		Str("dataset", manifest.Identifier).
		Int("trips", len(trips)).
		Msg("Loaded trip dataset")

	return trips, nil
}

func loadTrip(baseDirectory string, manifestTrip ManifestTrip) (*fleet.Trip, error) {
	eventsPath := filepath.Join(baseDirectory, manifestTrip.EventsFile)

	eventsJSON, err := os.ReadFile(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("trip %s: %w", manifestTrip.TripID, err)
	}

	var events []fleet.FleetEvent
	if err := json.Unmarshal(eventsJSON, &events); err != nil {
		return nil, fmt.Errorf("trip %s: parsing %s: %w", manifestTrip.TripID, eventsPath, err)
	}

	// Event files sometimes omit the identifiers repeated in the manifest
	for index := range events {
		if events[index].TripID == "" {
			events[index].TripID = manifestTrip.TripID
		}
		if events[index].VehicleID == "" {
			events[index].VehicleID = manifestTrip.VehicleID
		}
	}

	return &fleet.Trip{
		TripID:    manifestTrip.TripID,
		VehicleID: manifestTrip.VehicleID,
		Name:      manifestTrip.Name,
		Events:    events,
	}, nil
}
