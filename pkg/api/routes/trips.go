package routes

import (
	"github.com/fleetreplay/fleetreplay/pkg/playback"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

type tripRoutes struct {
	store *playback.Store
}

func TripsRouter(router fiber.Router, store *playback.Store) {
	routes := &tripRoutes{store: store}

	router.Get("/", routes.listTrips)
	router.Get("/:identifier", routes.getTrip)
	router.Get("/:identifier/current_event", routes.getTripCurrentEvent)
	router.Get("/:identifier/playback", routes.getTripPlayback)
}

func (r *tripRoutes) listTrips(c *fiber.Ctx) error {
	snapshot := r.store.Snapshot()

	summaries := []fiber.Map{}
	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists {
			continue
		}

		summaries = append(summaries, fiber.Map{
			"trip_id":          trip.TripID,
			"vehicle_id":       trip.VehicleID,
			"name":             trip.Name,
			"event_count":      trip.EventCount(),
			"current_index":    state.CurrentIndex,
			"progress_percent": state.ProgressPercent,
			"is_playing":       state.IsPlaying,
			"speed_multiplier": state.SpeedMultiplier,
			"at_end":           state.AtEnd,
		})
	}

	return c.JSON(summaries)
}

func (r *tripRoutes) getTrip(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	trip, err := r.store.Trip(identifier)
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Trip matching Trip Identifier",
		})
	}

	groups := []string{"basic"}
	if c.Query("detailed") == "true" {
		groups = []string{"basic", "detailed"}
	}

	tripReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, trip)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry something has gone wrong",
		})
	}

	return c.JSON(tripReduced)
}

func (r *tripRoutes) getTripCurrentEvent(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	event := r.store.CurrentEvent(identifier)
	if event == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Trip matching Trip Identifier",
		})
	}

	return c.JSON(event)
}

func (r *tripRoutes) getTripPlayback(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	state, exists := r.store.TripState(identifier)
	if !exists {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Trip matching Trip Identifier",
		})
	}

	stateReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, state)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry something has gone wrong",
		})
	}

	return c.JSON(stateReduced)
}
