package routes

import (
	"errors"

	"github.com/fleetreplay/fleetreplay/pkg/playback"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

type playbackRoutes struct {
	store *playback.Store
}

func PlaybackRouter(router fiber.Router, store *playback.Store) {
	routes := &playbackRoutes{store: store}

	router.Get("/", routes.getPlayback)
	router.Post("/toggle", routes.togglePlayAll)
	router.Post("/speed", routes.setSpeed)
	router.Post("/speed/cycle", routes.cycleSpeed)
	router.Post("/reset", routes.resetAll)
	router.Post("/active_trip/:identifier", routes.setActiveTrip)
}

func (r *playbackRoutes) getPlayback(c *fiber.Ctx) error {
	snapshot := r.store.Snapshot()

	states := []interface{}{}
	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists {
			continue
		}

		stateReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, &state)
		if err != nil {
			continue
		}

		states = append(states, stateReduced)
	}

	return c.JSON(fiber.Map{
		"global": snapshot.Global,
		"trips":  states,
	})
}

func (r *playbackRoutes) togglePlayAll(c *fiber.Ctx) error {
	isPlaying := r.store.TogglePlayAll()

	return c.JSON(fiber.Map{
		"is_playing": isPlaying,
	})
}

type setSpeedRequest struct {
	Multiplier int `json:"multiplier"`
}

func (r *playbackRoutes) setSpeed(c *fiber.Ctx) error {
	var request setSpeedRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must contain a speed multiplier",
		})
	}

	if err := r.store.SetSpeedAll(request.Multiplier); err != nil {
		if errors.Is(err, playback.ErrInvalidSpeed) {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error":         "Speed multiplier must be one of the allowed steps",
				"allowed_steps": playback.SpeedSteps,
			})
		}

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry something has gone wrong",
		})
	}

	return c.JSON(fiber.Map{
		"speed_multiplier": request.Multiplier,
	})
}

func (r *playbackRoutes) cycleSpeed(c *fiber.Ctx) error {
	multiplier := r.store.CycleSpeed()

	return c.JSON(fiber.Map{
		"speed_multiplier": multiplier,
	})
}

func (r *playbackRoutes) resetAll(c *fiber.Ctx) error {
	r.store.ResetAll()

	return c.JSON(fiber.Map{
		"reset": true,
	})
}

// Focus is advisory so an unknown identifier still returns 200 - the body
// reports whether the trip was recognised.
func (r *playbackRoutes) setActiveTrip(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	_, known := r.store.TripState(identifier)
	r.store.SetActiveTrip(identifier)

	return c.JSON(fiber.Map{
		"active_trip": r.store.ActiveTrip(),
		"known":       known,
	})
}
