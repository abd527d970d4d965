package routes

import (
	"github.com/fleetreplay/fleetreplay/pkg/analytics"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
	"github.com/gofiber/fiber/v2"
)

type analyticsRoutes struct {
	store *playback.Store
}

func AnalyticsRouter(router fiber.Router, store *playback.Store) {
	routes := &analyticsRoutes{store: store}

	router.Get("/completion", routes.getCompletion)
	router.Get("/speeds", routes.getSpeeds)
	router.Get("/signal", routes.getSignal)
	router.Get("/overview", routes.getOverview)
}

func (r *analyticsRoutes) getCompletion(c *fiber.Ctx) error {
	snapshot := r.store.Snapshot()

	return c.JSON(fiber.Map{
		"ranges":  analytics.CompletionBucketRanges,
		"buckets": analytics.GetCompletionHistogram(snapshot),
	})
}

func (r *analyticsRoutes) getSpeeds(c *fiber.Ctx) error {
	return c.JSON(analytics.GetSpeedSnapshot(r.store.Snapshot()))
}

func (r *analyticsRoutes) getSignal(c *fiber.Ctx) error {
	return c.JSON(analytics.GetSignalHistogram(r.store.Snapshot()))
}

func (r *analyticsRoutes) getOverview(c *fiber.Ctx) error {
	return c.JSON(analytics.GetFleetOverview(r.store.Snapshot()))
}
