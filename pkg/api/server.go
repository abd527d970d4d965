package api

import (
	"github.com/fleetreplay/fleetreplay/pkg/api/routes"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
	"github.com/gofiber/fiber/v2"
)

// SetupApp builds the web application serving the query and command surface
// over the playback store. The caller owns listening and shutdown.
func SetupApp(store *playback.Store) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.TripsRouter(group.Group("/trips"), store)
	routes.PlaybackRouter(group.Group("/playback"), store)
	routes.AnalyticsRouter(group.Group("/analytics"), store)

	return webApp
}
