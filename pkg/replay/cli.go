package replay

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fleetreplay/fleetreplay/pkg/api"
	"github.com/fleetreplay/fleetreplay/pkg/dataloader"
	"github.com/fleetreplay/fleetreplay/pkg/eventstore"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Fleet telemetry replay",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "load a trip dataset and serve the replay API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "dataset",
						Value: "data/datasets.yaml",
						Usage: "path to the trip dataset manifest",
					},
				},
				Action: func(c *cli.Context) error {
					trips, err := dataloader.LoadTrips(c.String("dataset"))
					if err != nil {
						return err
					}

					store := playback.NewStore(eventstore.NewStore())
					if err := store.LoadTrips(trips); err != nil {
						return err
					}

					scheduler := playback.NewScheduler(store)

					ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
					defer stop()

					go scheduler.Run(ctx)

					webApp := api.SetupApp(store)

					go func() {
						<-ctx.Done()
						log.Info().Msg("Shutting down replay server")

						if err := webApp.Shutdown(); err != nil {
							log.Error().Err(err).Msg("Failed to shut down web server")
						}
					}()

					if err := webApp.Listen(c.String("listen")); err != nil {
						return err
					}

					// Make sure no tick source outlives the server
					scheduler.Stop()

					return nil
				},
			},
		},
	}
}
