package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/fleetreplay/fleetreplay/pkg/dataloader"
	"github.com/fleetreplay/fleetreplay/pkg/replay"

	_ "time/tzdata"
)

func main() {
	godotenv.Load()

	if os.Getenv("FLEETREPLAY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("FLEETREPLAY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "fleetreplay",
		Description: "Replays recorded vehicle telemetry as live fleet activity",

		Commands: []*cli.Command{
			replay.RegisterCLI(),
			dataloader.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
