package dataloader

import (
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dataset",
		Usage: "Trip dataset tools",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "parse, validate and dump a trip dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dataset",
						Value: "data/datasets.yaml",
						Usage: "path to the trip dataset manifest",
					},
				},
				Action: func(c *cli.Context) error {
					trips, err := LoadTrips(c.String("dataset"))
					if err != nil {
						return err
					}

					for _, trip := range trips {
						pretty.Println(trip.TripID, trip.VehicleID, trip.Name, len(trip.Events))
					}

					return nil
				},
			},
		},
	}
}
