package dataloader

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a replayable dataset: where each trip's recorded events
// live on disk plus the identifying metadata that isn't repeated inside the
// event files.
type Manifest struct {
	Identifier string   `yaml:"identifier" validate:"required"`
	Provider   Provider `yaml:"provider"`

	Trips []ManifestTrip `yaml:"trips" validate:"required,min=1,dive"`
}

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
}

type ManifestTrip struct {
	TripID    string `yaml:"trip_id" validate:"required"`
	VehicleID string `yaml:"vehicle_id" validate:"required"`
	Name      string `yaml:"name" validate:"required"`

	// EventsFile is resolved relative to the manifest's directory.
	EventsFile string `yaml:"events_file" validate:"required"`
}

func LoadManifest(path string) (*Manifest, error) {
	manifestYaml, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(manifestYaml, &manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}
