package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LocationEntry is a single location row of the locations YAML file.
type LocationEntry struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
}

// LocationsConfig mirrors the structure of locations.yaml:
//
//	locations:
//	  - name: Whitefield
//	    offset: 0
type LocationsConfig struct {
	Model struct {
		Name          string `yaml:"name"`
		FeatureLength int    `yaml:"feature_length"`
	} `yaml:"model"`
	Locations []LocationEntry `yaml:"locations"`
}

// LoadLocations reads the location catalog file. Validation of names and
// offsets happens when the catalog is built.
func LoadLocations(path string) (*LocationsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}
	return ParseLocations(data)
}

// ParseLocations decodes locations YAML content.
func ParseLocations(data []byte) (*LocationsConfig, error) {
	var cfg LocationsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse locations YAML: %w", err)
	}
	if len(cfg.Locations) == 0 {
		return nil, fmt.Errorf("locations file contains no entries")
	}
	return &cfg, nil
}
