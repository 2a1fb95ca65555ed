// Package catalog reads activity catalog files, validates them and converts
// their entries into domain activities ready for the activity repository.
package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level structure of a catalog file. YAML and JSON files
// share the same shape.
type File struct {
	Activities []ActivityImport `yaml:"activities" json:"activities"`
}

// ActivityImport defines a single activity in the catalog file.
type ActivityImport struct {
	ID                 string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name               string   `yaml:"name" json:"name"`
	Description        string   `yaml:"description" json:"description"`
	Source             string   `yaml:"source,omitempty" json:"source,omitempty"`
	AgeMin             int      `yaml:"age_min" json:"age_min"`
	AgeMax             int      `yaml:"age_max" json:"age_max"`
	Format             string   `yaml:"format" json:"format"`
	BloomLevel         string   `yaml:"bloom_level" json:"bloom_level"`
	DurationMinMinutes int      `yaml:"duration_min_minutes" json:"duration_min_minutes"`
	DurationMaxMinutes *int     `yaml:"duration_max_minutes,omitempty" json:"duration_max_minutes,omitempty"`
	Topics             []string `yaml:"topics,omitempty" json:"topics,omitempty"`
	ResourcesNeeded    []string `yaml:"resources_needed,omitempty" json:"resources_needed,omitempty"`
	MentalLoad         string   `yaml:"mental_load,omitempty" json:"mental_load,omitempty"`
	PhysicalEnergy     string   `yaml:"physical_energy,omitempty" json:"physical_energy,omitempty"`
	PrepTimeMinutes    *int     `yaml:"prep_time_minutes,omitempty" json:"prep_time_minutes,omitempty"`
	CleanupTimeMinutes *int     `yaml:"cleanup_time_minutes,omitempty" json:"cleanup_time_minutes,omitempty"`
}

// Parse decodes a catalog document. JSON input is accepted because it is
// valid YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &f, nil
}

// Load reads and parses a catalog file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
