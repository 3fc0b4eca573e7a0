package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/ring-sim/ring-sim/sim"
)

// loadScenario reads a YAML scenario file over the built-in defaults.
// Unknown keys are rejected so a typo fails loudly instead of silently
// running the default scenario.
func loadScenario(path string) (sim.SimConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.SimConfig{}, fmt.Errorf("scenario: %w", err)
	}
	defer f.Close()

	cfg := sim.DefaultSimConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return sim.SimConfig{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return cfg, nil
}
