package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/assembly-sim/assembly-sim/sim"
)

// Scenario describes a named preset in a scenarios YAML file. Fields left
// out of a preset keep their DefaultConfig values; the three counts that
// must be positive are treated as unset when zero.
type Scenario struct {
	BeltLength      int      `yaml:"belt_length"`
	BeltDelay       float64  `yaml:"belt_delay"` // seconds per tick
	BeltIterations  int64    `yaml:"belt_iterations"`
	WorkersPerSlot  int      `yaml:"workers_per_slot"`
	AssemblyTime    int      `yaml:"assembly_time"`
	FinishedProduct string   `yaml:"finished_product"`
	Items           []string `yaml:"items"`
	Components      []string `yaml:"components"`
	ItemIntervalMin float64  `yaml:"item_interval_min"`
	ItemIntervalMax float64  `yaml:"item_interval_max"`
	Seed            *int64   `yaml:"seed"`
	Debug           bool     `yaml:"debug"`
}

// ScenarioFile represents the full scenarios YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// GetScenarioConfig loads the named preset from a scenarios YAML file and
// applies it on top of the built-in defaults.
func GetScenarioConfig(path string, name string) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenarios file: %w", err)
	}

	// Parse YAML with strict field checking so preset typos cause errors
	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return cfg, fmt.Errorf("parse scenarios YAML %s: %w", path, err)
	}

	sc, ok := file.Scenarios[name]
	if !ok {
		return cfg, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	logrus.Infof("Using preset scenario %v", name)

	if sc.BeltLength > 0 {
		cfg.Belt.Length = sc.BeltLength
	}
	if sc.BeltIterations > 0 {
		cfg.Belt.Iterations = sc.BeltIterations
	}
	cfg.Belt.Delay = secondsToDuration(sc.BeltDelay)
	if sc.WorkersPerSlot > 0 {
		cfg.Crew.WorkersPerSlot = sc.WorkersPerSlot
	}
	cfg.Crew.AssemblyTime = sc.AssemblyTime
	if sc.FinishedProduct != "" {
		cfg.Catalog.Finished = sim.Item(sc.FinishedProduct)
	}
	if sc.Items != nil {
		cfg.Catalog.Items = toItems(sc.Items)
	}
	if sc.Components != nil {
		cfg.Catalog.Components = toItems(sc.Components)
	}
	cfg.Catalog.MinInterval = secondsToDuration(sc.ItemIntervalMin)
	cfg.Catalog.MaxInterval = secondsToDuration(sc.ItemIntervalMax)
	if sc.Seed != nil {
		cfg.Seed = *sc.Seed
	}
	cfg.Debug = sc.Debug
	return cfg, nil
}
