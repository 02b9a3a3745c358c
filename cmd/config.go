package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/assembly-sim/assembly-sim/schemas"
	sim "github.com/assembly-sim/assembly-sim/sim"
)

// configSchema rejects malformed documents before any value reaches the
// engine. Compiled once at startup from the embedded schema.
var configSchema = jsonschema.MustCompileString("config.schema.json", schemas.Config)

// beltSection mirrors the "belt" object of the config file.
type beltSection struct {
	Length     int     `json:"belt_length"`
	Delay      float64 `json:"belt_delay"` // seconds per tick
	Iterations int64   `json:"belt_iterations"`
}

// fileConfig mirrors the config file document. A JSON null in the items
// array decodes to "" which is the engine's empty-slot sentinel.
type fileConfig struct {
	Debug           bool        `json:"debug"`
	Belt            beltSection `json:"belt"`
	WorkersPerSlot  int         `json:"workers_per_slot"`
	AssemblyTime    int         `json:"assembly_time"`
	FinishedProduct string      `json:"finished_product"`
	Items           []string    `json:"items"`
	Components      []string    `json:"components"`
	ItemIntervalMin float64     `json:"item_interval_min"`
	ItemIntervalMax float64     `json:"item_interval_max"`
	Seed            *int64      `json:"seed"`
}

// LoadConfig reads a JSON config file, validates the raw document against
// the embedded schema, and maps it onto a sim.Config. Optional keys absent
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := configSchema.Validate(doc); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg.Debug = fc.Debug
	cfg.Belt.Length = fc.Belt.Length
	cfg.Belt.Iterations = fc.Belt.Iterations
	cfg.Belt.Delay = secondsToDuration(fc.Belt.Delay)
	cfg.Crew.WorkersPerSlot = fc.WorkersPerSlot
	cfg.Crew.AssemblyTime = fc.AssemblyTime
	cfg.Catalog.Finished = sim.Item(fc.FinishedProduct)
	if fc.Items != nil {
		cfg.Catalog.Items = toItems(fc.Items)
	}
	if fc.Components != nil {
		cfg.Catalog.Components = toItems(fc.Components)
	}
	cfg.Catalog.MinInterval = secondsToDuration(fc.ItemIntervalMin)
	cfg.Catalog.MaxInterval = secondsToDuration(fc.ItemIntervalMax)
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	return cfg, nil
}

func toItems(values []string) []sim.Item {
	items := make([]sim.Item, len(values))
	for i, v := range values {
		items[i] = sim.Item(v)
	}
	return items
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
