// Groups the validated configuration the engine consumes and the Setup
// routine that turns it into a runnable Simulator. Parsing config files and
// schema-checking the raw document happen outside this package; by the time
// a Config arrives here it only needs the semantic rules enforced.

package sim

import (
	"time"
)

// BeltConfig holds the belt geometry and pacing parameters.
type BeltConfig struct {
	Length     int           // number of slots
	Iterations int64         // total tick budget for the run
	Delay      time.Duration // real time spent per tick, zero to run flat out
}

// Validate checks the belt parameters.
func (c *BeltConfig) Validate() error {
	if c.Length <= 0 {
		return invalidConfigf("belt length must be > 0, got %d", c.Length)
	}
	if c.Iterations <= 0 {
		return invalidConfigf("belt iterations must be > 0, got %d", c.Iterations)
	}
	if c.Delay < 0 {
		return invalidConfigf("belt delay must be >= 0, got %v", c.Delay)
	}
	return nil
}

// CrewConfig holds the worker staffing and assembly pacing parameters.
type CrewConfig struct {
	WorkersPerSlot int // resident workers stationed at every slot
	AssemblyTime   int // whole belt ticks consumed per assemble
}

// Validate checks the crew parameters.
func (c *CrewConfig) Validate() error {
	if c.WorkersPerSlot <= 0 {
		return invalidConfigf("workers per slot must be > 0, got %d", c.WorkersPerSlot)
	}
	if c.AssemblyTime < 0 {
		return invalidConfigf("assembly time must be >= 0, got %d", c.AssemblyTime)
	}
	return nil
}

// CatalogConfig holds the item alphabet and arrival pacing. The semantic
// rules binding items, components, and the marker together are enforced by
// Catalog.Validate at setup.
type CatalogConfig struct {
	Items       []Item        // full alphabet drawn onto the belt, empty sentinel included
	Components  []Item        // distinct single-character subset a product requires
	Finished    Item          // marker deposited on release
	MinInterval time.Duration // lower bound of the random pre-draw pause
	MaxInterval time.Duration // upper bound; zero disables the pause
}

// Validate checks the interval bounds.
func (c *CatalogConfig) Validate() error {
	if c.MinInterval < 0 {
		return invalidConfigf("item interval minimum must be >= 0, got %v", c.MinInterval)
	}
	if c.MaxInterval < 0 {
		return invalidConfigf("item interval maximum must be >= 0, got %v", c.MaxInterval)
	}
	if c.MaxInterval < c.MinInterval {
		return invalidConfigf("item interval maximum must be >= minimum, got %v < %v", c.MaxInterval, c.MinInterval)
	}
	return nil
}

// Config is the complete validated input of a run.
type Config struct {
	Belt    BeltConfig
	Crew    CrewConfig
	Catalog CatalogConfig
	Seed    int64 // master seed; same seed and config reproduce the run exactly
	Debug   bool  // verbosity only, never affects simulation outcomes
}

// Validate checks every parameter group.
func (c *Config) Validate() error {
	if err := c.Belt.Validate(); err != nil {
		return err
	}
	if err := c.Crew.Validate(); err != nil {
		return err
	}
	return c.Catalog.Validate()
}

// DefaultConfig returns the stock assembly line: a five-slot belt with one
// worker per slot building product P out of components A, 2, and C from a
// mixed alphabet, running flat out for 100000 ticks.
func DefaultConfig() Config {
	return Config{
		Belt: BeltConfig{
			Length:     5,
			Iterations: 100000,
			Delay:      0,
		},
		Crew: CrewConfig{
			WorkersPerSlot: 1,
			AssemblyTime:   0,
		},
		Catalog: CatalogConfig{
			Items:      []Item{"A", "B", "C", "D", "E", "F", "AC", "G", "1", "2", "3", "4", "5", EmptyItem},
			Components: []Item{"A", "2", "C"},
			Finished:   "P",
		},
		Seed: 42,
	}
}

// Setup validates the configuration, builds the catalog, the belt, and the
// worker grid, and wires them into a Simulator. Worker ids are assigned here,
// sequentially from 1 in slot order.
func Setup(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	catalog := NewCatalog(cfg.Catalog.Items, cfg.Catalog.Components, cfg.Catalog.Finished,
		cfg.Catalog.MinInterval, cfg.Catalog.MaxInterval, rng)
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	belt := NewBelt(cfg.Belt.Length, catalog, cfg.Belt.Iterations, cfg.Belt.Delay)

	workers := make([][]*Worker, cfg.Belt.Length)
	id := 1
	for i := range workers {
		crew := make([]*Worker, cfg.Crew.WorkersPerSlot)
		for j := range crew {
			crew[j] = NewWorker(id, catalog, cfg.Crew.AssemblyTime)
			id++
		}
		workers[i] = crew
	}

	return NewSimulator(belt, workers), nil
}
