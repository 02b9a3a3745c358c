package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/assembly-sim/assembly-sim/internal/printer"
	sim "github.com/assembly-sim/assembly-sim/sim"
)

var (
	// CLI flags for the simulation run
	configPath    string // Path to the JSON config file
	scenariosPath string // Path to the YAML scenario presets file
	scenario      string // Name of a preset scenario to run
	seed          int64  // Seed for random item generation
	logLevel      string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "assembly-sim",
	Short: "Discrete-event simulator for conveyor-belt assembly lines",
}

// runCmd executes the simulation using parameters from the resolved config source
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the assembly line simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadRunConfig(cmd)
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}

		logrus.Infof("Starting simulation with %d slots, %d workers per slot, budget=%d ticks, seed=%d",
			cfg.Belt.Length, cfg.Crew.WorkersPerSlot, cfg.Belt.Iterations, cfg.Seed)

		s, err := sim.Setup(cfg)
		if err != nil {
			logrus.Fatalf("Invalid simulation setup: %v", err)
		}

		// Ctrl-C stops ticking promptly; partial counters and results stay reportable
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now() // Get current time (start)
		results, runErr := s.Run(ctx)
		renderReport(s, results, ctx.Err() != nil, time.Since(startTime))

		if runErr != nil {
			printer.Errorf("simulation aborted: %v", runErr)
			os.Exit(1)
		}
		logrus.Info("Simulation complete.")
	},
}

// loadRunConfig resolves the configuration source: a named scenario wins
// over a config file, which wins over the built-in defaults. The --seed
// flag overrides whichever source was used.
func loadRunConfig(cmd *cobra.Command) sim.Config {
	var (
		cfg sim.Config
		err error
	)
	switch {
	case scenario != "":
		cfg, err = GetScenarioConfig(scenariosPath, scenario)
	case configPath != "":
		cfg, err = LoadConfig(configPath)
	default:
		cfg = sim.DefaultConfig()
	}
	if err != nil {
		logrus.Fatalf("Could not load configuration: %v", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a JSON config file (built-in defaults when omitted)")
	runCmd.Flags().StringVar(&scenariosPath, "scenarios", "scenarios.yaml", "Path to the YAML scenario presets file")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "Name of a preset scenario to run")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random item generation")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
