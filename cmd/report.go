package cmd

import (
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/assembly-sim/assembly-sim/internal/printer"
	sim "github.com/assembly-sim/assembly-sim/sim"
)

// maxListedCombinations caps how many released combinations the report lists
// inline; longer runs only show the count.
const maxListedCombinations = 16

// renderReport prints the end-of-run summary: released combinations, belt
// exit counters, and timing. Rendering lives out here so the engine itself
// never writes to the console.
func renderReport(s *sim.Simulator, results []string, interrupted bool, elapsed time.Duration) {
	counters := s.Belt.Counters()

	logrus.Infof("The product combinations: %v", results)

	printer.Step("Assembly report\n")
	printer.Printf("  released combinations: %d\n", len(results))
	if n := len(results); n > 0 && n <= maxListedCombinations {
		printer.Println("  combinations:", strings.Join(results, " "))
	}

	comps := make([]string, 0, len(counters.Unpicked))
	for comp := range counters.Unpicked {
		comps = append(comps, string(comp))
	}
	sort.Strings(comps)
	for _, comp := range comps {
		printer.Printf("  unpicked component %s: %d\n", comp, counters.Unpicked[sim.Item(comp)])
	}
	printer.Printf("  other items off the end: %d\n", counters.Other)
	printer.Printf("  finished products off the end: %d\n", counters.Finished)
	printer.Printf("  ticks consumed: %d of %d\n", s.Belt.Consumed(), s.Belt.Consumed()+s.Belt.Remaining())

	if interrupted {
		printer.Warning("interrupted after %d ticks\n", s.Belt.Consumed())
	} else {
		printer.Success("completed in %.1f seconds\n", elapsed.Seconds())
	}
}
