// main.go
//
// Entry point. All CLI handling lives in the Cobra commands under cmd/.

package main

import (
	"github.com/assembly-sim/assembly-sim/cmd"
)

func main() {
	cmd.Execute()
}
