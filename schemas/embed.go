// Package schemas carries the JSON schemas the CLI validates raw config
// documents against before any value reaches the engine.
package schemas

import _ "embed"

// Config is the schema for the simulation config file.
//
//go:embed config.schema.json
var Config string
