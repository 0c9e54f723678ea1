package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Derive    bool
	Normalize bool
	Input     bool
	Script    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Derive = boolEnv("DHALL_DEBUG_DERIVE")
	d.Normalize = boolEnv("DHALL_DEBUG_NORMALIZE")
	d.Input = boolEnv("DHALL_DEBUG_INPUT")
	d.Script = boolEnv("DHALL_DEBUG_SCRIPT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Derive() bool {
	return d.Derive
}
func Normalize() bool {
	return d.Normalize
}
func Input() bool {
	return d.Input
}
func Script() bool {
	return d.Script
}

// Enable turns toggles on by name ("derive", "normalize", "input",
// "script"); unknown names are ignored. It is meant for command line
// flags and tests and must not race with logging callers.
func Enable(names ...string) {
	for _, n := range names {
		switch n {
		case "derive":
			d.Derive = true
		case "normalize":
			d.Normalize = true
		case "input":
			d.Input = true
		case "script":
			d.Script = true
		}
	}
}
