// Package main is the entry point for padkeys.
package main

import (
	"os"

	"github.com/dshills/padkeys/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(cli.Info{Version: version, Commit: commit, Date: date}))
}
