// Command netsurvey is the entry point for the network survey toolkit.
package main

import (
	"github.com/netsurvey/netsurvey/cmd/cli"
)

// Build information - set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
