// atsmock - mock API simulator for applicant tracking systems.
package main

import (
	"github.com/claudiu-carv/ats-mock-simulator/pkg/cli"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if Version != "" {
		cli.Version = Version
	}
	cli.Execute()
}
