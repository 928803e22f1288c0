// Copyright © 2021-2025 The Gomon Project.

package serve

import (
	"github.com/zosmac/gocore"
)

var (
	// flags defines the command line flags.
	flags = struct {
		port int
	}{}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.port,
		"port",
		"[-port n]",
		"Port number on localhost for the /metrics and /ws endpoints, 0 disables the server",
	)
}

// Port reports the port requested on the command line.
func Port() int {
	return flags.port
}
