// Package main is the entry point for the sshconfgen binary.
//
// sshconfgen generates the SSH client config at ~/.ssh/config by merging
// marker-delimited sections out of the .sshconf fragments in ~/.ssh/conf.d,
// choosing each fragment's local or remote section from live network
// detection (current SSID, gateway MAC, reachability).
//
// Usage:
//
//	sshconfgen                    # one generation pass
//	sshconfgen --monitor-ssid=30  # regenerate when the SSID changes
//	sshconfgen watch              # regenerate when fragments change
//	sshconfgen doctor             # diagnose fragment and probe setup
//
// The CLI is constructed in internal/cli; this file wires it together and
// handles top-level error reporting.
package main

import (
	"fmt"
	"os"

	"github.com/treykane/sshconfgen/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()

	// Any error returned by a RunE handler is printed to stderr and the
	// process exits with a non-zero status code.
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
