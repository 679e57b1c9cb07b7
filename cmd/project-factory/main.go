// Package main is the entry point for the project-factory CLI.
//
// project-factory builds and maintains project configuration files for
// a cloud project factory pipeline. Configurations are created with an
// interactive wizard, edited in place or via scripts, checked against
// the save rules and written as deterministic YAML.
//
// Commands: init, edit, validate, show, version, completion.
//
// For detailed usage information, run:
//
//	project-factory --help
package main

import (
	"fmt"
	"os"

	"github.com/Gerhatlevi/project-factory/cmd/project-factory/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
