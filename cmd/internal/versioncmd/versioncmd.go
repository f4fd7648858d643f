// Package versioncmd implements `flowgraph version`, a thin wrapper around
// the version package's build-stamped release/git info.
package versioncmd

import (
	"github.com/spf13/cobra"

	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/version"
)

// Cmd is the `version` subcommand.
var Cmd = &cobra.Command{
	Use:          "version",
	Short:        "Print the flowgraph version.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.Stdout.RawOutput(version.CLIDisplayString())
		return nil
	},
}
