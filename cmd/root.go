package cmd

import (
	goflag "flag"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/flowgraph/flowgraph/cmd/internal/run"
	"github.com/flowgraph/flowgraph/cmd/internal/versioncmd"
	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/util"
	"github.com/flowgraph/flowgraph/version"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:           "flowgraph",
	Short:         "Run dataflow pipeline graphs.",
	Long:          "flowgraph wires and runs a graph of source/transform/terminal nodes exchanging versioned packets.",
	Version:       version.CLIDisplayString(),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command, printing any error through printer and
// translating a util.ExitError into the process exit code.
func Execute() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		cmd.Println(cmd.UsageString())

		exitCode := 1
		var exitErr util.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode
		}
		printer.Stderr.Errorf("%s\n", err)
		os.Exit(exitCode)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "If set, outputs detailed information for debugging.")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase logging verbosity; may be repeated.")
	viper.BindPFlag("verbose-level", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().Bool("json", false, "Emit log output as newline-delimited JSON instead of colored text.")
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	cobra.OnInitialize(func() {
		if viper.GetBool("json") {
			printer.SwitchToJSON()
		}
	})

	// Include flags from go libraries that we're using. We hand-pick the
	// flags to include to avoid polluting the flag set of the CLI.
	goflag.CommandLine.VisitAll(func(f *goflag.Flag) {
		switch f.Name {
		case "alsologtostderr", "log_dir", "logtostderr", "v":
			flag.CommandLine.AddGoFlag(f)
			flag.CommandLine.MarkHidden(f.Name)
		}
	})
	goflag.CommandLine.Parse(nil)

	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(versioncmd.Cmd)
}
