// Package run implements the `flowgraph run` subcommand: it wires the
// bundled demonstration graph (examples.BuildTickTransformLog), starts it,
// and waits for either natural completion or an interrupt signal, at which
// point it drives the graph through its drain-then-terminate shutdown
// protocol (spec.md §4.H).
package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowgraph/flowgraph/examples"
	"github.com/flowgraph/flowgraph/metrics"
	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/runtimeconfig"
)

var (
	configFile string
	tickCount  uint64
	tickDelay  time.Duration
)

// Cmd is the `run` subcommand.
var Cmd = &cobra.Command{
	Use:          "run",
	Short:        "Run the bundled demo graph until it drains or is interrupted.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runtimeconfig.Load(configFile); err != nil {
			return err
		}
		metrics.Register()

		cfg := runtimeconfig.FromViper()
		g, err := examples.BuildTickTransformLog(cfg, tickCount, tickDelay)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		g.Run(ctx)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		done := make(chan struct{})
		go func() {
			g.Wait()
			close(done)
		}()

		select {
		case <-done:
			printer.Stderr.Infoln("graph drained naturally")
		case <-sigCh:
			printer.Stderr.Infoln("interrupt received, draining...")
			g.Stop()
			<-done
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML graph-definition file overriding runtime defaults.")
	Cmd.Flags().Uint64Var(&tickCount, "count", 10, "Number of packets the demo source emits before ending its stream.")
	Cmd.Flags().DurationVar(&tickDelay, "delay", 200*time.Millisecond, "Delay between demo source ticks.")
}
