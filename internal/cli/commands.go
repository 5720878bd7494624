package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/xenoarch/internal/app"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/display"
	"github.com/vk/xenoarch/internal/hcl"
	"github.com/vk/xenoarch/internal/scanner"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var af adminFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an artifact and print its analyzer report as YAML",
		Long: "Generate an artifact and print its analyzer report as YAML.\n" +
			"Admin flags edit the artifact before it is printed, in this order:\n" +
			"activations, create-node, add-edge, force-node, unlock-all, remove-node, excise-triggered.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, g, &af, false)
		},
	}
	af.bind(cmd)
	return cmd
}

func newMatrixCmd(g *globalFlags) *cobra.Command {
	var af adminFlags
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Generate an artifact and print its adjacency matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, g, &af, true)
		},
	}
	af.bind(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, g *globalFlags, af *adminFlags, matrix bool) error {
	opts, err := af.options(matrix)
	if err != nil {
		return err
	}
	a, err := newApp(cmd, g)
	if err != nil {
		return err
	}
	return a.Generate(cmd.Context(), cmd.OutOrStdout(), opts)
}

func newResearchCmd(g *globalFlags) *cobra.Command {
	var samples int
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Estimate the average research value of generated artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := positive("samples", samples); err != nil {
				return err
			}
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			avg, err := a.Research(cmd.Context(), samples)
			if err != nil {
				return fmt.Errorf("research: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Average research value over %d artifacts: %.1f\n", samples, avg)
			return nil
		},
	}
	cmd.Flags().IntVar(&samples, "samples", 100, "Number of artifacts to generate.")
	return cmd
}

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		port      int
		artifacts int
		tick      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Simulate a room of artifacts and stream scanner readings to displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := positive("artifacts", artifacts); err != nil {
				return err
			}
			cfg, err := resolveConfig(cmd, g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") || cfg.HealthcheckPort == 0 {
				cfg.HealthcheckPort = port
			}
			a := app.NewApp(cmd.ErrOrStderr(), cfg, hcl.NewLoader())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx, app.ServeOptions{Artifacts: artifacts, Tick: tick})
		},
	}
	f := cmd.Flags()
	f.IntVar(&port, "port", 8080, "Port for the health and socket.io display endpoints. Used unless XENOARCH_PORT is set.")
	f.IntVar(&artifacts, "artifacts", 3, "Number of artifacts in the simulated room.")
	f.DurationVar(&tick, "tick", time.Second, "Delay between simulated interactions.")
	return cmd
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	var opts display.WatchOptions
	cmd := &cobra.Command{
		Use:   "watch URL",
		Short: "Connect to a display hub and print scanner readings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, g)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			ctx, stop := signal.NotifyContext(ctxlog.WithLogger(cmd.Context(), logger), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return display.Watch(ctx, args[0], opts, func(u scanner.Update) {
				fmt.Fprintf(out, "%s: [%s]\n", u.Artifact, strings.Join(u.Nodes, " "))
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Namespace, "namespace", "/", "Socket.io namespace of the display hub.")
	f.BoolVar(&opts.InsecureSkipVerify, "insecure", false, "Skip TLS certificate verification.")
	f.DurationVar(&opts.ConnectTimeout, "timeout", 15*time.Second, "Connection timeout.")
	return cmd
}
