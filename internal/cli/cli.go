package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vk/xenoarch/internal/app"
	"github.com/vk/xenoarch/internal/hcl"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// globalFlags mirror the XENOARCH_* environment variables. A flag only wins
// over the environment when it was set explicitly.
type globalFlags struct {
	catalog          string
	skipStockCatalog bool
	logFormat        string
	logLevel         string
	seed             int64
	nodesMin         int
	nodesMax         int
	workers          int
}

// NewRootCommand builds the xenoarch command tree. Command output goes to
// outW; logs go to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	root, _ := newRootCommand(outW, errW)
	return root
}

func newRootCommand(outW, errW io.Writer) (*cobra.Command, *globalFlags) {
	var g globalFlags
	root := &cobra.Command{
		Use:   "xenoarch",
		Short: "Procedural artifact node-graph engine",
		Long: "Xenoarch generates alien artifacts as trees of trigger/effect nodes,\n" +
			"walks them through activations and streams scanner readings to displays.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	f := root.PersistentFlags()
	f.StringVar(&g.catalog, "catalog", "", "Extra catalog file or directory loaded after the stock catalogs.")
	f.BoolVar(&g.skipStockCatalog, "skip-stock-catalog", false, "Do not load the built-in trigger and effect catalogs.")
	f.StringVar(&g.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.StringVar(&g.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.Int64Var(&g.seed, "seed", 0, "Seed for reproducible artifacts. 0 picks a random seed.")
	f.IntVar(&g.nodesMin, "nodes-min", 3, "Smallest generated tree.")
	f.IntVar(&g.nodesMax, "nodes-max", 9, "Largest generated tree.")
	f.IntVar(&g.workers, "workers", 4, "Number of concurrent workers for research sampling.")

	root.AddCommand(
		newGenerateCmd(&g),
		newMatrixCmd(&g),
		newResearchCmd(&g),
		newServeCmd(&g),
		newWatchCmd(&g),
	)
	return root, &g
}

// resolveConfig builds the validated configuration for cmd: environment first,
// explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, g *globalFlags) (*app.Config, error) {
	cfg, err := app.ConfigFromEnv()
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogPath = g.catalog
	}
	if flags.Changed("skip-stock-catalog") {
		cfg.SkipStockCatalog = g.skipStockCatalog
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("seed") {
		cfg.Seed = g.seed
	}
	if flags.Changed("nodes-min") {
		cfg.NodesMin = g.nodesMin
	}
	if flags.Changed("nodes-max") {
		cfg.NodesMax = g.nodesMax
	}
	if flags.Changed("workers") {
		cfg.WorkerCount = g.workers
	}

	valid, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI configuration resolved.", "config", valid)
	return valid, nil
}

// newApp resolves the configuration and builds the App. NewApp panics on an
// invalid catalog; callers recover at the process boundary.
func newApp(cmd *cobra.Command, g *globalFlags) (*app.App, error) {
	cfg, err := resolveConfig(cmd, g)
	if err != nil {
		return nil, err
	}
	return app.NewApp(cmd.ErrOrStderr(), cfg, hcl.NewLoader()), nil
}

// IsExitError reports whether err carries an exit code and returns it.
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

func positive(name string, v int) error {
	if v < 1 {
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s: must be at least 1, got %d", name, v)}
	}
	return nil
}
