package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/stock"
	"github.com/aretw0/stock/pkg/core"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *Config
	logger *slog.Logger
	out    io.Writer
}

// newRootCmd builds the command tree. The bare command runs the demo.
func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string

	root := &cobra.Command{
		Use:   "stock",
		Short: "A file-backed inventory store",
		Long: `stock keeps an ordered list of items and quantities in a single file.
Run without arguments to play the demo workflow against the inventory file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.Context())
		},
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.New(), root.PersistentFlags(), configFile)
		if err != nil {
			return err
		}

		// Recovered diagnostics already reach stdout; keep stderr quiet unless asked.
		level := slog.LevelError
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(a.logger)

		a.cfg = cfg
		a.out = cmd.OutOrStdout()
		return nil
	}

	flags := root.PersistentFlags()
	flags.StringP("file", "f", core.DefaultPath, "Inventory file (.json, .yaml, .yml, .db, .sqlite, .sqlite3)")
	flags.String("adapter", "", "Storage adapter (fs or sqlite); guessed from the extension when empty")
	flags.Float64("threshold", core.DefaultThreshold, "Quantity below which an item counts as low")
	flags.Bool("search", false, "Look for the inventory file in parent directories")
	flags.Bool("read-only", false, "Never write the inventory file")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file (json, yaml or toml)")

	root.AddCommand(
		newDemoCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newQtyCmd(a),
		newLowCmd(a),
		newReportCmd(a),
		newWatchCmd(a),
		newStatusCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the CLI with os.Args.
// This is called by main.main().
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// path resolves the inventory file, optionally searching parent directories.
func (a *app) path() string {
	if !a.cfg.Search || filepath.IsAbs(a.cfg.File) {
		return a.cfg.File
	}
	wd, err := os.Getwd()
	if err != nil {
		return a.cfg.File
	}
	found, err := stock.FindInventory(wd, a.cfg.File)
	if err != nil {
		a.logger.Debug("inventory not found in parent directories", "name", a.cfg.File)
		return a.cfg.File
	}
	return found
}

func (a *app) service() (*core.Service, error) {
	return stock.New(a.path(),
		stock.WithAdapter(a.cfg.Adapter),
		stock.WithLogger(a.logger),
		stock.WithReadOnly(a.cfg.ReadOnly),
		stock.WithOutput(a.out),
		stock.WithWatcherErrorHandler(func(err error) {
			a.logger.Error("watcher failure", "error", err)
		}),
	)
}

// open returns the service and the loaded inventory.
func (a *app) open(ctx context.Context) (*core.Service, *core.Inventory, error) {
	svc, err := a.service()
	if err != nil {
		return nil, nil, err
	}
	inv, err := svc.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return svc, inv, nil
}

// skipRecoverable drops errors that were already reported to the user.
func skipRecoverable(err error) error {
	if err == nil || core.Recoverable(err) {
		return nil
	}
	return err
}
