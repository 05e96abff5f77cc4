package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/heptathlon/internal/adapters/report"
	app "github.com/okian/heptathlon/internal/app"
	"github.com/okian/heptathlon/internal/config"
	"github.com/okian/heptathlon/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	configFile  string
	sport       string
	format      string
	metricsFile string
	logLevel    string
	strict      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "heptathlon [results.csv]",
		Short: "Score combined-events results and print daily leaderboards",
		Long: `Score combined-events results with the IAAF points tables and print one
ranked leaderboard per competition day.

Each input row is: athlete,event,value,YYYY-MM-DD HH:MM:SS

Examples:
  heptathlon Heptathlon.csv
  heptathlon --format json --strict results.csv
  HEPTATHLON_CONFIG=heptathlon.yaml heptathlon --metrics-file /var/lib/node_exporter/heptathlon.prom`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd, args, flags); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed execution.\n%v\n", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configFile, "config", os.Getenv(config.EnvConfigFile), "YAML config file")
	f.StringVar(&flags.sport, "sport", "", "sport identifier (default from config: heptathlon)")
	f.StringVar(&flags.format, "format", "", "report format: text or json")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&flags.strict, "strict", false, "reject non-numeric result values")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags rootFlags) error {
	ctx := cmd.Context()

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("heptathlon")

	// Load configuration (defaults -> optional file -> env), then flags.
	cfg, err := config.LoadFile(ctx, flags.configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, args, flags)
	if err := cfg.Validate(ctx); err != nil {
		return err
	}
	if cfg.LogJSON {
		if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(true)); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		log = logger.Named("heptathlon")
	}

	// Apply configured log level (fallback to warn on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}
	renderer, err := report.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithSport(cfg.Sport),
		app.WithTable(table),
		app.WithParsePolicy(cfg.ParsePolicy()),
		app.WithRenderer(renderer),
		app.WithOutput(cmd.OutOrStdout()),
		app.WithMetricsFile(cfg.MetricsFile),
	)

	log.Debug(ctx, "starting run",
		logger.String("input", cfg.Input),
		logger.String("sport", cfg.Sport),
		logger.String("format", cfg.Format),
		logger.Bool("strict", cfg.Strict),
	)
	_, err = svc.Run(ctx, cfg.Input)
	return err
}

// applyFlags lets explicitly set flags and the positional input win over config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string, flags rootFlags) {
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	f := cmd.Flags()
	if f.Changed("sport") {
		cfg.Sport = flags.sport
	}
	if f.Changed("format") {
		cfg.Format = flags.format
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = flags.metricsFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("strict") {
		cfg.Strict = flags.strict
	}
}
