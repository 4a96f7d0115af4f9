package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Bgoodwin24/insightforge/internal/config"
	"github.com/Bgoodwin24/insightforge/internal/logger"
)

// app carries the configuration shared by every subcommand
type app struct {
	cfg *config.Config

	analyticsURL string
	logLevel     string
	timeout      time.Duration
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "analyze",
		Short:         "Run InsightForge analyses from the command line",
		Long:          `analyze sends one analysis request to the analytics service, normalizes the result into a chart model and prints it, optionally rendering an HTML report or PNG chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd.Context(), cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.analyticsURL, "analytics-url", "", "analytics service base URL (overrides ANALYTICS_URL)")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	f.DurationVar(&a.timeout, "timeout", 0, "HTTP timeout per request (overrides HTTP_TIMEOUT)")

	root.AddCommand(newMethodsCmd())
	root.AddCommand(newRunCmd(a))
	return root
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig(ctx context.Context, cmd *cobra.Command) error {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("analytics-url") && a.analyticsURL != "" {
		cfg.AnalyticsURL = a.analyticsURL
	}
	if f.Changed("log-level") && a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if f.Changed("timeout") && a.timeout > 0 {
		cfg.HTTPTimeout = a.timeout
	}

	// stdout is reserved for command output
	logger.SetGlobalLogger(logger.New(logger.Config{
		Level:  logger.WARN,
		Format: logger.TextFormat,
		Output: cmd.ErrOrStderr(),
	}))
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.IsProduction())
	a.cfg = cfg
	return nil
}
