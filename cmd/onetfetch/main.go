package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/logger"
	"github.com/raywall/onet-interest-profiler/pkg/metrics"
	"github.com/raywall/onet-interest-profiler/pkg/refresh"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// configOptions é substituído nos testes para isolar ambiente e segredos.
var configOptions = config.Options{}

var rootCmd = &cobra.Command{
	Use:   "onetfetch",
	Short: "Snapshot the O*NET Interest Profiler questions",
	Long: "onetfetch downloads the 60 O*NET Interest Profiler questions and their\n" +
		"answer options, validates them and saves a JSON snapshot.\n\n" +
		"Configuration comes from .env, onet.yaml (or ONET_CONFIG_FILE) and the\n" +
		"environment; ONET_API_KEY is required.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFetch,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, configOptions)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.Configure(cfg.Logging, cmd.ErrOrStderr()).With().Str("run_id", runID).Logger()

	provider, err := metrics.Setup(cfg.Metrics)
	if err != nil {
		return err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}

	summary, err := refresh.Run(ctx, refresh.Options{
		Config:  cfg,
		RunID:   runID,
		Logger:  &log,
		Metrics: provider,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
