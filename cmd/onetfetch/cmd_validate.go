package main

import (
	"fmt"

	"github.com/raywall/onet-interest-profiler/fetcher"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration without calling the API",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context(), configOptions)
	if err != nil {
		return err
	}
	// Mesma verificação de credencial que o fetch faria, sem rede.
	if _, err := fetcher.New(fetcher.Config{APIKey: cfg.API.Key}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration OK\n")
	fmt.Fprintf(out, "  endpoint: %s%s?start=%d&end=%d\n", cfg.API.BaseURL, fetcher.QuestionsPath, cfg.API.Start, cfg.API.End)
	fmt.Fprintf(out, "  timeout:  %s\n", cfg.API.Timeout)
	fmt.Fprintf(out, "  api key:  %s\n", redact(cfg.API.Key))
	fmt.Fprintf(out, "  output:   %s\n", cfg.Output)
	return nil
}

// redact mantém só os 4 últimos caracteres da credencial.
func redact(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
