package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raywall/onet-interest-profiler/envloader"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/logger"
	"github.com/raywall/onet-interest-profiler/store"
	"github.com/raywall/onet-interest-profiler/tools/emulator"
)

// Injetável para testes
var serverStarter = func(ctx context.Context, s *emulator.Server) error {
	return s.Start(ctx)
}

func main() {
	if err := envloader.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.LookupEnv)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run contém a lógica de orquestração
func run(ctx context.Context, lookup envloader.LookupFunc) error {
	var logCfg config.LoggingConf
	if err := envloader.LoadWithLookup(&logCfg, lookup); err != nil {
		return err
	}
	log := logger.Configure(logCfg, nil)

	cfg, err := emulator.LoadConfig(lookup)
	if err != nil {
		return err
	}

	region, _ := lookup("AWS_REGION")
	backend, err := store.Open(ctx, cfg.DataSource, store.Options{Region: region})
	if err != nil {
		return err
	}
	qs, err := store.LoadFrom(ctx, backend)
	if err != nil {
		return fmt.Errorf("falha ao carregar perguntas de %s: %w", backend.Location(), err)
	}

	log.Info().
		Str("source", backend.Location()).
		Int("questions", qs.Len()).
		Bool("auth", cfg.APIKey != "").
		Msg("snapshot carregado")

	return serverStarter(ctx, emulator.New(cfg, qs, &log))
}
