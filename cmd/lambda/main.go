package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/logger"
	"github.com/raywall/onet-interest-profiler/pkg/metrics"
	"github.com/raywall/onet-interest-profiler/pkg/transport"
)

// TriggerEnv escolhe o tipo de evento tratado: "schedule" (padrão) ou "http".
const TriggerEnv = "LAMBDA_TRIGGER"

var (
	// Variáveis injetáveis para mocking
	lambdaStarter = func(handler interface{}) { lambda.Start(handler) }
	configOptions = config.Options{SkipDotEnv: true}
)

func main() {
	if err := run(context.Background(), os.Getenv(TriggerEnv)); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

// run contém a lógica principal testável. A configuração é carregada uma
// vez por container (cold start) e reaproveitada entre invocações.
func run(ctx context.Context, trigger string) error {
	cfg, err := config.Load(ctx, configOptions)
	if err != nil {
		return err
	}

	// No Lambda o CloudWatch já agrega stdout/stderr; JSON facilita a busca.
	cfg.Logging.Format = "json"
	log := logger.Configure(cfg.Logging, os.Stdout)

	provider, err := metrics.Setup(cfg.Metrics)
	if err != nil {
		return err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}

	handler := transport.NewLambdaHandler(cfg, log, provider)
	switch trigger {
	case "", "schedule":
		lambdaStarter(handler.HandleSchedule)
	case "http":
		lambdaStarter(handler.HandleHTTP)
	default:
		return fmt.Errorf("%s desconhecido: %q (use schedule ou http)", TriggerEnv, trigger)
	}
	return nil
}
