package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger baseando-se na configuração carregada.
// out nil equivale a os.Stderr, deixando o stdout livre para o resumo do CLI.
func Configure(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if out == nil {
		out = os.Stderr
	}

	// JSON para produção, Console "bonito" para uso local
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Str("service", "onet-interest-profiler").
		Logger()
}
