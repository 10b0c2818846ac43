// Package refresh orquestra uma execução completa: busca as perguntas na API,
// grava o snapshot no destino configurado e devolve um resumo. É o núcleo
// comum do CLI e do handler Lambda.
package refresh

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/onet-interest-profiler/fetcher"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/metrics"
	"github.com/raywall/onet-interest-profiler/store"
	"github.com/rs/zerolog"
)

// Options reúne as dependências de uma execução. Apenas Config é obrigatória.
type Options struct {
	Config *config.Config
	// RunID correlaciona logs e métricas; vazio gera um UUID novo.
	RunID   string
	Logger  *zerolog.Logger
	Metrics metrics.Provider
	// HTTPClient substitui o cliente padrão do fetcher.
	HTTPClient *http.Client
	// Backend substitui o destino derivado de Config.Output.
	Backend store.Backend
}

// Summary descreve o resultado de uma execução bem-sucedida.
type Summary struct {
	RunID         string        `json:"run_id"`
	Questions     int           `json:"questions"`
	AnswerOptions int           `json:"answer_options"`
	Total         int           `json:"total"`
	DatasetID     string        `json:"dataset_id"`
	Location      string        `json:"location"`
	Bytes         int           `json:"bytes"`
	Duration      time.Duration `json:"duration_ns"`
}

// String é a linha impressa pelo CLI.
func (s Summary) String() string {
	return fmt.Sprintf("Saved %d questions with %d answer options to %s", s.Questions, s.AnswerOptions, s.Location)
}

// Run busca e grava o snapshot. Em caso de erro nada é gravado: o destino
// só é aberto depois que a busca e a validação terminam.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("refresh: config is required")
	}
	cfg := opts.Config
	began := time.Now()

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	base := zerolog.Nop()
	if opts.Logger != nil {
		base = *opts.Logger
	}
	log := base.With().Str("run_id", runID).Logger()

	provider := opts.Metrics
	if provider == nil {
		provider = &metrics.NoopProvider{}
	}

	client, err := fetcher.New(fetcher.Config{
		APIKey:     cfg.API.Key,
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		HTTPClient: opts.HTTPClient,
		Logger:     &log,
		Metrics:    provider,
	})
	if err != nil {
		return nil, err
	}

	qs, err := client.Fetch(ctx, cfg.API.Start, cfg.API.End)
	if err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = store.Open(ctx, cfg.Output, store.Options{Region: cfg.AWSRegion})
		if err != nil {
			return nil, err
		}
		if closer, ok := backend.(io.Closer); ok {
			defer closer.Close()
		}
	}

	data, err := store.Marshal(qs)
	if err != nil {
		return nil, err
	}
	if err := backend.Put(ctx, data); err != nil {
		log.Error().Err(err).Str("location", backend.Location()).Msg("falha ao gravar snapshot")
		return nil, err
	}
	_ = provider.Gauge(metrics.SaveBytes, float64(len(data)), nil)

	summary := &Summary{
		RunID:         runID,
		Questions:     qs.Len(),
		AnswerOptions: len(qs.AnswerOptions()),
		Total:         qs.Total(),
		DatasetID:     qs.DatasetID(),
		Location:      backend.Location(),
		Bytes:         len(data),
		Duration:      time.Since(began),
	}
	log.Info().
		Str("location", summary.Location).
		Int("bytes", summary.Bytes).
		Dur("duration", summary.Duration).
		Msg("snapshot gravado")
	return summary, nil
}
