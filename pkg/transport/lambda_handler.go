package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/metrics"
	"github.com/raywall/onet-interest-profiler/pkg/refresh"
	"github.com/rs/zerolog"
)

const (
	HeaderCorrelationID = "x-correlation-id"
)

// RefreshFunc é a execução disparada pelo handler (refresh.Run em produção).
type RefreshFunc func(ctx context.Context, opts refresh.Options) (*refresh.Summary, error)

// LambdaHandler dispara o refresh a partir de eventos Lambda: agendamentos do
// EventBridge ou chamadas do API Gateway.
type LambdaHandler struct {
	cfg     *config.Config
	log     zerolog.Logger
	metrics metrics.Provider
	run     RefreshFunc
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(cfg *config.Config, logger zerolog.Logger, provider metrics.Provider) *LambdaHandler {
	return &LambdaHandler{cfg: cfg, log: logger, metrics: provider, run: refresh.Run}
}

// HandleSchedule processa um evento agendado. O ID do evento vira o run_id.
func (h *LambdaHandler) HandleSchedule(ctx context.Context, ev events.CloudWatchEvent) (*refresh.Summary, error) {
	corrID := ev.ID
	if corrID == "" {
		corrID = uuid.NewString()
	}
	return h.execute(ctx, corrID, ev.Source)
}

// HandleHTTP processa uma chamada manual via API Gateway e devolve o resumo
// em JSON. Erros do refresh viram status HTTP, não erros de invocação.
func (h *LambdaHandler) HandleHTTP(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := req.Headers[HeaderCorrelationID]
	if corrID == "" {
		corrID = req.Headers["X-Correlation-Id"]
	}
	if corrID == "" {
		corrID = uuid.NewString()
	}

	headers := map[string]string{
		"Content-Type":      "application/json",
		HeaderCorrelationID: corrID,
	}

	summary, err := h.execute(ctx, corrID, "apigateway")
	if err != nil {
		body, _ := json.Marshal(map[string]string{"error": err.Error(), "kind": errs.Kind(err)})
		return events.APIGatewayProxyResponse{StatusCode: StatusFor(err), Headers: headers, Body: string(body)}, nil
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Headers: headers}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: headers, Body: string(body)}, nil
}

func (h *LambdaHandler) execute(ctx context.Context, corrID, source string) (*refresh.Summary, error) {
	start := time.Now()

	// Configura Logger Contextual
	logger := h.log.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)

	summary, err := h.run(ctx, refresh.Options{
		Config:  h.cfg,
		RunID:   corrID,
		Logger:  &logger,
		Metrics: h.metrics,
	})

	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Error().Err(err).Str("source", source).Int64("latency_ms", duration).Msg("lambda refresh failed")
		return nil, err
	}
	logger.Info().
		Str("source", source).
		Int("questions", summary.Questions).
		Str("location", summary.Location).
		Int64("latency_ms", duration).
		Msg("lambda refresh completed")
	return summary, nil
}

// StatusFor traduz a categoria do erro em status HTTP.
func StatusFor(err error) int {
	switch errs.Kind(err) {
	case "upstream", "parse", "validation":
		return http.StatusBadGateway
	case "network":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
