package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus ou Logging sem alterar a lógica de negócio.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelo fetcher e pelo refresh.
const (
	FetchDuration  = "fetch.duration_ms"
	FetchQuestions = "fetch.questions"
	FetchErrors    = "fetch.errors"
	SaveBytes      = "save.bytes"
)
