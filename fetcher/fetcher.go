package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/metrics"
	"github.com/raywall/onet-interest-profiler/schema"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api-v2.onetcenter.org"
	QuestionsPath  = "/mnm/interestprofiler/questions"
	// DatasetID identifica a versão deste snapshot, independente do que a API
	// reporta.
	DatasetID = "DATA-onet-ip60-v1"
	// APIKeyEnv é a variável consultada quando nenhuma credencial é informada.
	APIKeyEnv      = "ONET_API_KEY"
	UserAgent      = "onet-interest-profiler/1.0 (bot)"
	DefaultTimeout = 30 * time.Second
	DefaultStart   = 1
	DefaultEnd     = 60

	// maxErrorBody limita o trecho da resposta guardado em UpstreamError.
	maxErrorBody = 512
)

// Config reúne as dependências do Client. Apenas APIKey é obrigatória.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// HTTPClient permite injetar transporte customizado (testes, proxies).
	HTTPClient *http.Client
	Logger     *zerolog.Logger
	Metrics    metrics.Provider
}

// Client busca as perguntas do Interest Profiler.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
	metrics metrics.Provider
}

// New valida a configuração e cria o Client. A ausência de credencial falha
// aqui, antes de qualquer chamada de rede.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &errs.ConfigurationError{
			Key:    APIKeyEnv,
			Reason: "API key is required; set it in the environment or pass it explicitly",
		}
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    cfg.HTTPClient,
		log:     zerolog.Nop(),
		metrics: cfg.Metrics,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}
	if c.metrics == nil {
		c.metrics = &metrics.NoopProvider{}
	}
	return c, nil
}

// ResolveAPIKey devolve a credencial explícita ou, na falta dela, o valor de
// ONET_API_KEY obtido por lookup.
func ResolveAPIKey(explicit string, lookup func(string) (string, bool)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if lookup != nil {
		if v, ok := lookup(APIKeyEnv); ok && v != "" {
			return v, nil
		}
	}
	return "", &errs.ConfigurationError{
		Key:    APIKeyEnv,
		Reason: "environment variable is required when no API key is passed",
	}
}

// FetchQuestions é o atalho para uso simples: resolve a credencial pelo
// ambiente do processo e usa URL e timeout padrão.
func FetchQuestions(ctx context.Context, apiKey string, start, end int) (*schema.QuestionSet, error) {
	key, err := ResolveAPIKey(apiKey, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	c, err := New(Config{APIKey: key})
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, start, end)
}

// questionsResponse espelha o corpo da API. Ponteiros distinguem chave
// ausente de lista vazia.
type questionsResponse struct {
	Question *[]struct {
		Index int    `json:"index"`
		Area  string `json:"area"`
		Text  string `json:"text"`
	} `json:"question"`
	AnswerOption *[]struct {
		Value int    `json:"value"`
		Name  string `json:"name"`
	} `json:"answer_option"`
	Total *int `json:"total"`
}

// Fetch executa um único GET e devolve o conjunto validado. Não há retry:
// o chamador decide se repete.
func (c *Client) Fetch(ctx context.Context, start, end int) (*schema.QuestionSet, error) {
	began := time.Now()
	qs, err := c.fetch(ctx, start, end)
	elapsed := float64(time.Since(began).Milliseconds())

	_ = c.metrics.Histogram(metrics.FetchDuration, elapsed, nil)
	if err != nil {
		kind := errs.Kind(err)
		_ = c.metrics.Count(metrics.FetchErrors, 1, []string{"kind:" + kind})
		c.log.Error().Err(err).Str("kind", kind).Int("start", start).Int("end", end).Msg("falha ao buscar perguntas")
		return nil, err
	}

	_ = c.metrics.Gauge(metrics.FetchQuestions, float64(qs.Len()), nil)
	c.log.Info().
		Int("questions", qs.Len()).
		Int("answer_options", len(qs.AnswerOptions())).
		Int("total", qs.Total()).
		Float64("latency_ms", elapsed).
		Msg("perguntas obtidas")
	return qs, nil
}

func (c *Client) fetch(ctx context.Context, start, end int) (*schema.QuestionSet, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + QuestionsPath
	params := url.Values{}
	params.Set("start", strconv.Itoa(start))
	params.Set("end", strconv.Itoa(end))
	fullURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &errs.ConfigurationError{Key: "base_url", Reason: err.Error()}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", endpoint).Int("start", start).Int("end", end).Msg("chamando O*NET")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Op: http.MethodGet, URL: endpoint, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.NetworkError{Op: "read body", URL: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.UpstreamError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	return decode(body, endpoint)
}

func decode(body []byte, source string) (*schema.QuestionSet, error) {
	var payload questionsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &errs.ParseError{Source: source, Err: err}
	}
	switch {
	case payload.Question == nil:
		return nil, &errs.ParseError{Source: source, Err: errors.New(`missing key "question"`)}
	case payload.AnswerOption == nil:
		return nil, &errs.ParseError{Source: source, Err: errors.New(`missing key "answer_option"`)}
	case payload.Total == nil:
		return nil, &errs.ParseError{Source: source, Err: errors.New(`missing key "total"`)}
	}

	questions := make([]schema.Question, 0, len(*payload.Question))
	for _, q := range *payload.Question {
		question, err := schema.NewQuestion(q.Index, Capitalize(q.Area), q.Text)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	options := make([]schema.AnswerOption, 0, len(*payload.AnswerOption))
	for _, o := range *payload.AnswerOption {
		opt, err := schema.NewAnswerOption(o.Value, o.Name)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	return schema.NewQuestionSet(questions, options, *payload.Total, DatasetID), nil
}

// Capitalize deixa a primeira letra maiúscula e o restante minúsculo
// ("SOCIAL" -> "Social").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// unwrapURLError remove o *url.Error, que repete método e URL na mensagem.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// String facilita logs e mensagens do CLI.
func (c *Client) String() string {
	return fmt.Sprintf("fetcher(%s%s, timeout=%s)", c.baseURL, QuestionsPath, c.timeout)
}
