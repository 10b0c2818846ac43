package emulator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/raywall/onet-interest-profiler/fetcher"
	"github.com/raywall/onet-interest-profiler/schema"
	"github.com/raywall/onet-interest-profiler/tools/emulator/types"
	"github.com/rs/zerolog"
)

// shutdownTimeout limita a espera por requisições em andamento no Start.
const shutdownTimeout = 5 * time.Second

// Server emula o endpoint de perguntas do O*NET Web Services a partir de um
// QuestionSet em memória.
type Server struct {
	cfg  Config
	page types.QuestionsPage
	log  zerolog.Logger
}

// New prepara o servidor. O conjunto é convertido uma única vez para o
// formato da API; o QuestionSet não é retido.
func New(cfg Config, qs *schema.QuestionSet, logger *zerolog.Logger) *Server {
	s := &Server{cfg: cfg, log: zerolog.Nop()}
	if logger != nil {
		s.log = *logger
	}

	s.page = types.QuestionsPage{
		Total:        qs.Total(),
		Question:     make([]types.Question, 0, qs.Len()),
		AnswerOption: make([]types.AnswerOption, 0, len(qs.AnswerOptions())),
	}
	for _, q := range qs.Questions() {
		area := q.Area()
		if cfg.LowercaseAreas {
			area = strings.ToLower(area)
		}
		s.page.Question = append(s.page.Question, types.Question{Index: q.Index(), Area: area, Text: q.Text()})
	}
	for _, o := range qs.AnswerOptions() {
		s.page.AnswerOption = append(s.page.AnswerOption, types.AnswerOption{Value: o.Value(), Name: o.Name()})
	}
	return s
}

// Router monta as rotas. Exposto para uso com httptest.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc(fetcher.QuestionsPath, s.handleQuestions).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		sendResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendResponse(w, http.StatusNotFound, types.ErrorBody{Error: "Not found"})
	})
	router.Use(s.logRequests)
	return router
}

// Start sobe o servidor na porta configurada e bloqueia até ctx ser
// cancelado ou o listener falhar.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Int("port", s.cfg.Port).Int("questions", len(s.page.Question)).Msg("emulador iniciado")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("erro no servidor porta %d: %w", s.cfg.Port, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("encerrando emulador")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(began)).
			Msg("requisição")
	})
}
