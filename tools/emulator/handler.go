package emulator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/raywall/onet-interest-profiler/tools/emulator/types"
)

// handleQuestions responde como a API real:
//   - 401 quando X-API-Key não confere,
//   - 422 quando start/end não são inteiros válidos,
//   - 200 com as perguntas cujo index está em [start, end].
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Latency > 0 {
		select {
		case <-time.After(s.cfg.Latency):
		case <-r.Context().Done():
			return
		}
	}

	if s.cfg.APIKey != "" && r.Header.Get("X-API-Key") != s.cfg.APIKey {
		sendResponse(w, http.StatusUnauthorized, types.ErrorBody{Error: "Invalid or missing API key"})
		return
	}

	query := r.URL.Query()
	start, err := intParam(query.Get("start"), 1)
	if err != nil {
		sendResponse(w, http.StatusUnprocessableEntity, types.ErrorBody{Error: err.Error()})
		return
	}
	end, err := intParam(query.Get("end"), len(s.page.Question))
	if err != nil {
		sendResponse(w, http.StatusUnprocessableEntity, types.ErrorBody{Error: err.Error()})
		return
	}
	if start < 1 || end < start {
		sendResponse(w, http.StatusUnprocessableEntity, types.ErrorBody{
			Error: fmt.Sprintf("invalid range start=%d end=%d", start, end),
		})
		return
	}

	page := types.QuestionsPage{
		Start:        start,
		End:          end,
		Total:        s.page.Total,
		Question:     []types.Question{},
		AnswerOption: s.page.AnswerOption,
	}
	for _, q := range s.page.Question {
		if q.Index >= start && q.Index <= end {
			page.Question = append(page.Question, q)
		}
	}
	sendResponse(w, http.StatusOK, page)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter must be an integer, got %q", raw)
	}
	return v, nil
}

func sendResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		// Depois do WriteHeader não há como sinalizar falha ao cliente.
		_ = json.NewEncoder(w).Encode(body)
	}
}
