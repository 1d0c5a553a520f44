package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interpreter/app/usecase"
	"interpreter/internal/domain/entity"
	"interpreter/internal/domain/repository"
)

type InterpreterHandler struct {
	explainService usecase.ExplainUsecase
	historyService usecase.HistoryUsecase
	logger         *slog.Logger
	upgrader       websocket.Upgrader

	// метрики
	reqDuration *prometheus.HistogramVec
	reqCount    *prometheus.CounterVec
	errCount    *prometheus.CounterVec
}

func NewInterpreterHandler(
	explainService usecase.ExplainUsecase,
	historyService usecase.HistoryUsecase,
	logger *slog.Logger,
	reg prometheus.Registerer,
) *InterpreterHandler {

	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)

	errCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	reg.MustRegister(reqDuration, reqCount, errCount)

	return &InterpreterHandler{
		explainService: explainService,
		historyService: historyService,
		logger:         logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		reqDuration: reqDuration,
		reqCount:    reqCount,
		errCount:    errCount,
	}
}

// Middleware для метрик
func (h *InterpreterHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		method := r.Method

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		duration := time.Since(start).Seconds()
		statusStr := strconv.Itoa(rw.status)

		h.reqCount.WithLabelValues(method, path).Inc()
		h.reqDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		if rw.status >= 400 {
			h.errCount.WithLabelValues(method, path, statusStr).Inc()
		}
	}
}

// withRecover is the top-level catch-all: no panic escapes a handler,
// it becomes a 500 with the stack text in the body.
func (h *InterpreterHandler) withRecover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic in handler", "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, entity.ErrorResponse{
					Error:     fmt.Sprint(rec),
					Traceback: string(debug.Stack()),
				})
			}
		}()
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *InterpreterHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/code_ai_interpreter", h.withMetrics(h.withRecover(h.handleExplain))).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)
	api.HandleFunc("/history", h.withMetrics(h.handleListHistory)).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", h.withMetrics(h.handleGetHistory)).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", h.withMetrics(h.handleDeleteHistory)).Methods(http.MethodDelete)
	api.HandleFunc("/explanations/stream", h.handleExplainStream)

	// Prometheus
	r.Handle("/metrics", promhttp.Handler())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, entity.ErrorResponse{Error: err.Error()})
}

// POST /code_ai_interpreter
func (h *InterpreterHandler) handleExplain(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, entity.ErrInvalidJSON)
		return
	}

	req, err := entity.ParseExplanationRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Multi() {
		explanations, err := h.explainService.ExplainLines(r.Context(), req.CodeLines, req.Language)
		if err != nil {
			h.writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entity.MultiResponse{Explanations: explanations})
		return
	}

	explanation, err := h.explainService.ExplainLine(r.Context(), req.CodeLine, req.Language)
	if err != nil {
		h.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entity.SingleResponse{Explanation: explanation})
}

func (h *InterpreterHandler) writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("explain failed", "path", r.URL.Path, "err", err)
	if errors.Is(err, usecase.ErrNotConfigured) {
		// fixed message, no traceback
		writeJSON(w, http.StatusInternalServerError, entity.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, entity.ErrorResponse{
		Error:     err.Error(),
		Traceback: string(debug.Stack()),
	})
}

// GET /api/v1/explanations/stream
// The client sends one request body over the socket; every line comes
// back as its own frame, followed by a done frame. Lines are always
// explained individually here so they can stream as they finish.
func (h *InterpreterHandler) handleExplainStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return
	}

	req, err := entity.ParseExplanationRequest(msg)
	if err != nil {
		_ = conn.WriteJSON(entity.ErrorResponse{Error: err.Error()})
		return
	}

	lines := req.CodeLines
	if len(lines) == 0 {
		lines = []string{req.CodeLine}
	}

	for i, line := range lines {
		text, err := h.explainService.ExplainLine(r.Context(), line, req.Language)
		if err != nil {
			if errors.Is(err, usecase.ErrNotConfigured) {
				_ = conn.WriteJSON(entity.ErrorResponse{Error: err.Error()})
				return
			}
			text = "Error: " + err.Error()
		}
		if err := conn.WriteJSON(entity.LineExplanation{LineNumber: i + 1, Explanation: text}); err != nil {
			return
		}
	}

	_ = conn.WriteJSON(map[string]bool{"done": true})
}

// GET /api/v1/history
func (h *InterpreterHandler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyService.Enabled() {
		writeError(w, http.StatusNotFound, errors.New("history is not configured"))
		return
	}

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	records, err := h.historyService.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("list history failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []*entity.ExplanationRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GET /api/v1/history/{id}
func (h *InterpreterHandler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyService.Enabled() {
		writeError(w, http.StatusNotFound, errors.New("history is not configured"))
		return
	}

	id := mux.Vars(r)["id"]
	rec, err := h.historyService.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get history record failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errors.New("record not found"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DELETE /api/v1/history/{id}
func (h *InterpreterHandler) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyService.Enabled() {
		writeError(w, http.StatusNotFound, errors.New("history is not configured"))
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.historyService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, errors.New("record not found"))
			return
		}
		h.logger.Error("delete history record failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// GET /api/v1/health
func (h *InterpreterHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"ok": true,
		"ts": time.Now().UTC(),
	}
	writeJSON(w, http.StatusOK, status)
}
