package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/craft-calculator/internal/calculator"
	"github.com/eugenenazirov/craft-calculator/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const (
	infeasibleAnswer    = "-1"
	defaultMaxBatchSize = 1000
	defaultHistoryLimit = 20
)

// Handler wires calculator and storage dependencies into HTTP handlers.
type Handler struct {
	calculator calculator.Calculator
	storage    storage.Storage
	logger     *zap.Logger

	clock        func() time.Time
	maxBatchSize int
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxBatchSize caps the number of targets accepted by the batch endpoint.
func WithMaxBatchSize(size int) HandlerOption {
	return func(h *Handler) {
		if size > 0 {
			h.maxBatchSize = size
		}
	}
}

// WithHandlerLogger sets the logger used for storage failures.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc calculator.Calculator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		storage:    store,
		logger:     zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
		maxBatchSize: defaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Target == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "target is required")
		return
	}
	target := *req.Target

	start := time.Now()
	result, err := h.calculator.Solve(target)
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, calculator.ErrInvalidTarget):
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		case errors.Is(err, calculator.ErrCannotFulfill):
			h.record(r.Context(), target, calculator.Result{}, false)
			suggestion := fmt.Sprintf("Targets must be even and at least 4; try %d", nearestFeasible(target))
			writeJSON(w, http.StatusUnprocessableEntity, infeasibleResponse{
				errorResponse: errorResponse{
					Error:      "Cannot craft exactly",
					Details:    err.Error(),
					Suggestion: suggestion,
				},
				Target: target,
				Answer: infeasibleAnswer,
			})
		default:
			writeInternalError(w, err)
		}
		return
	}

	h.record(r.Context(), target, result, true)

	resp := solveResponse{
		Target:            target,
		Min:               result.Min,
		Max:               result.Max,
		Answer:            result.String(),
		MinMix:            result.MinMix,
		MaxMix:            result.MaxMix,
		CalculationTimeNs: elapsed.Nanoseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Targets) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid targets", "targets must contain at least one value")
		return
	}
	if len(req.Targets) > h.maxBatchSize {
		writeError(w, http.StatusBadRequest, "Invalid targets",
			fmt.Sprintf("targets must contain at most %d values", h.maxBatchSize))
		return
	}

	answers := make([]string, 0, len(req.Targets))
	feasible := 0
	for _, target := range req.Targets {
		result, err := h.calculator.Solve(target)
		if err != nil {
			if errors.Is(err, calculator.ErrCannotFulfill) {
				h.record(r.Context(), target, calculator.Result{}, false)
			}
			answers = append(answers, infeasibleAnswer)
			continue
		}
		h.record(r.Context(), target, result, true)
		feasible++
		answers = append(answers, result.String())
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Cases:    len(req.Targets),
		Feasible: feasible,
		Answers:  answers,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid request", "limit must be a positive integer")
			return
		}
		limit = value
	}

	entries, err := h.storage.Recent(limit)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Entries: entries})
}

func (h *Handler) record(ctx context.Context, target int, result calculator.Result, feasible bool) {
	entry := storage.Entry{
		Target:   target,
		Feasible: feasible,
		SolvedAt: h.clock(),
	}
	if feasible {
		entry.Min = result.Min
		entry.Max = result.Max
	}
	if err := h.storage.Record(entry); err != nil {
		h.logger.Warn("failed to record history entry",
			zap.Int("target", target),
			zap.String("request_id", requestIDFromContext(ctx)),
			zap.Error(err),
		)
	}
}

// nearestFeasible returns the smallest reachable target not below target.
func nearestFeasible(target int) int {
	if target <= 4 {
		return 4
	}
	if target%2 != 0 {
		return target + 1
	}
	return target
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type solveRequest struct {
	Target *int `json:"target"`
}

type batchRequest struct {
	Targets []int `json:"targets"`
}

type solveResponse struct {
	Target            int            `json:"target"`
	Min               int            `json:"min"`
	Max               int            `json:"max"`
	Answer            string         `json:"answer"`
	MinMix            calculator.Mix `json:"minMix"`
	MaxMix            calculator.Mix `json:"maxMix"`
	CalculationTimeNs int64          `json:"calculationTimeNs"`
}

type batchResponse struct {
	Cases    int      `json:"cases"`
	Feasible int      `json:"feasible"`
	Answers  []string `json:"answers"`
}

type historyResponse struct {
	Entries []storage.Entry `json:"entries"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type infeasibleResponse struct {
	errorResponse
	Target int    `json:"target"`
	Answer string `json:"answer"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
