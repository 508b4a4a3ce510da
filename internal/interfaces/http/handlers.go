package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rkotak/sectorscan/internal/data"
	"github.com/rkotak/sectorscan/internal/scan"
	"github.com/rkotak/sectorscan/internal/scoring"
	"github.com/rkotak/sectorscan/internal/universe"
)

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type handlers struct {
	analyzer *scan.Analyzer
	provider data.Provider
	started  time.Time
}

func newHandlers(analyzer *scan.Analyzer, provider data.Provider) *handlers {
	return &handlers{
		analyzer: analyzer,
		provider: provider,
		started:  time.Now().UTC(),
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestID(r),
		Timestamp: time.Now().UTC(),
	})
}

// Health reports liveness and uptime.
func (h *handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"uptime":    time.Since(h.started).String(),
		"timestamp": time.Now().UTC(),
	})
}

// Universe lists every registered sector.
func (h *handlers) Universe(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"benchmark": universe.Benchmark(),
		"sectors":   universe.RankableSectors(),
	})
}

// Companies lists the top constituents of one sector.
func (h *handlers) Companies(w http.ResponseWriter, r *http.Request) {
	sector := mux.Vars(r)["sector"]
	list, ok := universe.Companies(sector)
	if !ok {
		h.writeError(w, r, http.StatusNotFound, "sector_not_found", "no companies registered for sector "+sector)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sector":    sector,
		"companies": list,
	})
}

// Scan runs one scan in the requested mode over the latest snapshot group.
func (h *handlers) Scan(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["mode"]
	mode, ok := scoring.ParseMode(name)
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "unknown_mode", "unknown scan mode "+name)
		return
	}

	snaps, err := h.provider.Latest(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusBadGateway, "provider_failed", err.Error())
		return
	}

	group, err := h.runScan(mode, snaps)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scoring.ErrNothingRanked) {
			status = http.StatusUnprocessableEntity
		}
		h.writeError(w, r, status, "scan_failed", err.Error())
		return
	}

	if top := queryInt(r, "top", 0); top > 0 {
		group.Results = group.TopN(top)
	}
	h.writeJSON(w, http.StatusOK, group)
}

// Trend recomputes the score series across history, or the per-snapshot
// top performers when a top parameter is given.
func (h *handlers) Trend(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["mode"]
	mode, ok := scoring.ParseMode(name)
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "unknown_mode", "unknown scan mode "+name)
		return
	}

	history, err := h.provider.History(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusBadGateway, "provider_failed", err.Error())
		return
	}

	if top := queryInt(r, "top", 0); top > 0 {
		tops, err := h.analyzer.HistoricalTop(r.Context(), history, mode, top)
		if err != nil {
			h.writeError(w, r, http.StatusInternalServerError, "trend_failed", err.Error())
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"mode": mode.String(),
			"top":  tops,
		})
		return
	}

	series, err := h.analyzer.Trend(r.Context(), history, mode)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "trend_failed", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":   mode.String(),
		"series": series,
	})
}

// NotFound handles unknown routes.
func (h *handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found", "the requested endpoint does not exist")
}

func (h *handlers) runScan(mode scoring.Mode, snaps []scoring.Snapshot) (*scan.GroupResult, error) {
	if mode == scoring.Reversal {
		return h.analyzer.Reversal(snaps)
	}
	return h.analyzer.Momentum(snaps)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
