package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mahendraputra/idx-radar/internal/dataset"
	"github.com/mahendraputra/idx-radar/internal/derive"
	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// Handler serves the read-only dataset views.
type Handler struct {
	cache       *dataset.Cache
	defaultTopN int
}

// NewHandler creates a handler over the dataset cache.
func NewHandler(cache *dataset.Cache, defaultTopN int) *Handler {
	if defaultTopN <= 0 {
		defaultTopN = 25
	}
	return &Handler{cache: cache, defaultTopN: defaultTopN}
}

// NewRouter builds the API router with the standard middleware chain.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()

	chain := ChainMiddleware(
		RequestIDMiddleware(),
		CORSMiddleware(),
		LoggingMiddleware(),
		RecoveryMiddleware(),
	)
	router.Use(mux.MiddlewareFunc(chain))

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/records", h.ListRecords).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/records/latest", h.LatestRecords).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/toplist", h.Toplist).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/toplist/export", h.ExportToplist).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/stocks/{code}/chart", h.Chart).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/sectors", h.Sectors).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/reload", h.Reload).Methods(http.MethodPost, http.MethodOptions)

	return router
}

// ListRecords handles GET /api/v1/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	snap, stale := h.snapshot(w, r)
	if snap == nil {
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := derive.FilterByCriteria(snap.Records, criteria)
	respondWithJSON(w, http.StatusOK, recordsResponse(snap, records, stale))
}

// LatestRecords handles GET /api/v1/records/latest
func (h *Handler) LatestRecords(w http.ResponseWriter, r *http.Request) {
	snap, stale := h.snapshot(w, r)
	if snap == nil {
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := derive.FilterByCriteria(snap.Latest, criteria)
	respondWithJSON(w, http.StatusOK, recordsResponse(snap, records, stale))
}

// Toplist handles GET /api/v1/toplist
func (h *Handler) Toplist(w http.ResponseWriter, r *http.Request) {
	snap, stale := h.snapshot(w, r)
	if snap == nil {
		return
	}

	metric, n, ok := h.toplistParams(w, r)
	if !ok {
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	eligible := derive.FilterByCriteria(snap.Latest, criteria)
	rankings := derive.RankTopN(eligible, metric, n)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"metric":    metric,
		"rankings":  rankings,
		"count":     len(rankings),
		"loaded_at": snap.LoadedAt,
		"stale":     stale != "",
	})
}

// ExportToplist handles GET /api/v1/toplist/export
func (h *Handler) ExportToplist(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.snapshot(w, r)
	if snap == nil {
		return
	}

	metric, n, ok := h.toplistParams(w, r)
	if !ok {
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	eligible := derive.FilterByCriteria(snap.Latest, criteria)
	rankings := derive.RankTopN(eligible, metric, n)

	switch r.URL.Query().Get("format") {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="toplist.csv"`)
		if err := WriteToplistCSV(w, rankings); err != nil {
			logger.Error("Toplist CSV export failed", logger.ErrorField(err))
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="toplist.xlsx"`)
		if err := WriteToplistXLSX(w, rankings); err != nil {
			logger.Error("Toplist XLSX export failed", logger.ErrorField(err))
		}
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown export format")
	}
}

// Chart handles GET /api/v1/stocks/{code}/chart
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.snapshot(w, r)
	if snap == nil {
		return
	}

	code := strings.ToUpper(mux.Vars(r)["code"])
	payload := BuildChartPayload(snap.Records, code)
	if len(payload.Dates) == 0 {
		respondWithError(w, http.StatusNotFound, "No data for stock "+code)
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}

// Sectors handles GET /api/v1/sectors
func (h *Handler) Sectors(w http.ResponseWriter, r *http.Request) {
	snap, stale := h.snapshot(w, r)
	if snap == nil {
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sectors":   derive.SectorCounts(snap.Latest),
		"loaded_at": snap.LoadedAt,
		"stale":     stale != "",
	})
}

// Reload handles POST /api/v1/reload, the manual reload trigger. On
// failure the previous snapshot stays installed and the error is
// surfaced.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cache.Reload(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if snap == nil {
			status = http.StatusServiceUnavailable
		}
		respondWithError(w, status, "Reload failed: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"rows":      len(snap.Records),
		"stocks":    len(snap.Latest),
		"loaded_at": snap.LoadedAt,
	})
}

// snapshot fetches the current snapshot, writing the error response
// itself when nothing can be served. The second return value carries
// the reload error message when stale data is being served.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (*dataset.Snapshot, string) {
	snap, err := h.cache.Get(r.Context())
	if snap == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Dataset unavailable: "+err.Error())
		return nil, ""
	}
	if err != nil {
		// Stale snapshot with a failed refresh behind it: still served.
		return snap, err.Error()
	}
	return snap, ""
}

func (h *Handler) toplistParams(w http.ResponseWriter, r *http.Request) (models.RankMetric, int, bool) {
	metric := models.RankMetric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = models.MetricScore
	}
	if !metric.Valid() {
		respondWithError(w, http.StatusBadRequest, models.ErrInvalidMetric.Error())
		return "", 0, false
	}

	n := h.defaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid n")
			return "", 0, false
		}
		n = parsed
	}

	return metric, n, true
}

func recordsResponse(snap *dataset.Snapshot, records []models.EnrichedRecord, stale string) map[string]interface{} {
	resp := map[string]interface{}{
		"records":   records,
		"count":     len(records),
		"loaded_at": snap.LoadedAt,
		"stale":     stale != "",
	}
	if stale != "" {
		resp["error"] = stale
	}
	return resp
}

// parseCriteria maps query parameters onto filter categories. Absent
// parameters leave their category inactive; a malformed value is an
// error rather than a silently inactive filter.
func parseCriteria(r *http.Request) (derive.Criteria, error) {
	q := r.URL.Query()
	c := derive.Criteria{
		Week:         q.Get("week"),
		Sectors:      splitParam(q.Get("sectors")),
		Signals:      splitParam(q.Get("signals")),
		ForeignFlows: splitParam(q.Get("flows")),
	}
	// Stock codes are upper case throughout the dataset.
	for _, code := range splitParam(q.Get("stocks")) {
		c.Stocks = append(c.Stocks, strings.ToUpper(code))
	}

	if raw := q.Get("date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
		}
		c.Date = &t
	}
	if raw := q.Get("unusual"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c, fmt.Errorf("invalid unusual %q", raw)
		}
		c.UnusualOnly = v
	}
	if raw := q.Get("min_score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c, fmt.Errorf("invalid min_score %q", raw)
		}
		c.MinScore = &v
	}
	if raw := q.Get("min_volume_factor"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, fmt.Errorf("invalid min_volume_factor %q", raw)
		}
		c.MinVolumeFactor = &v
	}

	return c, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
