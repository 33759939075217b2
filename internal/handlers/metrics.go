package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/wellgrid/hbp-api/internal/metrics"
)

// WellCounter reports how many well records sit in the database cache.
type WellCounter interface {
	CachedWellCount(ctx context.Context) (int, error)
}

type MetricsHandler struct {
	registry *metrics.Registry
	db       *sql.DB
	wells    WellCounter
}

func NewMetricsHandler(registry *metrics.Registry, db *sql.DB, wells WellCounter) *MetricsHandler {
	return &MetricsHandler{registry: registry, db: db, wells: wells}
}

// Metrics reports process counters. Requests to this endpoint do not
// count towards request_count.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		http.Error(w, "Database could not be reached", http.StatusInternalServerError)
		return
	}
	cachedWells, err := h.wells.CachedWellCount(r.Context())
	if err != nil {
		http.Error(w, "Failed to count cached well records", http.StatusInternalServerError)
		return
	}

	wellRecords := h.registry.Get(metrics.WellRecordCount)
	totalAccessMS := h.registry.Get(metrics.TotalRecordAccessMS)
	var avgAccessMS int64
	if wellRecords != 0 {
		avgAccessMS = totalAccessMS / wellRecords
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"uptime":                    h.registry.Uptime().String(),
		"requests":                  h.registry.Get(metrics.RequestCount),
		"well_records_pulled":       wellRecords,
		"well_records_cached":       cachedWells,
		"avg_record_access_time_ms": avgAccessMS,
	})
}
