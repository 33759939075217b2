package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/wellgrid/hbp-api/internal/analysis"
	"github.com/wellgrid/hbp-api/internal/apinum"
	"github.com/wellgrid/hbp-api/internal/metrics"
	"github.com/wellgrid/hbp-api/internal/models"
	"github.com/wellgrid/hbp-api/internal/summary"
)

// RecordService is the slice of the records service the well handlers
// need; tests substitute a stub.
type RecordService interface {
	GetWellHistory(ctx context.Context, apiNum, wellName string) (*models.WellHistory, error)
	GetWellGroup(ctx context.Context, apiNums []string) (*analysis.WellGroup, error)
	EvictWell(ctx context.Context, apiNum string) error
}

type WellHandler struct {
	svc     RecordService
	metrics *metrics.Registry
	opts    summary.Options
	logger  zerolog.Logger
}

func NewWellHandler(svc RecordService, reg *metrics.Registry, opts summary.Options, logger zerolog.Logger) *WellHandler {
	return &WellHandler{svc: svc, metrics: reg, opts: opts, logger: logger}
}

// GetWell serves the per-well summary: the well's identity, reporting
// span, and its gaps under both shut-in policies.
func (h *WellHandler) GetWell(w http.ResponseWriter, r *http.Request) {
	h.metrics.Increment(metrics.RequestCount)
	apiNum := mux.Vars(r)["api_num"]
	if !apinum.Valid(apiNum) {
		http.Error(w, "Invalid API number: "+apiNum, http.StatusBadRequest)
		return
	}

	started := time.Now()
	history, err := h.svc.GetWellHistory(r.Context(), apiNum, "")
	if err != nil {
		h.logger.Error().Err(err).Str("api_num", apiNum).Msg("failed to get well history")
		http.Error(w, "Failed to collect well records: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.metrics.Increment(metrics.WellRecordCount)
	h.metrics.AddTo(metrics.TotalRecordAccessMS, time.Since(started).Milliseconds())

	writeJSON(w, summary.SummarizeWell(history, h.opts))
}

// DeleteWell evicts a well's cached record so the next request pulls a
// fresh copy from the state's records.
func (h *WellHandler) DeleteWell(w http.ResponseWriter, r *http.Request) {
	h.metrics.Increment(metrics.RequestCount)
	apiNum := mux.Vars(r)["api_num"]
	if !apinum.Valid(apiNum) {
		http.Error(w, "Invalid API number: "+apiNum, http.StatusBadRequest)
		return
	}
	if err := h.svc.EvictWell(r.Context(), apiNum); err != nil {
		h.logger.Error().Err(err).Str("api_num", apiNum).Msg("failed to evict well record")
		http.Error(w, "Failed to evict well record: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGroup serves the group summary for a comma-separated list of API
// numbers: group-wide gaps for both policies plus each member's own
// summary.
func (h *WellHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	h.metrics.Increment(metrics.RequestCount)
	apiNums := splitAPINums(mux.Vars(r)["api_nums"])
	groupSummary, status, err := h.buildGroupSummary(r.Context(), apiNums)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, groupSummary)
}

// buildGroupSummary runs the whole pipeline for a group request:
// validation, concurrent collection, aggregation, and summary shaping.
func (h *WellHandler) buildGroupSummary(ctx context.Context, apiNums []string) (summary.GroupSummary, int, error) {
	for _, n := range apiNums {
		if !apinum.Valid(n) {
			return summary.GroupSummary{}, http.StatusBadRequest, errors.New("Invalid API number: " + n)
		}
	}

	started := time.Now()
	group, err := h.svc.GetWellGroup(ctx, apiNums)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyGroup) {
			return summary.GroupSummary{}, http.StatusBadRequest, errors.New("At least one API number is required")
		}
		h.logger.Error().Err(err).Strs("api_nums", apiNums).Msg("failed to get well group")
		return summary.GroupSummary{}, http.StatusBadGateway, errors.New("Failed to collect well records: " + err.Error())
	}
	h.metrics.AddTo(metrics.WellRecordCount, int64(len(group.Wells)))
	h.metrics.AddTo(metrics.TotalRecordAccessMS, time.Since(started).Milliseconds())

	gaps, err := group.Aggregate()
	if err != nil {
		return summary.GroupSummary{}, http.StatusBadRequest, err
	}
	return summary.SummarizeGroup(group, gaps, h.opts), http.StatusOK, nil
}

func splitAPINums(raw string) []string {
	var nums []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			nums = append(nums, part)
		}
	}
	return nums
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(v)
}
