package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog"

	"github.com/wellgrid/hbp-api/internal/analysis"
	"github.com/wellgrid/hbp-api/internal/metrics"
	"github.com/wellgrid/hbp-api/internal/summary"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type ReportHandler struct {
	wells  *WellHandler
	logger zerolog.Logger
}

func NewReportHandler(wells *WellHandler, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{wells: wells, logger: logger}
}

// EntryForm serves the landing page with the API number entry form.
func (h *ReportHandler) EntryForm(w http.ResponseWriter, r *http.Request) {
	h.wells.metrics.Increment(metrics.RequestCount)
	h.render(w, "entry_form.html", nil)
}

// Report renders the well group report. API numbers arrive either as
// the api_nums form field (POST) or the api_nums query parameter (GET),
// comma separated.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	h.wells.metrics.Increment(metrics.RequestCount)

	raw := r.URL.Query().Get("api_nums")
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		raw = r.PostFormValue("api_nums")
	}

	groupSummary, status, err := h.wells.buildGroupSummary(r.Context(), splitAPINums(raw))
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	h.render(w, "report.html", buildReportData(groupSummary))
}

func (h *ReportHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reportTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

type gapSection struct {
	Description  string
	LongestDays  int
	LongestHuman string
	Ranges       []string
}

type reportData struct {
	Wells        []string
	WellCount    int
	EarliestDate string
	LatestDate   string
	Gaps         []gapSection
	GeneratedAt  string
}

func buildReportData(s summary.GroupSummary) reportData {
	data := reportData{
		WellCount:    s.WellCount,
		EarliestDate: s.EarliestDate,
		LatestDate:   s.LatestDate,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04 MST"),
	}
	for _, well := range s.Wells {
		data.Wells = append(data.Wells, well.APINum+" ("+well.WellName+")")
	}
	// Stable section order: strict first, then lenient.
	for _, category := range []string{analysis.CategoryNoProdIgnoreShutIn, analysis.CategoryNoProdButShutInCounts} {
		gapSet, ok := s.Gaps[category]
		if !ok {
			continue
		}
		section := gapSection{
			Description:  gapSet.Description,
			LongestDays:  gapSet.LongestDays,
			LongestHuman: humanDays(gapSet.LongestDays),
		}
		for _, dr := range gapSet.Ranges {
			section.Ranges = append(section.Ranges, dr.Display)
		}
		data.Gaps = append(data.Gaps, section)
	}
	return data
}

// humanDays renders a day count like "1 year 3 weeks".
func humanDays(days int) string {
	if days == 0 {
		return "none"
	}
	d := time.Duration(days) * 24 * time.Hour
	return durafmt.Parse(d).LimitFirstN(2).String()
}
