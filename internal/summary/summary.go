// Package summary shapes analysis results into the structures served
// as JSON and rendered into reports.
package summary

import (
	"fmt"
	"strings"

	"github.com/wellgrid/hbp-api/internal/analysis"
	"github.com/wellgrid/hbp-api/internal/models"
)

// NoProduction is shown in place of a date when a well never reported
// any production.
const NoProduction = "No production reported"

// Options controls how date ranges are rendered.
type Options struct {
	BetweenDates string
	ShowDays     bool
	ShowMonths   bool
}

type DateRangeSummary struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Days    int    `json:"days"`
	Months  int    `json:"months"`
	Display string `json:"display"`
}

type GapSetSummary struct {
	Description string             `json:"description"`
	LongestDays int                `json:"longest_days"`
	Ranges      []DateRangeSummary `json:"ranges"`
}

type WellSummary struct {
	APINum          string                   `json:"api_num"`
	WellName        string                   `json:"well_name"`
	FirstProduction string                   `json:"first_production"`
	LastProduction  string                   `json:"last_production"`
	AccessedAt      string                   `json:"record_access_date"`
	SkippedRecords  int                      `json:"skipped_records"`
	Gaps            map[string]GapSetSummary `json:"gaps"`
}

type GroupSummary struct {
	WellCount    int                      `json:"well_count"`
	APINums      []string                 `json:"api_nums"`
	EarliestDate string                   `json:"earliest_reported_date"`
	LatestDate   string                   `json:"latest_reported_date"`
	Gaps         map[string]GapSetSummary `json:"gaps"`
	Wells        []WellSummary            `json:"wells"`
}

// SummarizeDateRange renders one range with its durations.
func SummarizeDateRange(dr models.DateRange, opts Options) DateRangeSummary {
	between := opts.BetweenDates
	if between == "" {
		between = "::"
	}
	s := DateRangeSummary{
		Start:  dr.Start.String(),
		End:    dr.End.String(),
		Days:   dr.DurationInDays(),
		Months: dr.DurationInMonths(),
	}
	display := s.Start + between + s.End
	var extra []string
	if opts.ShowDays {
		extra = append(extra, fmt.Sprintf("%d days", s.Days))
	}
	if opts.ShowMonths {
		extra = append(extra, fmt.Sprintf("%d calendar months", s.Months))
	}
	if len(extra) > 0 {
		display += " (" + strings.Join(extra, "; ") + ")"
	}
	s.Display = display
	return s
}

// SummarizeGapSet renders a category's gap set.
func SummarizeGapSet(category string, set models.DateRangeSet, opts Options) GapSetSummary {
	summary := GapSetSummary{
		Description: analysis.CategoryDescriptions[category],
		LongestDays: set.LongestDays(),
		Ranges:      make([]DateRangeSummary, 0, len(set)),
	}
	if summary.Description == "" {
		summary.Description = category
	}
	for _, dr := range set {
		summary.Ranges = append(summary.Ranges, SummarizeDateRange(dr, opts))
	}
	return summary
}

// SummarizeWell computes and renders a single well's gaps under both
// shut-in policies.
func SummarizeWell(h *models.WellHistory, opts Options) WellSummary {
	s := WellSummary{
		APINum:          h.APINum,
		WellName:        h.WellName,
		FirstProduction: NoProduction,
		LastProduction:  NoProduction,
		AccessedAt:      h.AccessedAt.String(),
		SkippedRecords:  h.SkippedRecords,
		Gaps: map[string]GapSetSummary{
			analysis.CategoryNoProdIgnoreShutIn:    SummarizeGapSet(analysis.CategoryNoProdIgnoreShutIn, analysis.FindGaps(h, false), opts),
			analysis.CategoryNoProdButShutInCounts: SummarizeGapSet(analysis.CategoryNoProdButShutInCounts, analysis.FindGaps(h, true), opts),
		},
	}
	if s.WellName == "" {
		s.WellName = "Unknown"
	}
	if !h.Empty() {
		s.FirstProduction = h.FirstDate().String()
		s.LastProduction = h.LastDate().String()
	}
	return s
}

// SummarizeGroup renders a whole group: the group-wide gaps plus each
// member well's own summary.
func SummarizeGroup(g *analysis.WellGroup, gaps analysis.GroupGaps, opts Options) GroupSummary {
	s := GroupSummary{
		WellCount:    len(g.Wells),
		APINums:      make([]string, 0, len(g.Wells)),
		EarliestDate: NoProduction,
		LatestDate:   NoProduction,
		Gaps:         map[string]GapSetSummary{},
		Wells:        make([]WellSummary, 0, len(g.Wells)),
	}
	for category, set := range gaps.ByCategory() {
		s.Gaps[category] = SummarizeGapSet(category, set, opts)
	}
	if first, ok := g.FirstDate(); ok {
		s.EarliestDate = first.String()
	}
	if last, ok := g.LastDate(); ok {
		s.LatestDate = last.String()
	}
	for _, h := range g.Wells {
		s.APINums = append(s.APINums, h.APINum)
		s.Wells = append(s.Wells, SummarizeWell(h, opts))
	}
	return s
}
