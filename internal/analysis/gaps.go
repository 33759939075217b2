// Package analysis implements the production gap engine: per-well gap
// detection over monthly production histories, and the cross-well
// intersection of gaps for a group of wells.
package analysis

import (
	"github.com/rickb777/date"

	"github.com/wellgrid/hbp-api/internal/models"
)

// Gap categories, named for how shut-in months are interpreted.
const (
	// CategoryNoProdIgnoreShutIn: months with no production, treating a
	// shut-in well the same as a non-producing one.
	CategoryNoProdIgnoreShutIn = "NO_PROD_IGNORE_SHUTIN"

	// CategoryNoProdButShutInCounts: months with no production, but a
	// shut-in well counts as producing.
	CategoryNoProdButShutInCounts = "NO_PROD_BUT_SHUTIN_COUNTS"
)

// CategoryDescriptions maps each gap category to a reader-facing
// description used in summaries and reports.
var CategoryDescriptions = map[string]string{
	CategoryNoProdIgnoreShutIn:    "No production (shut-in ignored)",
	CategoryNoProdButShutInCounts: "No production (shut-in counts as producing)",
}

// FindGaps returns the well's maximal contiguous periods of
// non-production, ordered by start date. A month inside the reporting
// span with no record at all counts as non-producing; a shut-in month
// counts as producing only when shutInAsProducing is set.
//
// The result never contains overlapping or adjacent ranges. An empty
// history yields an empty set; a history with production in every
// month yields an empty set; a history with no producing month yields
// a single range spanning the whole history.
func FindGaps(h *models.WellHistory, shutInAsProducing bool) models.DateRangeSet {
	gaps := models.DateRangeSet{}
	if h == nil || h.Empty() {
		return gaps
	}
	var gapStart date.Date
	inGap := false
	for m := h.FirstMonth; !m.After(h.LastMonth); m = m.AddDate(0, 1, 0) {
		rec, ok := h.RecordByMonth(m)
		producing := ok && rec.Producing(shutInAsProducing)
		switch {
		case !producing && !inGap:
			gapStart = m
			inGap = true
		case producing && inGap:
			// Gap ends on the last day of the previous month.
			gaps = append(gaps, models.DateRange{Start: gapStart, End: m.Add(-1)})
			inGap = false
		}
	}
	if inGap {
		gaps = append(gaps, models.DateRange{Start: gapStart, End: h.LastDate()})
	}
	return gaps
}
