package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rickb777/date"

	"github.com/wellgrid/hbp-api/internal/models"
)

// ErrEmptyGroup is returned when gap aggregation is requested for a
// group with no wells. An empty request is a caller mistake and must
// not be masked by an empty result.
var ErrEmptyGroup = errors.New("well group contains no wells")

// WellGroup is a set of well histories analyzed together, typically
// the wells held by a single lease.
type WellGroup struct {
	Wells []*models.WellHistory
}

// GroupGaps holds the periods during which every well in a group was
// simultaneously non-producing, under both shut-in interpretations.
type GroupGaps struct {
	// Strict treats shut-in months as non-producing.
	Strict models.DateRangeSet
	// Lenient treats shut-in months as producing.
	Lenient models.DateRangeSet
}

// ByCategory returns the gap sets keyed by their category names.
func (g GroupGaps) ByCategory() map[string]models.DateRangeSet {
	return map[string]models.DateRangeSet{
		CategoryNoProdIgnoreShutIn:    g.Strict,
		CategoryNoProdButShutInCounts: g.Lenient,
	}
}

// AddWell adds a well history to the group. Each API number may appear
// only once.
func (g *WellGroup) AddWell(h *models.WellHistory) error {
	for _, existing := range g.Wells {
		if existing.APINum == h.APINum {
			return fmt.Errorf("well %s is already in the group", h.APINum)
		}
	}
	g.Wells = append(g.Wells, h)
	return nil
}

// FirstDate returns the earliest reported date across all wells in the
// group. The second return value is false when no well has any
// reported production.
func (g *WellGroup) FirstDate() (date.Date, bool) {
	var first date.Date
	found := false
	for _, w := range g.Wells {
		if w.Empty() {
			continue
		}
		if !found || w.FirstDate().Before(first) {
			first = w.FirstDate()
			found = true
		}
	}
	return first, found
}

// LastDate returns the latest reported date across all wells in the
// group. The second return value is false when no well has any
// reported production.
func (g *WellGroup) LastDate() (date.Date, bool) {
	var last date.Date
	found := false
	for _, w := range g.Wells {
		if w.Empty() {
			continue
		}
		if !found || w.LastDate().After(last) {
			last = w.LastDate()
			found = true
		}
	}
	return last, found
}

// Aggregate computes the group-wide gaps for both shut-in policies.
// A date belongs to a group-wide gap only when every well in the group
// was non-producing on that date.
func (g *WellGroup) Aggregate() (GroupGaps, error) {
	if len(g.Wells) == 0 {
		return GroupGaps{}, ErrEmptyGroup
	}
	return GroupGaps{
		Strict:  g.gapsForPolicy(false),
		Lenient: g.gapsForPolicy(true),
	}, nil
}

// gapsForPolicy intersects the per-well gap sets across the group
// window. A well with no data for part of the window is non-producing
// for that part, same as a missing month inside a single history.
func (g *WellGroup) gapsForPolicy(shutInAsProducing bool) models.DateRangeSet {
	windowStart, ok := g.FirstDate()
	if !ok {
		// No well reported anything; there is no window to analyze.
		return models.DateRangeSet{}
	}
	windowEnd, _ := g.LastDate()

	sets := make([]models.DateRangeSet, 0, len(g.Wells))
	for _, w := range g.Wells {
		sets = append(sets, wellGapsOverWindow(w, shutInAsProducing, windowStart, windowEnd))
	}
	return intersectRanges(sets)
}

// wellGapsOverWindow extends a well's own gaps with the parts of the
// group window the well never reported on.
func wellGapsOverWindow(w *models.WellHistory, shutInAsProducing bool, windowStart, windowEnd date.Date) models.DateRangeSet {
	if w.Empty() {
		return models.DateRangeSet{{Start: windowStart, End: windowEnd}}
	}
	gaps := FindGaps(w, shutInAsProducing)
	if windowStart.Before(w.FirstDate()) {
		gaps = append(gaps, models.DateRange{Start: windowStart, End: w.FirstDate().Add(-1)})
	}
	if windowEnd.After(w.LastDate()) {
		gaps = append(gaps, models.DateRange{Start: w.LastDate().Add(1), End: windowEnd})
	}
	return gaps.MergeAll(1)
}

// intersectRanges computes the dates covered by at least one range
// from every set, as a sweep over an explicit event list: each range
// start activates a well, the day after its end deactivates it, and a
// maximal span with every well active becomes an output range.
func intersectRanges(sets []models.DateRangeSet) models.DateRangeSet {
	type event struct {
		day   date.Date
		delta int
	}
	var events []event
	for _, set := range sets {
		for _, dr := range set {
			events = append(events, event{day: dr.Start, delta: +1})
			events = append(events, event{day: dr.End.Add(1), delta: -1})
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].day.Equal(events[j].day) {
			return events[i].day.Before(events[j].day)
		}
		// Deactivations first so that a range ending the day before
		// another starts does not fake full coverage.
		return events[i].delta < events[j].delta
	})

	result := models.DateRangeSet{}
	need := len(sets)
	active := 0
	var spanStart date.Date
	for _, ev := range events {
		before := active
		active += ev.delta
		if before < need && active == need {
			spanStart = ev.day
		}
		if before == need && active < need {
			result = append(result, models.DateRange{Start: spanStart, End: ev.day.Add(-1)})
		}
	}
	return result
}
