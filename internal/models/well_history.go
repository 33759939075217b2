package models

import (
	"fmt"
	"sort"

	"github.com/rickb777/date"
)

// WellHistory is the ordered monthly production history for one well.
// It is constructed once from collected records and not mutated
// afterwards.
type WellHistory struct {
	APINum         string             `json:"api_num"`
	WellName       string             `json:"well_name"`
	Records        []ProductionRecord `json:"records"`
	FirstMonth     date.Date          `json:"first_month"`
	LastMonth      date.Date          `json:"last_month"`
	AccessedAt     date.Date          `json:"accessed_at"`
	SkippedRecords int                `json:"skipped_records"`
}

// NewWellHistory builds a history from collected records, ordering them
// by month and rejecting duplicate reporting periods. Records are
// normalized to the first day of their month. An empty record list is
// valid and represents a well with no reported production.
func NewWellHistory(apiNum, wellName string, records []ProductionRecord, accessedAt date.Date, skipped int) (*WellHistory, error) {
	if apiNum == "" {
		return nil, fmt.Errorf("well history requires an API number")
	}
	h := &WellHistory{
		APINum:         apiNum,
		WellName:       wellName,
		Records:        make([]ProductionRecord, len(records)),
		AccessedAt:     accessedAt,
		SkippedRecords: skipped,
	}
	copy(h.Records, records)
	for i := range h.Records {
		m := h.Records[i].Month
		h.Records[i].Month = date.New(m.Year(), m.Month(), 1)
	}
	sort.Slice(h.Records, func(i, j int) bool {
		return h.Records[i].Month.Before(h.Records[j].Month)
	})
	for i := 1; i < len(h.Records); i++ {
		if h.Records[i].Month.Equal(h.Records[i-1].Month) {
			return nil, fmt.Errorf("well %s reports the period %s twice", apiNum, h.Records[i].Month)
		}
	}
	if len(h.Records) > 0 {
		h.FirstMonth = h.Records[0].Month
		h.LastMonth = h.Records[len(h.Records)-1].Month
	}
	return h, nil
}

// Empty reports whether the well has no reported production at all.
func (h *WellHistory) Empty() bool {
	return len(h.Records) == 0
}

// FirstDate returns the first day of the earliest reported month.
func (h *WellHistory) FirstDate() date.Date {
	return h.FirstMonth
}

// LastDate returns the last day of the latest reported month.
func (h *WellHistory) LastDate() date.Date {
	if h.Empty() {
		return h.LastMonth
	}
	return h.LastMonth.AddDate(0, 1, 0).Add(-1)
}

// RecordByMonth returns the record for the given month, if any. The
// argument is normalized to the first day of its month.
func (h *WellHistory) RecordByMonth(m date.Date) (ProductionRecord, bool) {
	m = date.New(m.Year(), m.Month(), 1)
	i := sort.Search(len(h.Records), func(i int) bool {
		return !h.Records[i].Month.Before(m)
	})
	if i < len(h.Records) && h.Records[i].Month.Equal(m) {
		return h.Records[i], true
	}
	return ProductionRecord{}, false
}
