package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rickb777/date"
)

// DateRange is a period of time bounded by a start and end date,
// inclusive on both ends.
type DateRange struct {
	Start date.Date `json:"start"`
	End   date.Date `json:"end"`
}

// NewDateRange builds a DateRange and validates the bounds.
func NewDateRange(start, end date.Date) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, fmt.Errorf("date range start %s is after end %s", start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses the "YYYY-MM-DD::YYYY-MM-DD" form produced by String.
func ParseDateRange(s string) (DateRange, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 2 {
		return DateRange{}, fmt.Errorf("date range must be in the format YYYY-MM-DD::YYYY-MM-DD, got %q", s)
	}
	start, err := date.ParseISO(parts[0])
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", parts[0], err)
	}
	end, err := date.ParseISO(parts[1])
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", parts[1], err)
	}
	return NewDateRange(start, end)
}

func (dr DateRange) String() string {
	return dr.Start.String() + "::" + dr.End.String()
}

// DurationInDays returns the duration in days, counting both the first
// and last day.
func (dr DateRange) DurationInDays() int {
	return int(dr.End.Sub(dr.Start)) + 1
}

// DurationInMonths returns the duration in calendar months, counting
// both the first and last month.
func (dr DateRange) DurationInMonths() int {
	years := dr.End.Year() - dr.Start.Year()
	months := int(dr.End.Month()) - int(dr.Start.Month())
	return years*12 + months + 1
}

// Contains reports whether d falls within the range, bounds included.
func (dr DateRange) Contains(d date.Date) bool {
	return !d.Before(dr.Start) && !d.After(dr.End)
}

// ContiguousWith reports whether the two ranges overlap or sit within
// toleranceDays of each other. With toleranceDays=1, a range ending on
// one day is contiguous with a range starting the next day.
func (dr DateRange) ContiguousWith(other DateRange, toleranceDays int) bool {
	t := date.PeriodOfDays(toleranceDays)
	if !dr.Start.Add(-t).After(other.End) && !other.End.After(dr.End.Add(t)) {
		return true
	}
	return !other.Start.Add(-t).After(dr.End) && !dr.End.After(other.End.Add(t))
}

// Encompasses reports whether this range fully covers other.
func (dr DateRange) Encompasses(other DateRange) bool {
	return !dr.Start.After(other.Start) && !dr.End.Before(other.End)
}

// MergeWith combines two contiguous or overlapping ranges into one.
// Non-contiguous ranges are returned unchanged.
func (dr DateRange) MergeWith(other DateRange, toleranceDays int) []DateRange {
	if !dr.ContiguousWith(other, toleranceDays) {
		return []DateRange{dr, other}
	}
	start := dr.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := dr.End
	if other.End.After(end) {
		end = other.End
	}
	return []DateRange{{Start: start, End: end}}
}

// DateRangeSet is an ordered collection of date ranges.
type DateRangeSet []DateRange

// Sort orders the set ascending by start date, then end date.
func (s DateRangeSet) Sort() {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].Start.Equal(s[j].Start) {
			return s[i].Start.Before(s[j].Start)
		}
		return s[i].End.Before(s[j].End)
	})
}

// MergeAll sorts the set and collapses every run of contiguous or
// overlapping ranges into a single maximal range.
func (s DateRangeSet) MergeAll(toleranceDays int) DateRangeSet {
	if len(s) == 0 {
		return DateRangeSet{}
	}
	sorted := make(DateRangeSet, len(s))
	copy(sorted, s)
	sorted.Sort()

	merged := DateRangeSet{sorted[0]}
	for _, dr := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.ContiguousWith(dr, toleranceDays) {
			if dr.End.After(last.End) {
				last.End = dr.End
			}
			continue
		}
		merged = append(merged, dr)
	}
	return merged
}

// LongestDays returns the duration in days of the longest range in the
// set, or 0 for an empty set.
func (s DateRangeSet) LongestDays() int {
	longest := 0
	for _, dr := range s {
		if d := dr.DurationInDays(); d > longest {
			longest = d
		}
	}
	return longest
}

// TotalDays returns the summed duration of all ranges in the set.
func (s DateRangeSet) TotalDays() int {
	total := 0
	for _, dr := range s {
		total += dr.DurationInDays()
	}
	return total
}

// Contains reports whether d falls within any range in the set.
func (s DateRangeSet) Contains(d date.Date) bool {
	for _, dr := range s {
		if dr.Contains(d) {
			return true
		}
	}
	return false
}
