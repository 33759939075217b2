package models

import (
	"github.com/rickb777/date"
)

// RecordStatus classifies a monthly production record.
type RecordStatus string

const (
	StatusProducing    RecordStatus = "PRODUCING"
	StatusShutIn       RecordStatus = "SHUT_IN"
	StatusNotProducing RecordStatus = "NOT_PRODUCING"
)

// ProductionRecord is one well's reported production for one monthly
// reporting period. Month is the first day of the month.
type ProductionRecord struct {
	Month        date.Date    `json:"month" db:"month"`
	OilBBL       *float64     `json:"oil_bbl" db:"oil_bbl"`
	GasMCF       *float64     `json:"gas_mcf" db:"gas_mcf"`
	DaysProduced int          `json:"days_produced" db:"days_produced"`
	WellStatus   string       `json:"well_status" db:"well_status"`
	Status       RecordStatus `json:"status"`
}

// ClassifyRecord derives the record status from reported volumes and
// the operator-reported status code. Reported volume above the
// configured minimums counts as producing regardless of the status
// code; otherwise a recognized shut-in code counts as shut-in, and
// anything else as not producing.
//
// A record reporting neither volume nor a status code cannot be
// classified; the second return value is false and the caller must
// skip (and count) the record rather than silently drop it.
func ClassifyRecord(oilBBL, gasMCF *float64, wellStatus string, shutInCodes []string, oilMin, gasMin float64) (RecordStatus, bool) {
	if oilBBL == nil && gasMCF == nil && wellStatus == "" {
		return StatusNotProducing, false
	}
	if oilBBL != nil && *oilBBL > oilMin {
		return StatusProducing, true
	}
	if gasMCF != nil && *gasMCF > gasMin {
		return StatusProducing, true
	}
	for _, code := range shutInCodes {
		if wellStatus == code {
			return StatusShutIn, true
		}
	}
	return StatusNotProducing, true
}

// Producing reports whether the record counts as producing under the
// given shut-in policy.
func (r ProductionRecord) Producing(shutInAsProducing bool) bool {
	if r.Status == StatusProducing {
		return true
	}
	return r.Status == StatusShutIn && shutInAsProducing
}
