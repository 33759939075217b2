// Package collector fetches monthly production records for a well from
// the public records of the state regulator that oversees it.
package collector

import (
	"context"

	"github.com/wellgrid/hbp-api/internal/models"
)

// Collector retrieves the production history for a single well.
type Collector interface {
	GetWellHistory(ctx context.Context, apiNum, wellName string) (*models.WellHistory, error)
}
