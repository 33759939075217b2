package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rickb777/date"

	"github.com/wellgrid/hbp-api/internal/models"
)

// WellRepository caches collected well histories. The cache stores the
// raw production records; gap sets are always recomputed from them.
type WellRepository interface {
	Save(ctx context.Context, h *models.WellHistory) error
	Find(ctx context.Context, apiNum string) (*models.WellHistory, error)
	Delete(ctx context.Context, apiNum string) error
	Count(ctx context.Context) (int, error)
}

type wellRepository struct {
	db *sql.DB
}

func NewWellRepository(db *sql.DB) WellRepository {
	return &wellRepository{db: db}
}

// Save upserts the well row and replaces its production records in a
// single transaction, so a reader never sees a half-written history.
func (r *wellRepository) Save(ctx context.Context, h *models.WellHistory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO wells (api_num, well_name, accessed_at, skipped_records)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (api_num) DO UPDATE
		SET well_name = EXCLUDED.well_name,
		    accessed_at = EXCLUDED.accessed_at,
		    skipped_records = EXCLUDED.skipped_records
	`
	if _, err := tx.ExecContext(ctx, query, h.APINum, h.WellName, h.AccessedAt.UTC(), h.SkippedRecords); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM production_records WHERE api_num = $1`, h.APINum); err != nil {
		return err
	}

	insert := `
		INSERT INTO production_records (api_num, month, oil_bbl, gas_mcf, days_produced, well_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rec := range h.Records {
		if _, err := stmt.ExecContext(ctx, h.APINum, rec.Month.UTC(), rec.OilBBL, rec.GasMCF, rec.DaysProduced, rec.WellStatus, string(rec.Status)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Find loads a cached history by API number. A well not in the cache
// yields (nil, nil).
func (r *wellRepository) Find(ctx context.Context, apiNum string) (*models.WellHistory, error) {
	var (
		wellName   string
		accessedAt time.Time
		skipped    int
	)
	query := `
		SELECT well_name, accessed_at, skipped_records
		FROM wells
		WHERE api_num = $1
	`
	err := r.db.QueryRowContext(ctx, query, apiNum).Scan(&wellName, &accessedAt, &skipped)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT month, oil_bbl, gas_mcf, days_produced, well_status, status
		FROM production_records
		WHERE api_num = $1
		ORDER BY month ASC
	`, apiNum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ProductionRecord
	for rows.Next() {
		var (
			month  time.Time
			rec    models.ProductionRecord
			status string
		)
		if err := rows.Scan(&month, &rec.OilBBL, &rec.GasMCF, &rec.DaysProduced, &rec.WellStatus, &status); err != nil {
			return nil, err
		}
		rec.Month = date.NewAt(month)
		rec.Status = models.RecordStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewWellHistory(apiNum, wellName, records, date.NewAt(accessedAt), skipped)
}

func (r *wellRepository) Delete(ctx context.Context, apiNum string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM production_records WHERE api_num = $1`, apiNum); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM wells WHERE api_num = $1`, apiNum)
	return err
}

func (r *wellRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wells`).Scan(&n)
	return n, err
}
