package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/rickb777/date"
	"github.com/rs/zerolog"

	"github.com/wellgrid/hbp-api/internal/models"
)

// BasicAuth carries credentials for states that put production records
// behind a login.
type BasicAuth struct {
	Username string
	Password string
}

// Config describes how to locate and read one state's production
// tables.
type Config struct {
	// ProdURLTemplate is a fmt template for the production page URL;
	// its verbs are filled from URLComponents.
	ProdURLTemplate string

	// Column headers in the state's production table.
	DateCol         string
	OilProdCol      string
	GasProdCol      string
	DaysProducedCol string // empty when the state does not report it
	StatusCol       string // empty when the state does not report it

	// ShutInCodes are the status values that mean shut-in.
	ShutInCodes []string

	// Minimum reported volume to count as producing. Zero means any
	// reported oil or gas counts.
	OilProdMin float64
	GasProdMin float64

	// URLComponents derives the URL template arguments from the API
	// number.
	URLComponents func(apiNum string) ([]interface{}, error)

	Auth *BasicAuth
}

// ScraperCollector reads monthly production tables from a state
// regulator's website.
type ScraperCollector struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

func NewScraperCollector(cfg Config, client *http.Client, logger zerolog.Logger) *ScraperCollector {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ScraperCollector{cfg: cfg, client: client, logger: logger}
}

// URL returns the production page URL for the given API number.
func (c *ScraperCollector) URL(apiNum string) (string, error) {
	args, err := c.cfg.URLComponents(apiNum)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(c.cfg.ProdURLTemplate, args...), nil
}

// GetWellHistory fetches and parses the production table for a well.
// A page with no production table yields a history with no records,
// which downstream analysis treats as a well that never produced.
func (c *ScraperCollector) GetWellHistory(ctx context.Context, apiNum, wellName string) (*models.WellHistory, error) {
	url, err := c.URL(apiNum)
	if err != nil {
		return nil, errors.Wrapf(err, "building production URL for well %s", apiNum)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for well %s", apiNum)
	}
	if c.cfg.Auth != nil {
		req.SetBasicAuth(c.cfg.Auth.Username, c.cfg.Auth.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching production records for well %s", apiNum)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching production records for well %s: status %d", apiNum, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing production page for well %s", apiNum)
	}

	records, skipped := c.parseProductionTable(doc, apiNum)
	return models.NewWellHistory(apiNum, wellName, records, date.Today(), skipped)
}

// parseProductionTable finds the table whose header row carries the
// configured date column and reads one record per data row. Rows that
// cannot be classified are skipped and counted.
func (c *ScraperCollector) parseProductionTable(doc *goquery.Document, apiNum string) ([]models.ProductionRecord, int) {
	var records []models.ProductionRecord
	skipped := 0

	table := c.findProductionTable(doc)
	if table == nil {
		return records, skipped
	}

	cols := map[string]int{}
	table.Find("tr").First().Find("th, td").Each(func(i int, s *goquery.Selection) {
		cols[strings.TrimSpace(s.Text())] = i
	})

	table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
		if rowIdx == 0 {
			return
		}
		cells := row.Find("td").Map(func(_ int, s *goquery.Selection) string {
			return strings.TrimSpace(s.Text())
		})
		month, ok := parseMonth(cellAt(cells, cols, c.cfg.DateCol))
		if !ok {
			skipped++
			c.logger.Warn().Str("api_num", apiNum).Int("row", rowIdx).Msg("production row has no readable date; skipping")
			return
		}
		oil := parseVolume(cellAt(cells, cols, c.cfg.OilProdCol))
		gas := parseVolume(cellAt(cells, cols, c.cfg.GasProdCol))
		days := 0
		if c.cfg.DaysProducedCol != "" {
			if v := parseVolume(cellAt(cells, cols, c.cfg.DaysProducedCol)); v != nil {
				days = int(*v)
			}
		}
		wellStatus := ""
		if c.cfg.StatusCol != "" {
			wellStatus = cellAt(cells, cols, c.cfg.StatusCol)
		}

		status, ok := models.ClassifyRecord(oil, gas, wellStatus, c.cfg.ShutInCodes, c.cfg.OilProdMin, c.cfg.GasProdMin)
		if !ok {
			skipped++
			c.logger.Warn().Str("api_num", apiNum).Str("month", month.String()).
				Msg("production row reports neither volume nor status; skipping")
			return
		}
		records = append(records, models.ProductionRecord{
			Month:        month,
			OilBBL:       oil,
			GasMCF:       gas,
			DaysProduced: days,
			WellStatus:   wellStatus,
			Status:       status,
		})
	})
	return records, skipped
}

func (c *ScraperCollector) findProductionTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := table.Find("tr").First().Text()
		if strings.Contains(header, c.cfg.DateCol) {
			found = table
			return false
		}
		return true
	})
	return found
}

func cellAt(cells []string, cols map[string]int, header string) string {
	idx, ok := cols[header]
	if !ok || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// monthLayouts covers the date formats seen across state production
// tables.
var monthLayouts = []string{"01/02/2006", "1/2/2006", "01/2006", "1/2006", "2006-01-02"}

func parseMonth(s string) (date.Date, bool) {
	if s == "" {
		return date.Date{}, false
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return date.New(t.Year(), t.Month(), 1), true
		}
	}
	return date.Date{}, false
}

func parseVolume(s string) *float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
