// Package records decides where a well's production history comes
// from: the in-process memo, the database cache, or a fresh collection
// from the state's public records.
package records

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rickb777/date"
	"github.com/rs/zerolog"

	"github.com/wellgrid/hbp-api/internal/analysis"
	"github.com/wellgrid/hbp-api/internal/apinum"
	"github.com/wellgrid/hbp-api/internal/collector"
	"github.com/wellgrid/hbp-api/internal/models"
	"github.com/wellgrid/hbp-api/internal/repository"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo       repository.WellRepository
	collectors map[string]collector.Collector
	memo       *cache.Cache
	maxAgeDays int
	logger     zerolog.Logger
}

func NewService(repo repository.WellRepository, collectors map[string]collector.Collector, maxAgeDays int, memoTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		collectors: collectors,
		memo:       cache.New(memoTTL, 2*memoTTL),
		maxAgeDays: maxAgeDays,
		logger:     logger,
	}
}

// GetWellHistory returns the production history for one well. A cached
// record younger than the configured maximum age is served as-is; a
// missing or stale record is re-collected from the state's public
// records and stored back.
func (s *Service) GetWellHistory(ctx context.Context, apiNum, wellName string) (*models.WellHistory, error) {
	if !apinum.Valid(apiNum) {
		return nil, errors.Errorf("invalid API number %q", apiNum)
	}

	if cached, ok := s.memo.Get(apiNum); ok {
		return cached.(*models.WellHistory), nil
	}

	existing, err := s.repo.Find(ctx, apiNum)
	if err != nil {
		return nil, errors.Wrapf(err, "reading cached record for well %s", apiNum)
	}
	if existing != nil && !s.stale(existing) {
		s.logger.Info().Str("api_num", apiNum).Msg("well record found in database")
		s.memo.SetDefault(apiNum, existing)
		return existing, nil
	}

	c, ok := s.collectors[apinum.StateCode(apiNum)]
	if !ok {
		return nil, errors.Errorf("no collector registered for state code %q", apinum.StateCode(apiNum))
	}
	fresh, err := c.GetWellHistory(ctx, apiNum, wellName)
	if err != nil {
		return nil, errors.Wrapf(err, "collecting records for well %s", apiNum)
	}
	if existing != nil {
		s.logger.Info().Str("api_num", apiNum).Int("max_age_days", s.maxAgeDays).
			Msg("cached well record was too old; re-collected")
	} else {
		s.logger.Info().Str("api_num", apiNum).Msg("well record collected")
	}

	if err := s.repo.Save(ctx, fresh); err != nil {
		// The history is still usable; the cache just missed an update.
		s.logger.Error().Err(err).Str("api_num", apiNum).Msg("failed to store collected well record")
	}
	s.memo.SetDefault(apiNum, fresh)
	return fresh, nil
}

// GetWellGroup fetches every requested well concurrently and returns
// them as a group, in request order with duplicates removed. A fetch
// failure for any well fails the whole group; a partial group would
// silently understate the group-wide gaps.
func (s *Service) GetWellGroup(ctx context.Context, apiNums []string) (*analysis.WellGroup, error) {
	unique := dedupe(apiNums)
	if len(unique) == 0 {
		return nil, analysis.ErrEmptyGroup
	}

	histories := make([]*models.WellHistory, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	for i, apiNum := range unique {
		i, apiNum := i, apiNum
		g.Go(func() error {
			h, err := s.GetWellHistory(gctx, apiNum, "")
			if err != nil {
				return err
			}
			histories[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	group := &analysis.WellGroup{}
	for _, h := range histories {
		if err := group.AddWell(h); err != nil {
			return nil, err
		}
	}
	return group, nil
}

// EvictWell drops a well's cached record from both the memo and the
// database, forcing the next request to re-collect it.
func (s *Service) EvictWell(ctx context.Context, apiNum string) error {
	if !apinum.Valid(apiNum) {
		return errors.Errorf("invalid API number %q", apiNum)
	}
	s.memo.Delete(apiNum)
	return s.repo.Delete(ctx, apiNum)
}

// CachedWellCount reports how many well records the database holds.
func (s *Service) CachedWellCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) stale(h *models.WellHistory) bool {
	return date.Today().After(h.AccessedAt.Add(date.PeriodOfDays(s.maxAgeDays)))
}

func dedupe(apiNums []string) []string {
	seen := make(map[string]struct{}, len(apiNums))
	var unique []string
	for _, n := range apiNums {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	return unique
}
