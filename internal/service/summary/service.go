package summary

import (
	"context"
	"errors"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/auth"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/summary"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/cache"
)

// cacheTTL keeps the dashboard fresh enough while absorbing repeated polls.
const cacheTTL = 60 * time.Second

type SummaryServiceImpl struct {
	summary.SummaryRepository
	settings company.SettingsRepository
	cache    *cache.Store

	now func() time.Time
}

// NewSummaryService wires the summary service with its repository and cache.
func NewSummaryService(repo summary.SummaryRepository, settingsRepo company.SettingsRepository, store *cache.Store) summary.SummaryService {
	return &SummaryServiceImpl{
		SummaryRepository: repo,
		settings:          settingsRepo,
		cache:             store,
		now:               time.Now,
	}
}

// TodaySummary implements summary.SummaryService.
func (s *SummaryServiceImpl) TodaySummary(ctx context.Context) (summary.DayStats, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return summary.DayStats{}, err
	}

	settings, err := s.settings.GetSettings(ctx, identity.CompanyID)
	if err != nil {
		return summary.DayStats{}, err
	}

	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	nowLocal := s.now().In(loc)
	date := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	key := summary.CacheKey(identity.CompanyID, date)

	var stats summary.DayStats
	if err := s.cache.Get(ctx, key, &stats); err == nil {
		return stats, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		// A broken cache should not break the dashboard.
		return s.loadAndCache(ctx, key, identity.CompanyID, date)
	}

	return s.loadAndCache(ctx, key, identity.CompanyID, date)
}

func (s *SummaryServiceImpl) loadAndCache(ctx context.Context, key, companyID string, date time.Time) (summary.DayStats, error) {
	stats, err := s.SummaryRepository.GetDayStats(ctx, companyID, date)
	if err != nil {
		return summary.DayStats{}, err
	}

	_ = s.cache.Set(ctx, key, stats, cacheTTL)

	return stats, nil
}
