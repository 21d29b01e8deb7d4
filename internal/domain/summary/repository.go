package summary

import (
	"context"
	"time"
)

type SummaryRepository interface {
	// GetDayStats aggregates present/late/absent counts, average worked
	// hours and headcount for a company on one date in a single query.
	GetDayStats(ctx context.Context, companyID string, date time.Time) (DayStats, error)
}
