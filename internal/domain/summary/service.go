package summary

import "context"

type SummaryService interface {
	// TodaySummary returns company-wide counts for the caller's company
	// for the current date.
	TodaySummary(ctx context.Context) (DayStats, error)
}
