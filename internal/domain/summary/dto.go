package summary

import (
	"fmt"
	"time"
)

// CacheKey names the cached day stats for one company and date. Writers that
// change a day's attendance invalidate it through the same function.
func CacheKey(companyID string, date time.Time) string {
	return fmt.Sprintf("summary:%s:%s", companyID, date.Format("2006-01-02"))
}

// DayStats holds company-wide attendance counts for one date.
type DayStats struct {
	PresentCount   int     `json:"present_count"`
	LateCount      int     `json:"late_count"`
	AbsentCount    int     `json:"absent_count"`
	AverageHours   float64 `json:"average_hours"`
	TotalEmployees int     `json:"total_employees"`
}
