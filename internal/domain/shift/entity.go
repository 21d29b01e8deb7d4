package shift

import "time"

// Shift is an effective-dated work schedule assignment. The shift in force
// on a given date is the one whose [EffectiveFrom, EffectiveTo] range covers
// that date; EffectiveTo nil means open-ended.
type Shift struct {
	ID                 string
	CompanyID          string
	Name               string
	StartTime          time.Time // time-of-day component only
	EndTime            time.Time // time-of-day component only
	GracePeriodMinutes int
	IsNextDayEnd       bool // night shifts end on the following calendar day
	EffectiveFrom      time.Time
	EffectiveTo        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScheduledStart anchors the shift's start time-of-day onto the given date
// in the given location.
func (s Shift) ScheduledStart(date time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0,
		loc,
	)
}

// ScheduledEnd anchors the shift's end time-of-day onto the given date in
// the given location, rolling to the next day for night shifts.
func (s Shift) ScheduledEnd(date time.Time, loc *time.Location) time.Time {
	end := time.Date(
		date.Year(), date.Month(), date.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), 0, 0,
		loc,
	)
	if s.IsNextDayEnd {
		end = end.Add(24 * time.Hour)
	}
	return end
}
