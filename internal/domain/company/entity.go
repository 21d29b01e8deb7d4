package company

import "time"

// DefaultCorrectionWindowHours applies when a company has no override.
const DefaultCorrectionWindowHours = 24

// Settings holds the per-company attendance configuration.
type Settings struct {
	CompanyID             string
	Timezone              string // IANA name, e.g. "Asia/Kuala_Lumpur"
	CorrectionWindowHours int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CorrectionWindow returns the configured window as a duration, falling back
// to the default when unset.
func (s Settings) CorrectionWindow() time.Duration {
	hours := s.CorrectionWindowHours
	if hours <= 0 {
		hours = DefaultCorrectionWindowHours
	}
	return time.Duration(hours) * time.Hour
}
