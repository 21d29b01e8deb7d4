package leave

import "errors"

var (
	ErrOnApprovedLeave = errors.New("you are on approved leave today")
	ErrPublicHoliday   = errors.New("today is a public holiday")
)
