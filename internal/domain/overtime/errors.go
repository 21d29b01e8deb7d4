package overtime

import "errors"

// Overtime domain errors
var (
	ErrNoClockOutYet       = errors.New("you must clock out from your regular shift before starting overtime")
	ErrActiveSessionExists = errors.New("you already have an active overtime session")
	ErrSessionNotFound     = errors.New("overtime session not found")
	ErrSessionNotActive    = errors.New("overtime session is not active")
	ErrSiteMismatch        = errors.New("overtime clock-out must be at the same site as clock-in")
	ErrOutsideOTRange      = errors.New("you are outside the allowed radius for overtime")
	ErrAlreadyApproved     = errors.New("overtime session is already approved")
	ErrNotCompleted        = errors.New("only completed overtime sessions can be approved")
)
