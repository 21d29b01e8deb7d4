package shift

import "errors"

var (
	ErrNoEffectiveShift = errors.New("no effective shift found for this date")
)
