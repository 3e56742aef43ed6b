package revenue

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidGranularity = errors.New("granularity must be day, month or year")
)
