package schedule

import "errors"

var (
	ErrMissingField     = errors.New("missing required field")
	ErrValidation       = errors.New("validation error")
	ErrPastDate         = errors.New("date is in the past")
	ErrUnknownReference = errors.New("referenced row does not exist")
	ErrSlotTaken        = errors.New("slot already taken")
	ErrNotFound         = errors.New("appointment not found")
)
