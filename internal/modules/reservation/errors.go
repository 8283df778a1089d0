package reservation

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrIdentityRequired = errors.New("either LINE user ID or app user ID must be provided")
	ErrNotAvailable     = errors.New("time slot not available")
	ErrConflict         = errors.New("overlapping reservation")
	ErrNotFound         = errors.New("reservation not found")
	ErrStore            = errors.New("store error")
)
