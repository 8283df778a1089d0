package availability

import "errors"

var (
	ErrBadTime           = errors.New("invalid time format")
	ErrStartNotBeforeEnd = errors.New("start must precede end")
	ErrTooLong           = errors.New("exceeds max duration")
)
