package domain

import "errors"

var (
	// ErrValidation marks a malformed or out-of-domain request parameter
	ErrValidation = errors.New("invalid parameter")

	// ErrEmptyPopulation marks a statistic requested over zero matching records
	ErrEmptyPopulation = errors.New("no companies match the requested country")

	// ErrSourceUnavailable marks a record source that cannot be read
	ErrSourceUnavailable = errors.New("record source unavailable")
)
