package domain

import "errors"

// Slot generation defaults and limits
const (
	DefaultGranularityMinutes = 30
	MinGranularityMinutes     = 5
	MaxGranularityMinutes     = 240

	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	// ErrInvalidSchedule is returned when a day schedule breaks its invariants
	ErrInvalidSchedule = errors.New("domain: invalid day schedule")

	// ErrUnknownStatus is returned for a status string outside the known set
	ErrUnknownStatus = errors.New("domain: unknown appointment status")
)
