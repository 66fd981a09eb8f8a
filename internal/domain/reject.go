package domain

import (
	"errors"
	"fmt"
)

// RejectReason classifies why a candidate interval or a status change
// was refused. The set is exhaustive and stable: callers translating
// reasons into user-facing messages need no fallback branch.
type RejectReason string

const (
	ReasonInvalidRange            RejectReason = "invalid_range"
	ReasonPastDateTime            RejectReason = "past_date_time"
	ReasonProfessionalNotWorking  RejectReason = "professional_not_working"
	ReasonOutsideWorkingHours     RejectReason = "outside_working_hours"
	ReasonBreakConflict           RejectReason = "break_conflict"
	ReasonDoubleBooking           RejectReason = "double_booking"
	ReasonInvalidStatusTransition RejectReason = "invalid_status_transition"
)

// Rejection is the negative half of a validation outcome. It is a normal
// business result, not a fault: the validator returns it as a value and the
// coordinator threads it through its error return so handlers can
// errors.As it into a 409 response. Infrastructure failures travel as
// ordinary errors and never wrap a Rejection.
type Rejection struct {
	Reason RejectReason

	// ConflictingAppointmentIDs is filled for double_booking
	ConflictingAppointmentIDs []int64

	// Break is filled for break_conflict
	Break *BreakWindow
}

// Error implements the error interface
func (r *Rejection) Error() string {
	switch r.Reason {
	case ReasonDoubleBooking:
		return fmt.Sprintf("rejected: %s, conflicting appointments %v", r.Reason, r.ConflictingAppointmentIDs)
	case ReasonBreakConflict:
		if r.Break != nil {
			return fmt.Sprintf("rejected: %s, break %s-%s", r.Reason, r.Break.Start, r.Break.End)
		}
		return fmt.Sprintf("rejected: %s", r.Reason)
	default:
		return fmt.Sprintf("rejected: %s", r.Reason)
	}
}

// Reject constructs a Rejection with the given reason
func Reject(reason RejectReason) *Rejection {
	return &Rejection{Reason: reason}
}

// RejectDoubleBooking constructs a double_booking Rejection carrying
// the conflicting appointment ids
func RejectDoubleBooking(ids []int64) *Rejection {
	return &Rejection{Reason: ReasonDoubleBooking, ConflictingAppointmentIDs: ids}
}

// RejectBreakConflict constructs a break_conflict Rejection carrying
// the offending break window
func RejectBreakConflict(br *BreakWindow) *Rejection {
	return &Rejection{Reason: ReasonBreakConflict, Break: br}
}

// AsRejection extracts a *Rejection from an error chain, if present
func AsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
