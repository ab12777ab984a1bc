package domain

import "time"

// SlotDecision is the outcome of a capacity check for a registration request.
type SlotDecision int

// Slot decisions.
const (
	SlotRejected SlotDecision = iota
	SlotAccepted
	SlotWaitlisted
)

// String returns the decision name for logs.
func (d SlotDecision) String() string {
	switch d {
	case SlotAccepted:
		return "accepted"
	case SlotWaitlisted:
		return "waitlisted"
	default:
		return "rejected"
	}
}

// DecideSlot applies the capacity-ledger rules to a registration request:
// rejected when the registration window is closed (event not active, the
// registration flag off, or the deadline passed); accepted while the live
// accepted-count is below capacity; waitlisted otherwise.
//
// acceptedCount must be the number of registrations currently in status
// "registered" for the event, read under the same serialization (event row
// lock) as the write that follows the decision. Waitlisted registrations do
// not count toward capacity.
func DecideSlot(e *Event, acceptedCount int, now time.Time) SlotDecision {
	if e.Status != EventStatusActive || !e.RegistrationOpen || now.After(e.RegistrationDeadline) {
		return SlotRejected
	}
	if acceptedCount < e.Capacity {
		return SlotAccepted
	}
	return SlotWaitlisted
}
