package domain

import "fmt"

// Human-readable identifier codes. The sequence number is the count of
// existing entities in the same scope plus one, zero-padded to three digits.
// The count must be read inside the same serialized unit (event row lock or
// advisory lock) as the insert that consumes it; a unique index on the code
// column turns a lost race into ErrConcurrencyConflict instead of a silent
// duplicate.

// FormatCollegeCode returns a college code, e.g. COL001.
func FormatCollegeCode(seq int) string {
	return fmt.Sprintf("COL%03d", seq)
}

// FormatUserCode returns a user code by role, e.g. STU007 or ADM001.
func FormatUserCode(role Role, seq int) string {
	prefix := "STU"
	if role == RoleAdmin {
		prefix = "ADM"
	}
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// FormatEventCode returns an event code scoped to a college, e.g. EVT042_COL001.
func FormatEventCode(seq int, collegeCode string) string {
	return fmt.Sprintf("EVT%03d_%s", seq, collegeCode)
}

// FormatRegistrationCode returns a registration code scoped to an event,
// e.g. REG001_EVT042_COL001_STU007.
func FormatRegistrationCode(seq int, eventCode, studentCode string) string {
	return fmt.Sprintf("REG%03d_%s_%s", seq, eventCode, studentCode)
}

// FormatAttendanceCode returns an attendance code scoped to an event,
// e.g. ATT001_EVT042_COL001_STU007.
func FormatAttendanceCode(seq int, eventCode, studentCode string) string {
	return fmt.Sprintf("ATT%03d_%s_%s", seq, eventCode, studentCode)
}

// FormatFeedbackCode returns a feedback code scoped to an event, e.g. FDB001_EVT042_COL001.
func FormatFeedbackCode(seq int, eventCode string) string {
	return fmt.Sprintf("FDB%03d_%s", seq, eventCode)
}
