package domain

import "testing"

func TestFormatCodes(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"college", FormatCollegeCode(1), "COL001"},
		{"college large seq keeps growing", FormatCollegeCode(1234), "COL1234"},
		{"student", FormatUserCode(RoleStudent, 7), "STU007"},
		{"admin", FormatUserCode(RoleAdmin, 1), "ADM001"},
		{"event", FormatEventCode(42, "COL001"), "EVT042_COL001"},
		{"registration", FormatRegistrationCode(1, "EVT042_COL001", "STU007"), "REG001_EVT042_COL001_STU007"},
		{"attendance", FormatAttendanceCode(3, "EVT042_COL001", "STU007"), "ATT003_EVT042_COL001_STU007"},
		{"feedback", FormatFeedbackCode(9, "EVT042_COL001"), "FDB009_EVT042_COL001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
