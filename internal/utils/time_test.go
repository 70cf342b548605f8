package utils

import (
	"testing"
	"time"
)

func TestToCalendarDay(t *testing.T) {
	in := time.Date(2024, 6, 10, 15, 42, 30, 500, time.Local)
	got := ToCalendarDay(in)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ToCalendarDay() = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 6, 10, 0, 1, 0, 0, time.Local)
	b := time.Date(2024, 6, 10, 23, 59, 0, 0, time.Local)
	c := time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Error("SameDay() = false for same calendar day")
	}
	if SameDay(b, c) {
		t.Error("SameDay() = true across midnight boundary")
	}
}

func TestAddDays(t *testing.T) {
	base := time.Date(2024, 2, 28, 13, 0, 0, 0, time.Local)
	got := AddDays(base, 2)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("AddDays() across leap day = %v, want %v", got, want)
	}
}

func TestParseCalendarDay(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{name: "valid date", input: "2024-06-10", wantOK: true},
		{name: "empty string", input: "", wantOK: false},
		{name: "garbage", input: "not-a-date", wantOK: false},
		{name: "wrong format", input: "06/10/2024", wantOK: false},
		{name: "impossible day", input: "2024-02-30", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCalendarDay(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ParseCalendarDay(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && DayKey(got) != tt.input {
				t.Errorf("ParseCalendarDay(%q) round-trip = %q", tt.input, DayKey(got))
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{name: "rfc3339", input: "2024-06-10T08:30:00Z", wantOK: true},
		{name: "rfc3339 with offset", input: "2024-06-10T08:30:00-05:00", wantOK: true},
		{name: "bare date falls back", input: "2024-06-10", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "yesterday", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00"},
		{name: "under a minute", seconds: 59, want: "00:59"},
		{name: "minutes and seconds", seconds: 125, want: "02:05"},
		{name: "just under an hour", seconds: 3599, want: "59:59"},
		{name: "exactly one hour", seconds: 3600, want: "01:00:00"},
		{name: "hours", seconds: 7384, want: "02:03:04"},
		{name: "negative clamps to zero", seconds: -30, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
