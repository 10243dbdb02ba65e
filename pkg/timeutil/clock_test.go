package timeutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:30", Clock{9, 30}, false},
		{"9:30", Clock{9, 30}, false},
		{"00:00", Clock{0, 0}, false},
		{"23:59", Clock{23, 59}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"noon", Clock{}, true},
		{"", Clock{}, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockOn(t *testing.T) {
	day := time.Date(2026, 9, 1, 18, 45, 12, 0, time.Local)
	at := Clock{Hour: 9, Minute: 15}.On(day)

	if at.Year() != 2026 || at.Month() != 9 || at.Day() != 1 {
		t.Fatalf("window must be pinned to the given day, got %v", at)
	}
	if at.Hour() != 9 || at.Minute() != 15 || at.Second() != 0 {
		t.Fatalf("unexpected time of day: %v", at)
	}
}

func TestClockBefore(t *testing.T) {
	if !(Clock{9, 0}).Before(Clock{9, 30}) {
		t.Fatal("09:00 should be before 09:30")
	}
	if (Clock{10, 0}).Before(Clock{9, 30}) {
		t.Fatal("10:00 should not be before 09:30")
	}
	if (Clock{9, 30}).Before(Clock{9, 30}) {
		t.Fatal("a clock is not before itself")
	}
}

func TestClockString(t *testing.T) {
	if got := (Clock{7, 5}).String(); got != "07:05" {
		t.Fatalf("String() = %q", got)
	}
}
