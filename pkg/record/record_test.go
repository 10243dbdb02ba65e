package record

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	ts := FromMillis(1757000000123)
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "1757000000123" {
		t.Fatalf("expected epoch millis, got %s", b)
	}

	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Millis() != ts.Millis() {
		t.Fatalf("round trip mismatch: %d != %d", back.Millis(), ts.Millis())
	}
}

func TestTimestampZero(t *testing.T) {
	var ts Timestamp
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "0" {
		t.Fatalf("zero timestamp should marshal as 0, got %s", b)
	}
	if ts.String() != "" {
		t.Fatalf("zero timestamp should render empty, got %q", ts.String())
	}
}

func TestTaskChangedAt(t *testing.T) {
	task := NewTask("setup chairs")
	if task.ChangedAt().Millis() != task.CreatedAt.Millis() {
		t.Fatal("open task should change-sort by creation time")
	}

	task.Completed = true
	task.CompletedAt = FromMillis(task.CreatedAt.Millis() + 60_000)
	if task.ChangedAt().Millis() != task.CompletedAt.Millis() {
		t.Fatal("completed task should change-sort by completion time")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"normal", LevelNormal, true},
		{"Moderate", LevelModerate, true},
		{" SEVERE ", LevelSevere, true},
		{"packed", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseLevel(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseLevel(%q) should fail", tt.in)
		}
	}
}

func TestSameDay(t *testing.T) {
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	ts := Timestamp{Time: noon}
	if !ts.SameDay(noon.Add(5 * time.Hour)) {
		t.Fatal("same calendar day expected")
	}
	if ts.SameDay(noon.Add(24 * time.Hour)) {
		t.Fatal("next day should not match")
	}
}

func TestEmergencyString(t *testing.T) {
	if got := (Emergency{Kind: "fire", Value: "evacuate hall B"}).String(); got != "fire: evacuate hall B" {
		t.Fatalf("unexpected render: %q", got)
	}
	if got := (Emergency{Value: "all clear"}).String(); got != "all clear" {
		t.Fatalf("unexpected render: %q", got)
	}
}
