package shift

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/store"
)

type fakeClient struct {
	removes []string
	fail    bool
}

func (f *fakeClient) Subscribe(ctx context.Context, path string) (<-chan store.Snapshot, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) Current(ctx context.Context, path string) (store.Snapshot, error) {
	return store.Snapshot{}, errors.New("not implemented")
}

func (f *fakeClient) Push(path string, value any) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeClient) Set(path string, value any) error { return nil }

func (f *fakeClient) Update(path string, patch map[string]any) error { return nil }

func (f *fakeClient) SetChild(path, key string, value any) error { return nil }

func (f *fakeClient) Remove(path string) error {
	if f.fail {
		return store.ErrRemoteUnavailable
	}
	f.removes = append(f.removes, path)
	return nil
}

func shiftSnapshot(t *testing.T, shifts map[string]record.Shift) store.Snapshot {
	t.Helper()
	snap := store.Snapshot{Path: record.ShiftsPath, Records: map[string]json.RawMessage{}}
	for key, s := range shifts {
		raw, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		snap.Records[key] = raw
	}
	return snap
}

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("15:04", hhmm, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", hhmm, err)
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
}

func TestStatusOf(t *testing.T) {
	s := record.Shift{StartTime: "09:00", EndTime: "12:00"}

	tests := []struct {
		now  string
		want Status
	}{
		{"08:59", Pending},
		{"09:00", Active},
		{"11:59", Active},
		{"12:00", Expired},
		{"15:00", Expired},
	}
	for _, tt := range tests {
		got, err := StatusOf(s, at(t, tt.now))
		if err != nil {
			t.Fatalf("StatusOf at %s: %v", tt.now, err)
		}
		if got != tt.want {
			t.Errorf("at %s: status = %s, want %s", tt.now, got, tt.want)
		}
	}
}

func TestStatusOfRejectsBadClock(t *testing.T) {
	if _, err := StatusOf(record.Shift{StartTime: "soon", EndTime: "12:00"}, time.Now()); err == nil {
		t.Fatal("unparseable start time should error")
	}
}

func TestEvaluateRemovesExpiredOnce(t *testing.T) {
	client := &fakeClient{}
	m := NewManager(client)
	snap := shiftSnapshot(t, map[string]record.Shift{
		"k1": {StartTime: "06:00", EndTime: "07:00", Person: "Aoi", Role: "Gate"},
	})

	now := at(t, "13:00")
	for i := 0; i < 3; i++ {
		if evals := m.Evaluate(context.Background(), snap, now); len(evals) != 0 {
			t.Fatalf("expired shifts must not render, got %d rows", len(evals))
		}
	}

	if len(client.removes) != 1 {
		t.Fatalf("expected exactly one removal, got %v", client.removes)
	}
	if client.removes[0] != record.ShiftsPath+"/k1" {
		t.Fatalf("unexpected removal path %q", client.removes[0])
	}
}

func TestEvaluateRetriesAfterRemoveFailure(t *testing.T) {
	client := &fakeClient{fail: true}
	m := NewManager(client)
	snap := shiftSnapshot(t, map[string]record.Shift{
		"k1": {StartTime: "06:00", EndTime: "07:00"},
	})
	now := at(t, "13:00")

	m.Evaluate(context.Background(), snap, now)
	client.fail = false
	m.Evaluate(context.Background(), snap, now)

	if len(client.removes) != 1 {
		t.Fatalf("removal should succeed on retry exactly once, got %v", client.removes)
	}
}

func TestEvaluateRendersPendingAndActive(t *testing.T) {
	client := &fakeClient{}
	m := NewManager(client)
	snap := shiftSnapshot(t, map[string]record.Shift{
		"a": {StartTime: "09:00", EndTime: "12:00", Person: "Aoi"},
		"b": {StartTime: "14:00", EndTime: "18:00", Person: "Ren"},
	})

	evals := m.Evaluate(context.Background(), snap, at(t, "10:00"))
	if len(evals) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(evals))
	}
	// Newest-first key order.
	if evals[0].Key != "b" || evals[1].Key != "a" {
		t.Fatalf("unexpected order: %s, %s", evals[0].Key, evals[1].Key)
	}
	if evals[1].Status != Active {
		t.Fatalf("shift a should be active, got %s", evals[1].Status)
	}
	if evals[0].Status != Pending {
		t.Fatalf("shift b should be pending, got %s", evals[0].Status)
	}

	if len(client.removes) != 0 {
		t.Fatalf("nothing should be removed, got %v", client.removes)
	}
}

func TestEvaluateForgetsVanishedKeys(t *testing.T) {
	client := &fakeClient{}
	m := NewManager(client)
	snap := shiftSnapshot(t, map[string]record.Shift{
		"k1": {StartTime: "06:00", EndTime: "07:00"},
	})
	now := at(t, "13:00")

	m.Evaluate(context.Background(), snap, now)
	if _, ok := m.removed["k1"]; !ok {
		t.Fatal("k1 should be marked removed")
	}

	m.Evaluate(context.Background(), shiftSnapshot(t, nil), now)
	if _, ok := m.removed["k1"]; ok {
		t.Fatal("dedupe set should drop keys absent from the snapshot")
	}
}

func TestEndRemovesImmediately(t *testing.T) {
	client := &fakeClient{}
	m := NewManager(client)

	if err := m.End(context.Background(), "k9"); err != nil {
		t.Fatalf("end: %v", err)
	}
	if len(client.removes) != 1 || client.removes[0] != record.ShiftsPath+"/k9" {
		t.Fatalf("unexpected removals %v", client.removes)
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow("09:00", "12:00"); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if err := ValidateWindow("12:00", "09:00"); err == nil {
		t.Fatal("inverted window must be rejected")
	}
	if err := ValidateWindow("12:00", "12:00"); err == nil {
		t.Fatal("empty window must be rejected")
	}
	if err := ValidateWindow("22:00", "01:00"); err == nil {
		t.Fatal("midnight-crossing window must be rejected")
	}
}
