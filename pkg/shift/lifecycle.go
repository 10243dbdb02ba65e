// Package shift derives staff-shift status from the wall clock and retires
// expired records from the store.
//
// A shift's window is its HH:MM start and end pinned to the current calendar
// day, so shifts crossing midnight are not supported. Write-time validation
// rejects end times at or before the start, which keeps such windows out of
// the collection entirely.
package shift

import (
	"context"
	"fmt"
	"os"
	"time"

	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/store"
	"tableflip.dev/opsdeck/pkg/timeutil"
)

// Status is derived, never stored.
type Status int

const (
	Pending Status = iota
	Active
	Expired
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// StatusOf computes the shift's status at the given instant. The local clock
// is authoritative; divergence from server time is a known limitation.
func StatusOf(s record.Shift, now time.Time) (Status, error) {
	start, err := timeutil.ParseClock(s.StartTime)
	if err != nil {
		return Expired, fmt.Errorf("shift: start %w", err)
	}
	end, err := timeutil.ParseClock(s.EndTime)
	if err != nil {
		return Expired, fmt.Errorf("shift: end %w", err)
	}

	switch {
	case now.Before(start.On(now)):
		return Pending, nil
	case now.Before(end.On(now)):
		return Active, nil
	default:
		return Expired, nil
	}
}

// Evaluation pairs a still-renderable shift with its derived status.
type Evaluation struct {
	Key    string
	Shift  record.Shift
	Status Status
}

// Manager re-evaluates the shift collection on every clock tick and every
// snapshot, and issues at most one removal per expired record.
type Manager struct {
	client  store.Client
	removed map[string]struct{}
}

func NewManager(client store.Client) *Manager {
	return &Manager{
		client:  client,
		removed: make(map[string]struct{}),
	}
}

// Evaluate derives the status of every shift in the snapshot, removes the
// expired ones, and returns the pending/active rest in newest-first order.
// Records that fail to decode or parse are skipped, not fatal.
func (m *Manager) Evaluate(ctx context.Context, snap store.Snapshot, now time.Time) []Evaluation {
	present := make(map[string]struct{}, snap.Len())
	evals := make([]Evaluation, 0, snap.Len())

	for _, key := range snap.KeysNewestFirst() {
		present[key] = struct{}{}

		var s record.Shift
		if err := snap.Decode(key, &s); err != nil {
			fmt.Fprintf(os.Stderr, "shift: decode %s: %v\n", key, err)
			continue
		}
		status, err := StatusOf(s, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shift: %s: %v\n", key, err)
			continue
		}

		if status == Expired {
			m.retire(ctx, key)
			continue
		}
		evals = append(evals, Evaluation{Key: key, Shift: s, Status: status})
	}

	// Forget removals for keys no longer in the collection so the dedupe
	// set stays bounded by live records.
	for key := range m.removed {
		if _, ok := present[key]; !ok {
			delete(m.removed, key)
		}
	}

	return evals
}

// End removes a shift immediately regardless of its computed status.
func (m *Manager) End(ctx context.Context, key string) error {
	if err := m.client.Remove(record.ShiftsPath + "/" + key); err != nil {
		return err
	}
	m.removed[key] = struct{}{}
	return nil
}

func (m *Manager) retire(ctx context.Context, key string) {
	if _, done := m.removed[key]; done {
		return
	}
	if err := m.client.Remove(record.ShiftsPath + "/" + key); err != nil {
		// Leave the key unmarked so the next evaluation retries.
		fmt.Fprintf(os.Stderr, "shift: retire %s: %v\n", key, err)
		return
	}
	m.removed[key] = struct{}{}
}

// ValidateWindow enforces startTime < endTime at write time.
func ValidateWindow(start, end string) error {
	s, err := timeutil.ParseClock(start)
	if err != nil {
		return err
	}
	e, err := timeutil.ParseClock(end)
	if err != nil {
		return err
	}
	if !s.Before(e) {
		return fmt.Errorf("shift window %s–%s must end after it starts", s, e)
	}
	return nil
}
