// Package alert sequences the emergency flow: a two-step raise
// confirmation, a timed full-screen broadcast, and a resolvable banner.
//
// The machine itself is local UI state; only the "current emergency" record
// is shared, mirrored to the store when a raise is confirmed and removed
// when a resolution is confirmed. A page reload therefore loses in-flight
// confirmation state, which is a known limitation rather than a bug.
package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/store"
)

type State int

const (
	Idle State = iota
	ConfirmingRaise
	Broadcasting
	Active
	ConfirmingResolve
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfirmingRaise:
		return "confirming raise"
	case Broadcasting:
		return "broadcasting"
	case Active:
		return "active"
	case ConfirmingResolve:
		return "confirming resolve"
	}
	return "unknown"
}

// DefaultBroadcast is how long the full-screen broadcast holds before
// settling into the banner.
const DefaultBroadcast = 10 * time.Second

// Machine drives the alert flow. It is meant to be called from a single
// event loop; it has no internal locking.
type Machine struct {
	client store.Client

	// Broadcast overrides DefaultBroadcast when positive.
	Broadcast time.Duration

	state      State
	pending    record.Emergency
	current    record.Emergency
	hasCurrent bool
	token      int
}

func New(client store.Client) *Machine {
	return &Machine{client: client}
}

func (m *Machine) State() State {
	return m.state
}

// Current returns the emergency the banner shows, if one is recorded.
func (m *Machine) Current() (record.Emergency, bool) {
	return m.current, m.hasCurrent
}

// Pending returns the not-yet-confirmed selection during ConfirmingRaise.
func (m *Machine) Pending() (record.Emergency, bool) {
	return m.pending, m.state == ConfirmingRaise
}

// BroadcastFor reports the configured broadcast hold.
func (m *Machine) BroadcastFor() time.Duration {
	if m.Broadcast > 0 {
		return m.Broadcast
	}
	return DefaultBroadcast
}

// Raise starts the confirmation flow for a new emergency. A type must be
// selected, and at most one emergency can be current at a time: raising
// while one is active is rejected rather than clobbering it.
func (m *Machine) Raise(kind, value string) error {
	if m.state != Idle {
		if m.hasCurrent {
			return errors.New("an emergency is already active; resolve it first")
		}
		return fmt.Errorf("cannot raise while %s", m.state)
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return errors.New("select an emergency type before raising")
	}
	m.pending = *record.NewEmergency(kind, strings.TrimSpace(value))
	m.state = ConfirmingRaise
	return nil
}

// Confirm advances whichever confirmation is in flight. Confirming a raise
// records the emergency remotely and starts the broadcast; confirming a
// resolve clears the record. A failed write leaves the machine where it was
// so the user can retry or cancel.
func (m *Machine) Confirm(ctx context.Context) error {
	switch m.state {
	case ConfirmingRaise:
		if err := m.client.Set(record.EmergencyPath, m.pending); err != nil {
			return err
		}
		m.current = m.pending
		m.hasCurrent = true
		m.state = Broadcasting
		m.token++
		return nil
	case ConfirmingResolve:
		if err := m.client.Remove(record.EmergencyPath); err != nil {
			return err
		}
		m.hasCurrent = false
		m.state = Idle
		return nil
	default:
		return fmt.Errorf("nothing to confirm while %s", m.state)
	}
}

// Cancel abandons the confirmation in flight. Cancelling a raise discards
// the pending selection; cancelling a resolve keeps the emergency active.
func (m *Machine) Cancel() {
	switch m.state {
	case ConfirmingRaise:
		m.pending = record.Emergency{}
		m.state = Idle
	case ConfirmingResolve:
		m.state = Active
	}
}

// BroadcastToken identifies the broadcast in flight. The timer that started
// it passes the token back so a firing from an earlier, superseded broadcast
// is ignored instead of advancing the machine.
func (m *Machine) BroadcastToken() int {
	return m.token
}

// BroadcastDone dismisses the full-screen broadcast into the banner.
func (m *Machine) BroadcastDone(token int) {
	if m.state == Broadcasting && token == m.token {
		m.state = Active
	}
}

// Resolve starts the resolution confirmation. An emergency must currently
// be recorded.
func (m *Machine) Resolve() error {
	if m.state != Active || !m.hasCurrent {
		return fmt.Errorf("no active emergency to resolve (state %s)", m.state)
	}
	m.state = ConfirmingResolve
	return nil
}

// ObserveRemote syncs the banner with the shared record so emergencies
// raised or resolved by other clients render here too. Confirmation and
// broadcast phases in flight locally are left alone.
func (m *Machine) ObserveRemote(snap store.Snapshot) {
	var remote record.Emergency
	present, err := snap.Single(&remote)
	if err != nil {
		return
	}

	switch m.state {
	case Idle:
		if present {
			m.current = remote
			m.hasCurrent = true
			m.state = Active
		}
	case Active:
		if !present {
			m.hasCurrent = false
			m.state = Idle
		} else {
			m.current = remote
		}
	}
}
