package tui

import (
	"time"

	"tableflip.dev/opsdeck/pkg/store"
	"tableflip.dev/opsdeck/pkg/weather"
)

// snapshotMsg delivers the next snapshot from one collection subscription.
type snapshotMsg struct {
	snap store.Snapshot
	ok   bool
}

// tickMsg advances the wall clock once per second.
type tickMsg time.Time

// broadcastDoneMsg fires when the emergency broadcast hold elapses. The
// token identifies which broadcast started the timer.
type broadcastDoneMsg struct {
	token int
}

// weatherMsg delivers the latest forecast fetch outcome.
type weatherMsg weather.Update

// errMsg surfaces a failed store write on the status line.
type errMsg struct {
	err error
}
