// Package tui is the live dashboard: one bubbletea program subscribing to
// every collection, re-rendering each panel from whole snapshots as they
// arrive. All state flows through the event loop; nothing mutates outside
// Update.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/opsdeck/pkg/alert"
	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/shift"
	"tableflip.dev/opsdeck/pkg/store"
	"tableflip.dev/opsdeck/pkg/tui/theme"
	"tableflip.dev/opsdeck/pkg/weather"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeKindSelect
)

// emergencyKinds are the raisable types, in selection order.
var emergencyKinds = []string{"fire", "medical", "security", "weather", "other"}

// wallClock is the dashboard's authoritative time source, advanced by the
// 1-second tick so every panel derives status from the same instant.
type wallClock struct {
	now time.Time
}

func (c *wallClock) Now() time.Time {
	return c.now
}

// Model contains the dashboard state.
type Model struct {
	ctx     context.Context
	svc     *app.Service
	machine *alert.Machine
	shifts  *shift.Manager
	clock   *wallClock

	panels []string
	views  map[string]*board.View
	cursor map[string]int
	focus  int

	lastShifts   store.Snapshot
	hasShiftSnap bool

	snaps     map[string]<-chan store.Snapshot
	weatherCh <-chan weather.Update

	report    weather.Report
	hasReport bool

	input     textinput.Model
	mode      mode
	kindIndex int

	status string
	width  int
	height int
	th     theme.Theme
}

// New builds the dashboard model and opens every collection subscription.
func New(ctx context.Context, svc *app.Service) (Model, error) {
	clock := &wallClock{now: time.Now()}

	views := map[string]*board.View{
		record.TasksPath:     board.Tasks(svc.Client),
		record.LostFoundPath: board.LostFound(svc.Client),
		record.ShiftsPath:    board.Shifts(svc.Client, clock.Now),
		record.CrowdPath:     board.Crowds(),
	}

	snaps := make(map[string]<-chan store.Snapshot, len(record.Paths()))
	for _, path := range record.Paths() {
		ch, err := svc.Subscribe(ctx, path)
		if err != nil {
			return Model{}, err
		}
		snaps[path] = ch
	}

	fetcher := &weather.Fetcher{}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""

	return Model{
		ctx:     ctx,
		svc:     svc,
		machine: alert.New(svc.Client),
		shifts:  shift.NewManager(svc.Client),
		clock:   clock,
		panels: []string{
			record.TasksPath,
			record.LostFoundPath,
			record.ShiftsPath,
			record.CrowdPath,
		},
		views:     views,
		cursor:    make(map[string]int),
		snaps:     snaps,
		weatherCh: fetcher.Run(ctx),
		input:     ti,
		status:    "j/k move, tab panes, a add, x act, d delete, e emergency, r resolve, q quit",
		th:        theme.Default(),
	}, nil
}

// Init starts the subscription waits, the weather wait, and the clock.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.snaps)+2)
	for path := range m.snaps {
		cmds = append(cmds, m.waitSnapshot(path))
	}
	cmds = append(cmds, m.waitWeather(), tickCmd())
	return tea.Batch(cmds...)
}

func (m Model) waitSnapshot(path string) tea.Cmd {
	ch := m.snaps[path]
	return func() tea.Msg {
		snap, ok := <-ch
		return snapshotMsg{snap: snap, ok: ok}
	}
}

func (m Model) waitWeather() tea.Cmd {
	ch := m.weatherCh
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return weatherMsg(update)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) broadcastCmd() tea.Cmd {
	token := m.machine.BroadcastToken()
	return tea.Tick(m.machine.BroadcastFor(), func(time.Time) tea.Msg {
		return broadcastDoneMsg{token: token}
	})
}

// Run starts the dashboard program and blocks until it exits.
func Run(ctx context.Context, svc *app.Service) error {
	m, err := New(ctx, svc)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
