package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/opsdeck/pkg/alert"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/record"
)

// Update handles every message on the single event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		if !msg.ok {
			break
		}
		path := msg.snap.Path
		switch path {
		case record.EmergencyPath:
			m.machine.ObserveRemote(msg.snap)
		case record.ShiftsPath:
			m.lastShifts = msg.snap
			m.hasShiftSnap = true
			m.shifts.Evaluate(m.ctx, msg.snap, m.clock.Now())
			m.views[path].Apply(msg.snap)
			m.clampCursor(path)
		default:
			m.views[path].Apply(msg.snap)
			m.clampCursor(path)
		}
		cmds = append(cmds, m.waitSnapshot(path))

	case tickMsg:
		m.clock.now = time.Time(msg)
		if m.hasShiftSnap {
			// Statuses can flip without a store change when the clock
			// crosses a window boundary.
			m.shifts.Evaluate(m.ctx, m.lastShifts, m.clock.Now())
			m.views[record.ShiftsPath].Apply(m.lastShifts)
			m.clampCursor(record.ShiftsPath)
		}
		cmds = append(cmds, tickCmd())

	case broadcastDoneMsg:
		m.machine.BroadcastDone(msg.token)

	case weatherMsg:
		if msg.Err != nil {
			m.hasReport = false
		} else {
			m.report = msg.Report
			m.hasReport = true
		}
		cmds = append(cmds, m.waitWeather())

	case errMsg:
		m.status = "ERR: " + msg.err.Error()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Confirmation overlays preempt everything else.
	switch m.machine.State() {
	case alert.ConfirmingRaise, alert.ConfirmingResolve:
		switch msg.String() {
		case "y", "enter":
			confirming := m.machine.State()
			if err := m.machine.Confirm(m.ctx); err != nil {
				m.status = "ERR: " + err.Error()
				break
			}
			if confirming == alert.ConfirmingRaise {
				m.status = "emergency broadcast started"
				cmds = append(cmds, m.broadcastCmd())
			} else {
				m.status = "emergency resolved"
			}
		case "n", "esc", "q":
			m.machine.Cancel()
			m.status = "cancelled"
		}
		return m, tea.Batch(cmds...)
	}

	switch m.mode {
	case modeKindSelect:
		switch msg.String() {
		case "esc", "q":
			m.mode = modeNormal
			m.status = "cancelled"
		case "up", "k":
			m.kindIndex = (m.kindIndex + len(emergencyKinds) - 1) % len(emergencyKinds)
		case "down", "j":
			m.kindIndex = (m.kindIndex + 1) % len(emergencyKinds)
		case "enter":
			m.mode = modeNormal
			if err := m.machine.Raise(emergencyKinds[m.kindIndex], ""); err != nil {
				m.status = "ERR: " + err.Error()
			}
		}
		return m, nil

	case modeInsert:
		switch msg.String() {
		case "enter":
			m.submitInput()
			m.mode = modeNormal
			m.input.Reset()
			m.input.Blur()
		case "esc":
			m.mode = modeNormal
			m.input.Reset()
			m.input.Blur()
			m.status = "cancelled"
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// modeNormal
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "l", "right":
		m.focus = (m.focus + 1) % len(m.panels)
	case "shift+tab", "h", "left":
		m.focus = (m.focus + len(m.panels) - 1) % len(m.panels)

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)

	case "a", "o":
		m.mode = modeInsert
		m.input.Placeholder = inputPlaceholder(m.focusedPath())
		m.input.SetValue("")
		if cmd := m.input.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, textinput.Blink)

	case "x", "enter":
		m.invokeSelected(primaryVerb(m.focusedPath()))

	case "d":
		m.invokeSelected("rm")

	case "e":
		if m.machine.State() != alert.Idle {
			m.status = "ERR: an emergency is already in progress"
			break
		}
		m.mode = modeKindSelect
		m.kindIndex = 0

	case "r":
		if err := m.machine.Resolve(); err != nil {
			m.status = "ERR: " + err.Error()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) focusedPath() string {
	return m.panels[m.focus]
}

func (m *Model) focusedView() *board.View {
	return m.views[m.focusedPath()]
}

func (m *Model) moveCursor(delta int) {
	path := m.focusedPath()
	rows := m.views[path].Rows()
	if len(rows) == 0 {
		m.cursor[path] = 0
		return
	}
	next := m.cursor[path] + delta
	if next < 0 {
		next = 0
	}
	if next > len(rows)-1 {
		next = len(rows) - 1
	}
	m.cursor[path] = next
}

func (m *Model) clampCursor(path string) {
	rows := m.views[path].Rows()
	if m.cursor[path] > len(rows)-1 {
		m.cursor[path] = 0
	}
}

func (m *Model) selectedRow() (board.Row, bool) {
	rows := m.focusedView().Rows()
	i := m.cursor[m.focusedPath()]
	if i < 0 || i >= len(rows) {
		return board.Row{}, false
	}
	return rows[i], true
}

// primaryVerb is what "x" does on the focused panel.
func primaryVerb(path string) string {
	switch path {
	case record.TasksPath:
		return "done"
	case record.LostFoundPath:
		return "found"
	case record.ShiftsPath:
		return "end"
	}
	return ""
}

func (m *Model) invokeSelected(verb string) {
	if verb == "" {
		return
	}
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	if err := m.focusedView().Invoke(m.ctx, verb, row.Key); err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.status = verb + " " + row.Key
}

func inputPlaceholder(path string) string {
	switch path {
	case record.TasksPath:
		return "task text"
	case record.LostFoundPath:
		return "item @ location"
	case record.ShiftsPath:
		return "HH:MM HH:MM person role"
	case record.CrowdPath:
		return "location normal|moderate|severe"
	}
	return ""
}

// submitInput parses the insert-mode line for the focused panel and issues
// the write. The panel itself only changes when the snapshot comes back.
func (m *Model) submitInput() {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return
	}

	var err error
	switch m.focusedPath() {
	case record.TasksPath:
		_, err = m.svc.AddTask(m.ctx, line)

	case record.LostFoundPath:
		item, location, _ := strings.Cut(line, "@")
		_, err = m.svc.ReportLost(m.ctx, strings.TrimSpace(item), strings.TrimSpace(location))

	case record.ShiftsPath:
		fields := strings.Fields(line)
		if len(fields) < 3 {
			err = fmt.Errorf("want: HH:MM HH:MM person role")
			break
		}
		role := ""
		if len(fields) > 3 {
			role = strings.Join(fields[3:], " ")
		}
		_, err = m.svc.AddShift(m.ctx, fields[0], fields[1], fields[2], role)

	case record.CrowdPath:
		fields := strings.Fields(line)
		if len(fields) < 2 {
			err = fmt.Errorf("want: location level")
			break
		}
		level := fields[len(fields)-1]
		location := strings.Join(fields[:len(fields)-1], " ")
		err = m.svc.SetCrowd(m.ctx, location, level)
	}

	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.status = "added"
}
