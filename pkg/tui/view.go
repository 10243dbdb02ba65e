package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/opsdeck/pkg/alert"
	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/weather"
)

// View renders the whole dashboard from the current model. Everything is
// rebuilt every time; there is no retained screen state.
func (m Model) View() string {
	if m.machine.State() == alert.Broadcasting {
		return m.broadcastView()
	}

	sections := []string{m.headerView()}

	if m.machine.State() == alert.Active || m.machine.State() == alert.ConfirmingResolve {
		if current, ok := m.machine.Current(); ok {
			sections = append(sections, m.th.Banner.Render("EMERGENCY  "+strings.ToUpper(current.String())))
		}
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panelView(record.TasksPath),
		m.panelView(record.LostFoundPath),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panelView(record.ShiftsPath),
		m.panelView(record.CrowdPath),
	)
	sections = append(sections, top, bottom)

	if overlay := m.overlayView(); overlay != "" {
		sections = append(sections, overlay)
	}

	sections = append(sections, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := m.th.Panel.Title.Render("opsdeck")
	clock := m.th.Footer.Status.Render(m.clock.Now().Format("Mon 15:04:05"))

	forecast := weather.Placeholder
	if m.hasReport {
		forecast = m.report.String()
	}

	return title + "  " + clock + "  " + m.th.Weather.Render(forecast)
}

func (m Model) panelView(path string) string {
	v := m.views[path]
	focused := m.focusedPath() == path

	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render(v.Title))
	b.WriteString("\n")

	rows := v.Rows()
	if len(rows) == 0 {
		b.WriteString(m.th.Panel.Empty.Render("none"))
		b.WriteString("\n")
	}
	for i, row := range rows {
		style := m.th.Panel.Row
		switch {
		case focused && i == m.cursor[path]:
			style = m.th.Panel.Selected
		case row.Highlight:
			style = m.th.Panel.Highlight
		}
		if path == record.CrowdPath && !(focused && i == m.cursor[path]) && len(row.Cells) > 1 {
			style = m.th.LevelStyle(record.Level(row.Cells[1]))
		}
		b.WriteString(style.Render(strings.Join(row.Cells, "  ")))
		b.WriteString("\n")
	}

	for _, row := range v.History() {
		b.WriteString(m.th.Panel.History.Render(strings.Join(row.Cells, "  ")))
		b.WriteString("\n")
	}

	frame := m.th.Panel.Frame
	if focused {
		frame = m.th.Panel.FocusedFrame
	}
	width := m.width/2 - 4
	if width > 16 {
		frame = frame.Width(width)
	}
	return frame.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) overlayView() string {
	switch {
	case m.machine.State() == alert.ConfirmingRaise:
		pending, _ := m.machine.Pending()
		return m.confirmBox(fmt.Sprintf("Raise %q emergency? (y/n)", pending.Kind))
	case m.machine.State() == alert.ConfirmingResolve:
		current, _ := m.machine.Current()
		return m.confirmBox(fmt.Sprintf("Resolve %q emergency? (y/n)", current.Kind))
	case m.mode == modeKindSelect:
		lines := []string{"Emergency type (enter to select, esc to cancel):"}
		for i, kind := range emergencyKinds {
			marker := "  "
			if i == m.kindIndex {
				marker = "> "
			}
			lines = append(lines, marker+kind)
		}
		return m.th.Panel.Frame.Render(strings.Join(lines, "\n"))
	case m.mode == modeInsert:
		return "add: " + m.input.View()
	}
	return ""
}

func (m Model) confirmBox(question string) string {
	return m.th.Broadcast.Render(question)
}

func (m Model) broadcastView() string {
	current, ok := m.machine.Current()
	if !ok {
		return ""
	}
	text := "EMERGENCY\n\n" + strings.ToUpper(current.String())
	width := m.width - 16
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	box := m.th.Broadcast.Render(text)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) footerView() string {
	status := m.th.Footer.Status.Render(m.status)
	return m.th.Footer.Help.Render("[" + m.focusedView().Title + "] ") + status
}
