package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/opsdeck/pkg/record"
)

// Theme centralizes Lip Gloss styles for the dashboard.
type Theme struct {
	Panel     PanelTheme
	Footer    FooterTheme
	Banner    lipgloss.Style
	Broadcast lipgloss.Style
	Weather   lipgloss.Style
}

// PanelTheme styles one collection panel.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	Row          lipgloss.Style
	Selected     lipgloss.Style
	Highlight    lipgloss.Style
	History      lipgloss.Style
	Empty        lipgloss.Style
}

// FooterTheme styles the status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Theme{
		Panel: PanelTheme{
			Frame: frame,
			FocusedFrame: frame.
				BorderForeground(lipgloss.Color("212")),
			Title:     lipgloss.NewStyle().Bold(true),
			Row:       lipgloss.NewStyle(),
			Selected:  lipgloss.NewStyle().Reverse(true),
			Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			History:   lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Empty:     lipgloss.NewStyle().Faint(true).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Banner: lipgloss.NewStyle().
			Background(lipgloss.Color("160")).
			Foreground(lipgloss.Color("231")).
			Bold(true).
			Padding(0, 1),
		Broadcast: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Padding(1, 4),
		Weather: lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	}
}

// crowdRamp blends calm green into alarm red for the crowd panel.
var crowdRamp = map[record.Level]float64{
	record.LevelNormal:   0.0,
	record.LevelModerate: 0.5,
	record.LevelSevere:   1.0,
}

// LevelStyle colors a crowd level along the green-to-red ramp.
func (t Theme) LevelStyle(level record.Level) lipgloss.Style {
	green, _ := colorful.Hex("#2ecc71")
	red, _ := colorful.Hex("#e74c3c")
	blended := green.BlendLuv(red, crowdRamp[level])
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(blended.Hex()))
	if level == record.LevelSevere {
		style = style.Bold(true)
	}
	return style
}
