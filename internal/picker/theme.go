package picker

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used by the picker.
type Theme struct {
	Primary   lipgloss.Color // banner, cursor
	Secondary lipgloss.Color // selected row
	Accent    lipgloss.Color // filter prompt, preview border when focused
	Attached  lipgloss.Color // attached marker
	Running   lipgloss.Color // window count of live sessions
	Error     lipgloss.Color // preview failures
	Text      lipgloss.Color // primary text
	TextMuted lipgloss.Color // workdir, hints
	Border    lipgloss.Color // preview border
	Selection lipgloss.Color // selected row background
}

// ThemeByName returns the catppuccin flavour with the given name. Unknown
// names fall back to mocha.
func ThemeByName(name string) Theme {
	return themeFromFlavor(flavorFromName(name))
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

func themeFromFlavor(f catppuccin.Flavor) Theme {
	return Theme{
		Primary:   lipgloss.Color(f.Mauve().Hex),
		Secondary: lipgloss.Color(f.Blue().Hex),
		Accent:    lipgloss.Color(f.Teal().Hex),
		Attached:  lipgloss.Color(f.Peach().Hex),
		Running:   lipgloss.Color(f.Green().Hex),
		Error:     lipgloss.Color(f.Red().Hex),
		Text:      lipgloss.Color(f.Text().Hex),
		TextMuted: lipgloss.Color(f.Overlay1().Hex),
		Border:    lipgloss.Color(f.Surface1().Hex),
		Selection: lipgloss.Color(f.Surface0().Hex),
	}
}

// styles holds all lipgloss styles derived from a Theme.
// Constructed once from a Theme and stored in pickerModel.
type styles struct {
	banner   lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	attached lipgloss.Style
	running  lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	err      lipgloss.Style
	preview  lipgloss.Style
	prompt   lipgloss.Style

	// Hints
	hintKey  lipgloss.Style
	hintDesc lipgloss.Style
}

// newStyles builds all styles from a theme.
func newStyles(t Theme) styles {
	return styles{
		banner:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.Selection),
		attached: lipgloss.NewStyle().Bold(true).Foreground(t.Attached),
		running:  lipgloss.NewStyle().Foreground(t.Running),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		dim:      lipgloss.NewStyle().Foreground(t.TextMuted),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		preview: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		prompt: lipgloss.NewStyle().Foreground(t.Accent),

		hintKey:  lipgloss.NewStyle().Foreground(t.Text),
		hintDesc: lipgloss.NewStyle().Foreground(t.TextMuted),
	}
}
