package picker

import (
	"testing"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name   string
		flavor catppuccin.Flavor
	}{
		{"latte", catppuccin.Latte},
		{"frappe", catppuccin.Frappe},
		{"macchiato", catppuccin.Macchiato},
		{"mocha", catppuccin.Mocha},
		{"", catppuccin.Mocha},
		{"solarized", catppuccin.Mocha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := ThemeByName(tt.name)
			if th.Text != lipgloss.Color(tt.flavor.Text().Hex) {
				t.Errorf("Text: got %v, want %v", th.Text, tt.flavor.Text().Hex)
			}
			if th.Primary != lipgloss.Color(tt.flavor.Mauve().Hex) {
				t.Errorf("Primary: got %v, want %v", th.Primary, tt.flavor.Mauve().Hex)
			}
		})
	}
}
