// Package ui provides the interactive terminal views for gridmind.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	WallColor   = lipgloss.Color("#2a3850")
	PelletColor = lipgloss.Color("#ffd54f")
	TargetColor = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6b7a90")
	Destructive = lipgloss.Color("#e53935")

	// Ghost colours by spawn letter; unknown letters use the first.
	GhostColors = map[byte]lipgloss.Color{
		'A': lipgloss.Color("#e57373"),
		'B': lipgloss.Color("#4db6ac"),
		'C': lipgloss.Color("#ff8a65"),
		'D': lipgloss.Color("#2196F3"),
	}
)

// Styles holds the rendering styles of the play view.
type Styles struct {
	Title   lipgloss.Style
	Status  lipgloss.Style
	Wall    lipgloss.Style
	Pellet  lipgloss.Style
	Target  lipgloss.Style
	Spawn   lipgloss.Style
	Board   lipgloss.Style
	Outcome lipgloss.Style
	Legend  lipgloss.Style
}

// DefaultStyles returns the standard play styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(TargetColor),
		Status:  lipgloss.NewStyle().Foreground(Muted),
		Wall:    lipgloss.NewStyle().Foreground(WallColor),
		Pellet:  lipgloss.NewStyle().Foreground(PelletColor),
		Target:  lipgloss.NewStyle().Bold(true).Foreground(TargetColor),
		Spawn:   lipgloss.NewStyle().Foreground(Muted),
		Board:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(WallColor).Padding(0, 1),
		Outcome: lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		Legend:  lipgloss.NewStyle().Foreground(Muted).Italic(true),
	}
}

// Glyph styles one board character.
func (s Styles) Glyph(ch byte) string {
	g := string(ch)
	switch ch {
	case '#':
		return s.Wall.Render(g)
	case '.':
		return s.Pellet.Render(g)
	case 'P':
		return s.Target.Render(g)
	case 'x':
		return s.Spawn.Render(g)
	case ' ':
		return g
	}
	color, ok := GhostColors[ch]
	if !ok {
		color = GhostColors['A']
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(g)
}
