package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridmind/internal/brain"
	"gridmind/internal/grid"
	"gridmind/internal/sim"
	"gridmind/internal/world"
)

type tickMsg time.Time

// PlayModel is the maze game view. In manual mode each movement key plays
// one tick; in bot mode the episode's controller plays on a timer.
type PlayModel struct {
	ep     *sim.Episode
	keys   KeyMap
	help   help.Model
	styles Styles

	auto     bool
	paused   bool
	delay    time.Duration
	quitting bool
}

// NewPlay creates a play view over ep.
func NewPlay(ep *sim.Episode, auto bool, delay time.Duration) PlayModel {
	return PlayModel{
		ep:     ep,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
		auto:   auto,
		delay:  delay,
	}
}

func (m PlayModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m PlayModel) Init() tea.Cmd {
	if m.auto {
		return m.tick()
	}
	return nil
}

// Update implements tea.Model.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused && m.auto {
				return m, m.tick()
			}
		case key.Matches(msg, m.keys.Auto):
			m.auto = !m.auto
			if m.auto && !m.paused {
				return m, m.tick()
			}
		default:
			if m.auto || m.paused || m.ep.Done() {
				return m, nil
			}
			if act, ok := m.keys.action(msg); ok {
				m.ep.StepWith(act)
			}
		}

	case tickMsg:
		if !m.auto || m.paused || m.ep.Done() {
			return m, nil
		}
		m.ep.Step()
		if !m.ep.Done() {
			return m, m.tick()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	mz := m.ep.Maze
	var b strings.Builder

	mode := "manual"
	if m.auto {
		mode = "bot"
	}
	if m.paused {
		mode += ", paused"
	}
	b.WriteString(m.styles.Title.Render("gridmind pursuit"))
	b.WriteString(m.styles.Status.Render(fmt.Sprintf("  seed %d, %s", m.ep.Seed, mode)))
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(fmt.Sprintf("Tick=%d | Pellets left=%d | Lives=%d | Score=%d",
		mz.Tick(), mz.PelletCount(), max(mz.Lives(), 0), mz.Score())))
	b.WriteString("\n")

	l := mz.Layout()
	var board strings.Builder
	for y := 0; y < l.H; y++ {
		if y > 0 {
			board.WriteByte('\n')
		}
		for x := 0; x < l.W; x++ {
			board.WriteString(m.styles.Glyph(world.MazeGlyph(mz, grid.C(x, y))))
		}
	}
	b.WriteString(m.styles.Board.Render(board.String()))
	b.WriteString("\n")

	for _, ag := range m.ep.Agents {
		line := fmt.Sprintf("%s %-11s", ag.ID, ag.Brain.Archetype())
		if ag.Brain.Archetype() == brain.ArchetypePursuer {
			line += " " + brain.Mode(ag.KB)
		}
		if goal, ok := ag.KB.Goal(); ok {
			line += " goal " + goal.String()
		}
		b.WriteString(m.styles.Legend.Render(line))
		b.WriteString("\n")
	}

	switch {
	case mz.Victory():
		b.WriteString(m.styles.Outcome.Render("VICTORY!"))
		b.WriteString("\n")
	case mz.GameOver():
		b.WriteString(m.styles.Outcome.Render("GAME OVER!"))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Result reports the episode as played so far.
func (m PlayModel) Result() sim.Result {
	return m.ep.Result()
}
