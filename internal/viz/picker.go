package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/sim"
)

// Lookup resolves a scenario by name.
type Lookup func(name string) (sim.Scenario, error)

// Picker lists scenarios and hands the chosen one to a live Model.
type Picker struct {
	names  []string
	lookup Lookup
	cfg    sim.Config
	logger *zap.Logger
	styles styles

	cursor int
	live   *Model
	err    error
}

func NewPicker(names []string, lookup Lookup, cfg sim.Config, logger *zap.Logger) Picker {
	return Picker{names: names, lookup: lookup, cfg: cfg, logger: logger, styles: newStyles(Themes[0])}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		m := next.(Model)
		p.live = &m
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter":
		s, err := p.lookup(p.names[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		m, err := NewModel(s, p.cfg, p.logger)
		if err != nil {
			p.err = err
			return p, nil
		}
		p.live = &m
		return p, m.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}
	var s strings.Builder
	s.WriteString(p.styles.header.Render("PHYSLAB") + "\n")
	for i, name := range p.names {
		if i == p.cursor {
			s.WriteString(p.styles.cursor.Render("> "+name) + "\n")
		} else {
			s.WriteString("  " + p.styles.value.Render(name) + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + p.styles.failed.Render(fmt.Sprint(p.err)) + "\n")
	}
	s.WriteString(p.styles.help.Render("↑↓:Select Enter:Run Q:Quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}

func RunPicker(names []string, lookup Lookup, cfg sim.Config, logger *zap.Logger) error {
	_, err := tea.NewProgram(NewPicker(names, lookup, cfg, logger), tea.WithAltScreen()).Run()
	return err
}
