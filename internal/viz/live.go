package viz

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	frameRate       = 60
)

// Tunable is a scenario whose parameters the view can adjust between
// restarts.
type Tunable interface {
	sim.Scenario
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a session on every frame and draws its scene.
type Model struct {
	scenario sim.Scenario
	cfg      sim.Config
	logger   *zap.Logger

	sess   *sim.Session
	scene  *Scene
	plots  *sink.Recorder
	canvas *Canvas
	camera *Camera
	theme  Theme
	styles styles

	running   bool
	speed     float64
	energy    []float64
	params    map[string]float64
	paramKeys []string
	selected  int
	showPlot  bool
	saved     string
	err       error
}

// NewModel starts the first session. Sessions log through logger; pass
// one that does not write to the terminal.
func NewModel(s sim.Scenario, cfg sim.Config, logger *zap.Logger) (Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		scenario: s,
		cfg:      cfg,
		logger:   logger,
		canvas:   NewCanvas(width, height),
		camera:   NewCamera(),
		theme:    Themes[0],
		styles:   newStyles(Themes[0]),
		running:  true,
		speed:    1,
	}
	if t, ok := s.(Tunable); ok {
		m.params = t.GetParams()
		for k := range m.params {
			m.paramKeys = append(m.paramKeys, k)
		}
		sort.Strings(m.paramKeys)
	}
	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// restart applies the edited parameters and begins a fresh session.
func (m *Model) restart() error {
	if t, ok := m.scenario.(Tunable); ok {
		for k, v := range m.params {
			if err := t.SetParam(k, v); err != nil {
				return err
			}
		}
	}
	model, err := m.scenario.Build()
	if err != nil {
		return err
	}
	if model.Name == "" {
		model.Name = m.scenario.Name()
	}

	m.scene = NewScene()
	m.plots = sink.NewRecorder()
	r := sim.NewRunner(
		sim.WithLogger(m.logger),
		sim.WithSinks(sim.Sinks{Render: m.scene, Plot: m.plots}),
	)
	sess, err := r.Start(model, m.cfg)
	if err != nil {
		return err
	}
	m.sess = sess
	m.energy = m.energy[:0]
	m.err = nil

	w, h := m.canvas.Dots()
	if lo, hi, ok := m.scene.Bounds(); ok {
		m.camera.Fit(lo, hi, w, h)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.running = false
			m.advance(1)
		case "r":
			if err := m.restart(); err != nil {
				m.err = err
			}
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "left", "h":
			m.camera.Yaw -= 0.1
		case "right", "l":
			m.camera.Yaw += 0.1
		case "pgup":
			m.camera.Pitch += 0.1
		case "pgdown":
			m.camera.Pitch -= 0.1
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case ">", ".":
			m.speed = math.Min(m.speed*2, 1024)
		case "<", ",":
			m.speed = math.Max(m.speed/2, 1.0/64)
		case "p":
			m.showPlot = !m.showPlot
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "s":
			m.saved, m.err = m.screenshot()
		}
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerFrame())
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	k := m.paramKeys[m.selected]
	v := m.params[k]
	if v == 0 {
		v = 1e-3
	}
	m.params[k] = v * factor
}

// stepsPerFrame keeps simulated time in step with wall time at speed 1.
func (m *Model) stepsPerFrame() int {
	dt := m.sess.Clock().Dt
	return max(1, int(math.Round(m.speed/(frameRate*dt))))
}

func (m *Model) advance(n int) {
	for range n {
		if m.sess.Done() {
			return
		}
		if err := m.sess.Step(); err != nil {
			m.err = err
			return
		}
	}
	m.energy = append(m.energy, m.sess.Energy())
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// screenshot writes the current scene to <scenario>-<step>.svg.
func (m Model) screenshot() (string, error) {
	m.canvas.Clear()
	m.scene.Draw(m.canvas, m.camera)
	path := fmt.Sprintf("%s-%06d.svg", m.scenario.Name(), m.sess.Clock().Step)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return path, m.canvas.WriteSVG(f, 4, "#00ff88")
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return m.styles.failed.Render("FAILED")
	case m.sess.Done():
		return m.styles.paused.Render("FINISHED (" + string(m.sess.Result().Reason) + ")")
	case !m.running:
		return m.styles.paused.Render("PAUSED")
	}
	return m.styles.running.Render("RUNNING")
}

// plotView charts the first series the scenario samples.
func (m Model) plotView() string {
	all := m.plots.AllSeries()
	if len(all) == 0 || len(all[0].Points) < 2 {
		return ""
	}
	pts := all[0].Points
	if len(pts) > historyCapacity {
		pts = pts[len(pts)-historyCapacity:]
	}
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	return asciigraph.Plot(ys, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(all[0].Label))
}

func (m Model) View() string {
	m.canvas.Clear()
	m.scene.Draw(m.canvas, m.camera)
	canvasView := m.styles.canvas.Render(m.canvas.String())

	st := m.styles
	clock := m.sess.Clock()
	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.scenario.Name())) + "\n")
	s.WriteString(m.status() + "\n\n")

	switch {
	case m.showPlot:
		if chart := m.plotView(); chart != "" {
			s.WriteString(st.graph.Render(chart) + "\n\n")
		}
	case len(m.energy) > 1:
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.3fs", clock.T))
	row("Step", humanize.Comma(int64(clock.Step)))
	row("Progress", ProgressBar(clock.T/clock.TMax, 16))
	row("Energy", fmt.Sprintf("%.6g", m.sess.Energy()))
	row("Drift", fmt.Sprintf("%.3g", m.sess.Result().EnergyDrift))
	row("Speed", fmt.Sprintf("%gx", m.speed))
	if m.saved != "" {
		row("Saved", m.saved)
	}
	if m.err != nil {
		s.WriteString(st.failed.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\nPARAMETERS (r to apply)\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(st.label.Render("  (none)") + "\n")
	}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-12s %.4g", k, m.params[k])
		if i == m.selected {
			s.WriteString(st.cursor.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.Render(line) + "\n")
		}
	}
	s.WriteString(st.help.Render("SP:Pause N:Step R:Restart Q:Quit\nTab ↑↓:Tune  ←→ PgUp/PgDn:Rotate\n+-:Zoom <>:Speed P:Plot T:Theme S:Save"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

// Run takes over the terminal until the user quits.
func Run(s sim.Scenario, cfg sim.Config, logger *zap.Logger) error {
	m, err := NewModel(s, cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
