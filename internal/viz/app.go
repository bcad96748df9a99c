package viz

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/kinelab/internal/calc"
	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/ticker"
	"github.com/san-kum/kinelab/internal/viewport"
)

type screen int

const (
	screenMenu screen = iota
	screenFreeFall
	screenUniform
)

const (
	minCanvasWidth  = 24
	minCanvasHeight = 8

	// cellWidth and cellHeight approximate a terminal cell in viewport pixels.
	cellWidth  = 10.0
	cellHeight = 20.0
	// minSceneWidth and minSceneHeight keep the mappers' insets positive.
	minSceneWidth  = viewport.MinTrackWidth + 2*viewport.Margin
	minSceneHeight = viewport.GroundInset + viewport.TopInset + dropSprite
)

var menuItems = []struct {
	screen screen
	name   string
	desc   string
}{
	{screenFreeFall, "free fall", "drop under constant gravity"},
	{screenUniform, "uniform motion", "constant velocity along a track"},
}

// Model is the interactive application. Drivers, recorders and timers are
// pointers, so copies of Model made by Bubble Tea share one simulation.
type Model struct {
	cfg    *config.Config
	screen screen
	cursor int
	theme  Theme
	st     styles

	width, height int
	canvas        *Canvas

	fall       *sim.FreeFallDriver
	uniform    *sim.UniformDriver
	fallLog    *telemetry.Recorder
	uniformLog *telemetry.Recorder
	// viewports frozen by the last successful start of each motion
	fallVP    viewport.Viewport
	uniformVP viewport.Viewport

	motion *ticker.Timer
	bounce *ticker.Timer

	fallForm    form
	uniformForm form
	variant     string
	bar         progress.Model

	message    string
	messageErr bool
}

func NewModel(cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	theme := Themes[0]
	fallLog := telemetry.NewRecorder()
	uniformLog := telemetry.NewRecorder()

	m := Model{
		cfg:         cfg,
		theme:       theme,
		st:          newStyles(theme),
		canvas:      NewCanvas(60, 18),
		fall:        sim.NewFreeFallDriver(fallLog),
		uniform:     sim.NewUniformDriver(uniformLog),
		fallLog:     fallLog,
		uniformLog:  uniformLog,
		motion:      ticker.New(sim.FreeFallInterval),
		bounce:      ticker.New(sim.BounceInterval),
		fallForm:    newFreeFallForm(cfg),
		uniformForm: newUniformForm(cfg),
		variant:     cfg.Variant,
		bar:         newProgress(theme),
	}
	if m.variant == "" {
		m.variant = VariantBall
	}
	if cfg.Motion == string(telemetry.Uniform) {
		m.cursor = 1
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case ticker.TickMsg:
		return m, m.tick(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.halt()
			return m, tea.Quit
		}
		if m.screen == screenMenu {
			return m.menuKey(msg)
		}
		return m.simKey(msg)
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(w-panelWidth-6, minCanvasWidth)
	ch := max(h-6, minCanvasHeight)
	m.canvas = NewCanvas(cw, ch)
}

// measure returns the viewport of the canvas, or the configured one while the
// terminal size is still unknown.
func (m *Model) measure() viewport.Viewport {
	if m.width <= 0 || m.height <= 0 {
		return m.cfg.ViewportSize()
	}
	return viewport.Viewport{
		Width:  math.Max(float64(m.canvas.Width)*cellWidth, minSceneWidth),
		Height: math.Max(float64(m.canvas.Height)*cellHeight, minSceneHeight),
	}
}

// sceneViewport is the viewport the active screen draws in.
func (m *Model) sceneViewport() viewport.Viewport {
	switch {
	case m.screen == screenFreeFall && m.fall.State() != sim.Idle:
		return m.fallVP
	case m.screen == screenUniform && m.uniform.State() != sim.Idle:
		return m.uniformVP
	}
	return m.measure()
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "t":
		m.setTheme(nextTheme(m.theme.Name))
	case "enter", " ":
		m.screen = menuItems[m.cursor].screen
		m.message = ""
	}
	return m, nil
}

func (m Model) simKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.halt()
		m.screen = screenMenu
		return m, nil
	case "enter":
		return m, m.start()
	case "ctrl+x":
		m.stop()
		return m, nil
	case "tab", "down":
		m.form().next()
		return m, nil
	case "shift+tab", "up":
		m.form().prev()
		return m, nil
	case "ctrl+t":
		m.calcTime()
		return m, nil
	case "ctrl+e":
		if m.screen == screenUniform {
			m.calcVelocity()
		}
		return m, nil
	case "ctrl+p":
		m.cycleVariant()
		return m, nil
	case "ctrl+g":
		m.setTheme(nextTheme(m.theme.Name))
		return m, nil
	}

	var cmd tea.Cmd
	if m.screen == screenFreeFall {
		m.fallForm, cmd = m.fallForm.update(msg)
	} else {
		m.uniformForm, cmd = m.uniformForm.update(msg)
	}
	return m, cmd
}

func (m *Model) form() *form {
	if m.screen == screenUniform {
		return &m.uniformForm
	}
	return &m.fallForm
}

func (m *Model) driver() sim.Driver {
	if m.screen == screenUniform {
		return m.uniform
	}
	return m.fall
}

func (m *Model) recorder() *telemetry.Recorder {
	if m.screen == screenUniform {
		return m.uniformLog
	}
	return m.fallLog
}

// start launches a run from the form. A rejected start leaves the current
// run, if any, untouched.
func (m *Model) start() tea.Cmd {
	rec := m.recorder()
	mark := rec.Len()
	vp := m.measure()

	var err error
	switch m.screen {
	case screenFreeFall:
		var p sim.FreeFallParams
		if p, err = sim.ParseFreeFall(m.fallForm.value("height"), m.fallForm.value("velocity")); err == nil {
			if err = m.fall.Start(p, vp); err == nil {
				m.fallVP = vp
			}
		}
	case screenUniform:
		var p sim.UniformParams
		f := m.uniformForm
		if p, err = sim.ParseUniform(f.value("start"), f.value("velocity"), f.value("target"), f.value("duration")); err == nil {
			if err = m.uniform.Start(p, vp); err == nil {
				m.uniformVP = vp
			}
		}
	}
	if err != nil {
		log.Printf("start %s rejected: %v", m.driver().Motion(), err)
		m.setMessage(describeError(err), true)
		return nil
	}

	rec.Drop(mark)
	m.bounce.Stop()
	m.message = ""
	d := m.driver()
	log.Printf("start %s: %+v", d.Motion(), d.Session())
	m.motion.SetInterval(d.Interval())
	return m.motion.Start()
}

func (m *Model) stop() {
	m.driver().Stop()
	m.motion.Stop()
	m.bounce.Stop()
}

// halt stops both drivers, used when leaving a screen.
func (m *Model) halt() {
	m.fall.Stop()
	m.uniform.Stop()
	m.motion.Stop()
	m.bounce.Stop()
}

func (m *Model) tick(msg ticker.TickMsg) tea.Cmd {
	switch {
	case m.motion.Accept(msg):
		if m.driver().Step() {
			return m.motion.Next()
		}
		m.motion.Stop()
		if m.screen == screenFreeFall && m.fall.Bounce() != nil {
			return m.bounce.Start()
		}
	case m.bounce.Accept(msg):
		b := m.fall.Bounce()
		if b == nil {
			m.bounce.Stop()
			return nil
		}
		if _, more := b.Step(); more {
			return m.bounce.Next()
		}
		m.bounce.Stop()
	}
	return nil
}

func (m *Model) calcTime() {
	switch m.screen {
	case screenFreeFall:
		p, err := sim.ParseFreeFall(m.fallForm.value("height"), m.fallForm.value("velocity"))
		if err != nil {
			m.setMessage(describeError(err), true)
			return
		}
		_, cerr := calc.TimeToGround(p.Height, p.Velocity)
		m.setMessage(calc.DescribeGround(p.Height, p.Velocity), cerr != nil)
	case screenUniform:
		f := m.uniformForm
		x0, err := sim.ParseValue("start", f.value("start"))
		if err == nil {
			var xf, v float64
			if xf, err = sim.ParseValue("target", f.value("target")); err == nil {
				if v, err = sim.ParseValue("velocity", f.value("velocity")); err == nil {
					_, cerr := calc.TimeToReach(x0, xf, v)
					m.setMessage(calc.DescribeReach(x0, xf, v), cerr != nil)
					return
				}
			}
		}
		m.setMessage(describeError(err), true)
	}
}

func (m *Model) calcVelocity() {
	f := m.uniformForm
	x0, err := sim.ParseValue("start", f.value("start"))
	if err == nil {
		var xf, d float64
		if xf, err = sim.ParseValue("target", f.value("target")); err == nil {
			if d, err = sim.ParseValue("duration", f.value("duration")); err == nil {
				v, cerr := calc.RequiredVelocity(x0, xf, d)
				m.setMessage(calc.DescribeVelocity(x0, xf, d), cerr != nil)
				if cerr == nil {
					m.uniformForm.set("velocity", number(v))
				}
				return
			}
		}
	}
	m.setMessage(describeError(err), true)
}

func (m *Model) cycleVariant() {
	for i, v := range config.Variants {
		if v == m.variant {
			m.variant = config.Variants[(i+1)%len(config.Variants)]
			return
		}
	}
	m.variant = config.Variants[0]
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.st = newStyles(t)
	m.bar = newProgress(t)
}

func (m *Model) setMessage(text string, isErr bool) {
	m.message, m.messageErr = text, isErr
}

// describeError turns a start or parse failure into text for the user.
func describeError(err error) string {
	var perr *sim.ParamError
	switch {
	case errors.Is(err, sim.ErrInputFormat):
		if errors.As(err, &perr) {
			return fmt.Sprintf("Please enter valid numbers (%s: %s).", perr.Field, perr.Reason)
		}
		return "Please enter valid numbers."
	case errors.Is(err, sim.ErrUnreachable):
		if errors.As(err, &perr) {
			return "Target not reachable: " + perr.Reason + "."
		}
		return "Target not reachable."
	case errors.As(err, &perr):
		return fmt.Sprintf("Invalid %s: %s.", perr.Field, perr.Reason)
	}
	return err.Error()
}

func (m Model) View() string {
	if m.screen == screenMenu {
		return m.viewMenu()
	}
	return m.viewSim()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + m.st.title.Render("KINELAB") + "\n")
	b.WriteString("    " + m.st.subtitle.Render("motion laboratory") + "\n")
	b.WriteString("    " + m.st.separator(25) + "\n\n")
	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", m.st.cursor.Render("▸"), m.st.item.Render(fmt.Sprintf("%-16s", item.name)), m.st.focused.Render(item.desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", m.st.hint.Render(fmt.Sprintf("%-16s", item.name)), m.st.hint.Render(item.desc)))
		}
	}
	b.WriteString("\n    " + m.st.hints("j/k", "navigate", "enter", "select", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

func (m Model) viewSim() string {
	m.draw()
	canvasView := m.st.canvas.Render(m.canvas.String())

	rec := m.recorder()
	var s strings.Builder
	title := "FREE FALL"
	if m.screen == screenUniform {
		title = "UNIFORM MOTION"
	}
	s.WriteString(m.st.title.Render(title) + "  " + m.st.subtitle.Render(m.variant+" · "+m.theme.Name) + "\n\n")
	s.WriteString(m.form().view(m.st) + "\n")

	if last, ok := rec.Last(); ok {
		s.WriteString(m.st.status.Render(last.Status) + "\n\n")
		s.WriteString(telemetryView(m.st, last))
		s.WriteString(progressView(m.st, m.bar, last.Progress) + "\n")
		s.WriteString(chartView(m.st, last.Motion, rec.Positions()) + "\n")
	} else {
		s.WriteString(m.st.hint.Render("Press enter to start.") + "\n")
	}

	if m.message != "" {
		style := m.st.info
		if m.messageErr {
			style = m.st.err
		}
		s.WriteString("\n" + style.Width(panelWidth-4).Render(m.message) + "\n")
	}

	keys := []string{"enter", "start", "^x", "stop", "tab", "field", "^t", "time"}
	if m.screen == screenUniform {
		keys = append(keys, "^e", "velocity")
	}
	s.WriteString("\n" + m.st.hints(keys...) + "\n")
	s.WriteString(m.st.hints("^p", "sprite", "^g", "theme", "esc", "menu") + "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.panel.Render(s.String()))
}

// draw renders the current frame of the active screen onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.sceneViewport()

	switch m.screen {
	case screenFreeFall:
		top := viewport.TopInset
		if last, ok := m.fallLog.Last(); ok {
			top = last.Screen
		}
		if b := m.fall.Bounce(); b != nil {
			top = b.Y()
		}
		DrawFreeFall(m.canvas, vp, top, m.variant)
	case screenUniform:
		left, start, end := vp.Width/2-carWidth/2, 0.0, 0.0
		mapping := m.uniform.Mapping()
		if u, ok := m.uniform.Model(); ok {
			start = mapping.Screen(u.Start())
			end = start
			if last, ok := m.uniformLog.Last(); ok {
				left = last.Screen
				end = mapping.Screen(last.FinalPosition)
			}
		} else {
			start, end = left, left
		}
		DrawUniform(m.canvas, vp, left, start, end, m.variant)
	}
}

// Run starts the interactive application and blocks until it quits.
func Run(cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	return err
}
