package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/projectile"
)

const (
	liveCols = 72
	liveRows = 20
)

type TickMsg time.Time

// LiveModel animates one projectile scenario, one tick per frame.
type LiveModel struct {
	scenario projectile.Scenario
	p        projectile.Projectile
	canvas   *canvas.Canvas
	trail    *Braille
	ink      lipgloss.Style
	frame    time.Duration
	tick     int
	plotted  int
	apex     float64
	running  bool
	landed   bool
	err      error
}

// NewLiveModel prepares sc for playback at fps frames per second.
func NewLiveModel(sc projectile.Scenario, fps int) (LiveModel, error) {
	c, err := canvas.New(sc.Width, sc.Height)
	if err != nil {
		return LiveModel{}, err
	}
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		scenario: sc,
		p:        sc.Start,
		canvas:   c,
		trail:    NewBraille(liveCols, liveRows),
		ink:      lipgloss.NewStyle().Foreground(lipgloss.Color(sc.Config.Paint.Hex())),
		frame:    time.Second / time.Duration(fps),
		apex:     sc.Start.Position.Y,
		running:  true,
	}, nil
}

func (m LiveModel) Canvas() *canvas.Canvas { return m.canvas }
func (m LiveModel) Landed() bool           { return m.landed }
func (m LiveModel) Err() error             { return m.err }

func (m LiveModel) Init() tea.Cmd {
	return m.next()
}

func (m LiveModel) next() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			stopped := m.landed || m.err != nil
			m = m.reset()
			if stopped {
				return m, m.next()
			}
		case "n":
			m.Step()
		}
	case TickMsg:
		if m.running {
			m.Step()
		}
		if m.landed || m.err != nil {
			return m, nil
		}
		return m, m.next()
	}
	return m, nil
}

// Step plots the current position and advances one tick. It does nothing
// once the projectile has landed or the tick limit is hit.
func (m *LiveModel) Step() {
	if m.landed || m.err != nil {
		return
	}
	if !m.p.IsValid() {
		m.err = &projectile.SimulationError{Tick: m.tick, Position: m.p.Position, Wrapped: projectile.ErrInvalidState}
		return
	}
	if !m.p.InFlight() {
		m.landed = true
		return
	}
	if limit := m.scenario.Config.MaxTicks; limit > 0 && m.tick >= limit {
		m.err = &projectile.SimulationError{Tick: m.tick, Position: m.p.Position, Wrapped: projectile.ErrNotLanded}
		return
	}

	if projectile.Plot(m.canvas, m.p.Position, m.scenario.Config.Paint) {
		m.plotted++
		m.plotTrail()
	}
	m.apex = math.Max(m.apex, m.p.Position.Y)
	m.p = projectile.Tick(m.scenario.Environment, m.p)
	m.tick++
}

func (m *LiveModel) plotTrail() {
	w, h := m.canvas.Width, m.canvas.Height
	x := int(math.Round(m.p.Position.X))
	y := h - int(math.Round(m.p.Position.Y))
	m.trail.Set(x*m.trail.Cols*2/w, y*m.trail.Rows*4/h)
}

func (m LiveModel) reset() LiveModel {
	fresh, err := NewLiveModel(m.scenario, int(time.Second/m.frame))
	if err != nil {
		m.err = err
		return m
	}
	return fresh
}

func (m LiveModel) View() string {
	status := StatusOK.Render("in flight")
	switch {
	case m.err != nil:
		status = StatusWarn.Render(m.err.Error())
	case m.landed:
		status = StatusOK.Render("landed")
	case !m.running:
		status = StatusWarn.Render("paused")
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		Title.Render(m.scenario.Name),
		Field("status", status),
		Field("tick", fmt.Sprintf("%d", m.tick)),
		Field("position", fmt.Sprintf("%.2f, %.2f", m.p.Position.X, m.p.Position.Y)),
		Field("velocity", fmt.Sprintf("%.2f, %.2f", m.p.Velocity.X, m.p.Velocity.Y)),
		Field("apex", fmt.Sprintf("%.2f", m.apex)),
		Field("plotted", fmt.Sprintf("%d", m.plotted)),
		Field("paint", Swatch(m.scenario.Config.Paint)),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		Panel.Render(m.ink.Render(strings.TrimSuffix(m.trail.String(), "\n"))),
		Panel.Render(stats),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, Hint.Render("space pause • n step • r restart • q quit"))
}

// RunLive plays sc in the terminal and returns the final model.
func RunLive(sc projectile.Scenario, fps int) (LiveModel, error) {
	m, err := NewLiveModel(sc, fps)
	if err != nil {
		return LiveModel{}, err
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return LiveModel{}, err
	}
	return final.(LiveModel), nil
}
