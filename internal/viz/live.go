package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"barswing/internal/game"
)

const (
	canvasW         = 72
	canvasH         = 22
	worldW          = 16.0
	worldH          = 7.0
	historyCapacity = 600

	// Terminals deliver key repeats, not key-up events, so a directional
	// press latches the force for a short hold window instead.
	holdWindow = 150 * time.Millisecond
)

type TickMsg time.Time

// Model is the terminal play mode: it owns a session and renders it at a
// fixed frame rate.
type Model struct {
	session *game.Session
	canvas  *Canvas
	frame   time.Duration

	lastTick     time.Time
	heldKey      game.Key
	holdUntil    time.Time
	holding      bool
	angleHistory []float64
	showGraph    bool
	paused       bool
}

func NewModel(session *game.Session, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		session:      session,
		canvas:       NewCanvas(canvasW, canvasH, worldW, worldH),
		frame:        time.Second / time.Duration(frameRate),
		angleHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left":
			m.pressDirectional(game.KeyLeft)
		case "right":
			m.pressDirectional(game.KeyRight)
		case " ":
			m.session.Press(game.KeyRelease)
		case "r":
			m.session.Reset()
		case "g":
			m.showGraph = !m.showGraph
		case "p":
			m.paused = !m.paused
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.paused {
			m.step(now)
		}
		m.lastTick = now
		return m, tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) pressDirectional(k game.Key) {
	m.heldKey = k
	m.holding = true
	m.holdUntil = time.Now().Add(holdWindow)
	m.session.Press(k)
}

func (m *Model) step(now time.Time) {
	if m.holding && now.After(m.holdUntil) {
		m.holding = false
		m.session.Lift(m.heldKey)
	}

	dt := m.frame.Seconds()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.session.Advance(dt)

	m.angleHistory = append(m.angleHistory, m.session.Gymnast.Angle)
	if len(m.angleHistory) > historyCapacity {
		m.angleHistory = m.angleHistory[1:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	snap := m.session.Snapshot()

	for _, mat := range m.session.Arena.Mats {
		m.canvas.HLine(mat.Pos.X(), mat.Pos.Y()+m.session.Tuning.MatTopOffset, m.session.Tuning.MatHalfDepth, '=')
	}
	for _, bar := range m.session.Arena.Bars {
		m.canvas.Plot(bar.Pos.X(), bar.Pos.Y(), 'O')
	}

	if snap.Mode == game.ModeHolding {
		bar := m.session.Arena.Bars[m.session.Gymnast.Bar]
		m.canvas.Line(bar.Pos.X(), bar.Pos.Y(), snap.Pos.X(), snap.Pos.Y(), '.')
	}
	for _, p := range snap.Particles {
		m.canvas.Plot(p.X(), p.Y(), '*')
	}
	m.canvas.Plot(snap.Pos.X(), snap.Pos.Y(), '@')

	stats := m.statsView(snap)
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(stats))

	var sections []string
	sections = append(sections, headerStyle.Render("barswing"), main)
	if m.showGraph && len(m.angleHistory) > 1 {
		graph := asciigraph.Plot(m.angleHistory,
			asciigraph.Height(6),
			asciigraph.Width(canvasW),
			asciigraph.Caption("swing angle"),
		)
		sections = append(sections, graph)
	}
	sections = append(sections, helpStyle.Render("←/→ pump   space release   r reset   g graph   p pause   q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statsView(snap game.Snapshot) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}
	row("mode", snap.Mode.String())
	row("angle", fmt.Sprintf("%7.3f rad", snap.Angle))
	row("omega", fmt.Sprintf("%7.3f rad/s", snap.AngVel))
	row("pos", fmt.Sprintf("(%.2f, %.2f)", snap.Pos.X(), snap.Pos.Y()))
	row("time", fmt.Sprintf("%7.1f s", snap.Time))
	b.WriteByte('\n')
	b.WriteString(scoreStyle.Render(fmt.Sprintf("score %d", snap.Score)))
	if snap.FireActive {
		b.WriteByte('\n')
		b.WriteString(fireStyle.Render("landed!"))
	}
	return b.String()
}
