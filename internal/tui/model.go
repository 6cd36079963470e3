// Package tui is the interactive terminal front end of a tracking session.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/tracker"
)

const (
	headerRows   = 1
	footerRows   = 1
	panelWidth   = 34
	minSceneCols = 40

	orbitStep = 0.05
	zoomStep  = 1.1
	panStep   = 10.0

	defaultFrameInterval = time.Second / 30
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7fdbff"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb300"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	panelStyle  = lipgloss.NewStyle().PaddingLeft(1)
	popupStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#00ff00")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)

	dangerColors = map[string]lipgloss.Color{
		"red":    lipgloss.Color("#ff0000"),
		"orange": lipgloss.Color("#ffa500"),
		"lime":   lipgloss.Color("#00ff00"),
	}
)

// frameMsg is one animation tick.
type frameMsg time.Time

// loadMsg carries the finished feed fetch back to the update loop.
type loadMsg tracker.LoadResult

// Options configures the front end.
type Options struct {
	FrameInterval time.Duration
	// Context bounds the feed fetch.
	Context context.Context
	Logger  *slog.Logger
}

// Model is the bubbletea model driving a Session.
type Model struct {
	session *tracker.Session
	feed    tracker.FeedSource
	ctx     context.Context
	every   time.Duration
	log     *slog.Logger

	keys     keyMap
	help     help.Model
	showHelp bool

	width, height int
	status        string
}

// New creates the model. feed may be nil, in which case only the built-in
// bodies are shown.
func New(session *tracker.Session, feed tracker.FeedSource, opts Options) Model {
	m := Model{
		session: session,
		feed:    feed,
		ctx:     opts.Context,
		every:   opts.FrameInterval,
		log:     opts.Logger,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.every <= 0 {
		m.every = defaultFrameInterval
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if feed != nil {
		m.status = "Loading near-Earth objects..."
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.feed != nil {
		cmds = append(cmds, waitForLoad(m.session.StartLoad(m.ctx, m.feed)))
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.every, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// waitForLoad blocks on the fetch result. A closed channel yields no message.
func waitForLoad(ch <-chan tracker.LoadResult) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return loadMsg(res)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.session.Frame(time.Time(msg))
		return m, m.tick()
	case loadMsg:
		res := tracker.LoadResult(msg)
		n := m.session.ApplyLoad(res)
		if res.Err != nil {
			m.status = "Feed unavailable: " + res.Err.Error()
		} else {
			m.status = fmt.Sprintf("Loaded %d asteroids (%s to %s)", n, res.Start, res.End)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cols, rows := m.sceneSize()
		m.session.Resize(float64(cols), float64(rows)*cellAspect)
		m.log.Debug("view resized", "cols", cols, "rows", rows)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.session.ToggleScale()
	case key.Matches(msg, m.keys.Close):
		if m.showHelp {
			m.showHelp = false
		} else {
			m.session.ClosePopup()
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Left):
		m.session.Orbit(-orbitStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.session.Orbit(orbitStep, 0)
	case key.Matches(msg, m.keys.Up):
		m.session.Orbit(0, -orbitStep)
	case key.Matches(msg, m.keys.Down):
		m.session.Orbit(0, orbitStep)
	case key.Matches(msg, m.keys.ZoomIn):
		m.session.Zoom(1 / zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.session.Zoom(zoomStep)
	case key.Matches(msg, m.keys.PanUp):
		m.session.Pan(0, panStep)
	case key.Matches(msg, m.keys.PanDown):
		m.session.Pan(0, -panStep)
	case key.Matches(msg, m.keys.PanLeft):
		m.session.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.session.Pan(panStep, 0)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	p, inside := m.pointer(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.session.Zoom(1 / zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.session.Zoom(zoomStep)
	case msg.Action == tea.MouseActionMotion:
		if !inside {
			p = tracker.Pointer{}
		}
		m.session.PointerMove(p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.session.Click(p)
		}
	}
}

// pointer maps a terminal cell to a pointer on the scene surface, measured
// in cell widths.
func (m Model) pointer(x, y int) (tracker.Pointer, bool) {
	cols, rows := m.sceneSize()
	row := y - headerRows
	p := tracker.Pointer{
		X:      float64(x) + 0.5,
		Y:      (float64(row) + 0.5) * cellAspect,
		Width:  float64(cols),
		Height: float64(rows) * cellAspect,
	}
	return p, x >= 0 && x < cols && row >= 0 && row < rows
}

func (m Model) sceneSize() (cols, rows int) {
	cols = m.width
	if m.width-panelWidth >= minSceneCols {
		cols = m.width - panelWidth
	}
	rows = m.height - headerRows - footerRows
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (m Model) View() string {
	if m.width == 0 {
		return "Starting asteroid tracker..."
	}
	cols, rows := m.sceneSize()
	var out string
	m.session.Inspect(func(v tracker.View) {
		canvas := Rasterize(v, cols, rows)
		if v.Tooltip.Visible {
			canvas.Label(int(v.Tooltip.X)+2, int(v.Tooltip.Y/cellAspect), v.Tooltip.Text)
		}
		scene := canvas.Render()
		if cols < m.width {
			scene = lipgloss.JoinHorizontal(lipgloss.Top, scene, m.renderPanel(v, rows))
		}
		out = lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(v), scene, m.help.View(m.keys))
	})
	return out
}

func (m Model) renderHeader(v tracker.View) string {
	parts := []string{headerStyle.Render(v.SizeLabel), focusStyle.Render(v.FocusLabel)}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderPanel(v tracker.View, rows int) string {
	var content string
	switch {
	case m.showHelp:
		content = m.help.FullHelpView(m.keys.FullHelp())
	case v.Popup.Visible:
		content = renderPopup(v.Popup)
	default:
		content = renderSummary(v.Bodies)
	}
	return panelStyle.Width(panelWidth).Height(rows).MaxHeight(rows).Render(content)
}

func renderPopup(p tracker.Popup) string {
	text := wordwrap.String(strings.Join(p.Lines(), "\n"), panelWidth-6)
	title := titleStyle.Render(p.Name)
	box := popupStyle
	if c, ok := dangerColors[p.DangerColor]; ok {
		box = box.BorderForeground(c)
	}
	return box.Render(title+"\n"+text) + "\n" + statusStyle.Render("esc to close")
}

func renderSummary(bodies []*body.Body) string {
	var asteroids, danger int
	levels := map[body.DangerLevel]int{}
	for _, b := range bodies {
		if !b.IsAsteroid() {
			continue
		}
		asteroids++
		if b.Asteroid.Danger {
			danger++
		}
		levels[b.Asteroid.DangerLevel]++
	}
	lines := []string{
		titleStyle.Render("Near-Earth objects"),
		fmt.Sprintf("Tracked: %d", asteroids),
		fmt.Sprintf("Close to Earth: %d", danger),
		fmt.Sprintf("High: %d  Medium: %d  Low: %d", levels[body.DangerHigh], levels[body.DangerMedium], levels[body.DangerLow]),
		"",
		wordwrap.String("Hover a body for its distance, click an asteroid for details.", panelWidth-2),
	}
	return strings.Join(lines, "\n")
}
