package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/scroll"
)

const (
	fps             = 60
	rowHeight       = 20.0
	historyCapacity = 600
	chartPoints     = 120
	maxFrameDt      = 0.1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options tune the demo. Zero fields take the defaults.
type Options struct {
	Title   string
	Theme   string
	Visible int // rows on screen

	// Terminals report key presses but never releases, so a drag is
	// released once no drag key has arrived for HoldTimeout seconds.
	HoldTimeout   float64
	DragStep      float64
	FlingVelocity float64
}

func DefaultOptions() Options {
	return Options{
		Title:         "kinetic",
		Theme:         "cyberpunk",
		Visible:       16,
		HoldTimeout:   0.35,
		DragStep:      24,
		FlingVelocity: 1500,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	if o.Visible <= 0 {
		o.Visible = d.Visible
	}
	if o.HoldTimeout <= 0 {
		o.HoldTimeout = d.HoldTimeout
	}
	if o.DragStep <= 0 {
		o.DragStep = d.DragStep
	}
	if o.FlingVelocity <= 0 {
		o.FlingVelocity = d.FlingVelocity
	}
	return o
}

// Model is the Bubble Tea model of the scroll demo. It either drives a
// live effect from the keyboard or replays recorded frames.
type Model struct {
	opts    Options
	theme   Theme
	styles  Styles
	effect  *scroll.Effect
	stepper frame.Stepper
	lo, hi  float64
	rows    []string

	start   time.Time
	t       float64
	running bool

	dragging bool
	dragPos  float64
	lastKey  float64

	state     scroll.State
	viewport  Viewport
	fraction  float64
	spring    harmonica.Spring
	thumb     float64
	thumbVel  float64
	values    []float64
	velocity  []float64
	recTimes  []float64
	recFrames []scroll.State

	replay   *Recording
	playHead int

	showHelp bool
	err      error
}

// Recording is a finished session: frame times and the state after each.
type Recording struct {
	Times  []float64
	Frames []scroll.State
}

// NewModel drives e live. The effect's bounds decide how many rows the
// list has.
func NewModel(e *scroll.Effect, stepper frame.Stepper, opts Options) *Model {
	if stepper == nil {
		stepper = frame.NewSingle()
	}
	lo, hi := e.Bounds()
	m := newModel(lo, hi, opts)
	m.effect = e
	m.stepper = stepper
	m.state = e.State()
	e.SetClock(func() float64 { return m.t })
	return m
}

// NewReplay plays rec back over a list spanning [lo, hi].
func NewReplay(rec *Recording, lo, hi float64, opts Options) *Model {
	m := newModel(lo, hi, opts)
	m.replay = rec
	if len(rec.Frames) > 0 {
		m.state = rec.Frames[0]
	}
	return m
}

func newModel(lo, hi float64, opts Options) *Model {
	opts = opts.withDefaults()
	theme := GetTheme(opts.Theme)

	n := opts.Visible + int(math.Ceil((hi-lo)/rowHeight))
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("%04d  %s", i, rowLabels[i%len(rowLabels)])
	}

	return &Model{
		opts:    opts,
		theme:   theme,
		styles:  NewStyles(theme),
		lo:      lo,
		hi:      hi,
		rows:    rows,
		start:   time.Now(),
		running: true,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.7),
	}
}

var rowLabels = []string{
	"inbox", "drafts", "archive", "starred", "sent", "spam",
	"receipts", "travel", "family", "work", "newsletters", "updates",
}

func (m *Model) Init() tea.Cmd { return tick() }

// Update handles keys and advances the effect on every tick.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.release()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "down", "j":
			m.drag(m.opts.DragStep)
		case "up", "k":
			m.drag(-m.opts.DragStep)
		case "pgdown", "J":
			m.fling(m.opts.FlingVelocity)
		case "pgup", "K":
			m.fling(-m.opts.FlingVelocity)
		case "r", "home":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.advance(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(now time.Time) {
	t := now.Sub(m.start).Seconds()
	dt := t - m.t
	m.t = t
	if !m.running {
		return
	}
	if dt > maxFrameDt {
		dt = maxFrameDt
	}

	if m.replay != nil {
		if len(m.replay.Frames) == 0 {
			return
		}
		if m.playHead < len(m.replay.Frames)-1 {
			m.playHead++
		}
		m.state = m.replay.Frames[m.playHead]
	} else {
		if m.dragging && m.t-m.lastKey > m.opts.HoldTimeout {
			m.release()
		}
		if dt > 0 {
			m.stepper.Advance(m.effect, dt)
		}
		m.state = m.effect.State()
		m.recTimes = append(m.recTimes, m.t)
		m.recFrames = append(m.recFrames, m.state)
	}

	m.push(m.state)
	m.fraction = m.viewport.Fraction(m.state.Scroll-m.lo, m.hi-m.lo)
	m.thumb, m.thumbVel = m.spring.Update(m.thumb, m.thumbVel, m.fraction*float64(m.opts.Visible-m.thumbLen()))
}

func (m *Model) push(s scroll.State) {
	m.values = append(m.values, s.Value)
	if len(m.values) > historyCapacity {
		m.values = m.values[1:]
	}
	m.velocity = append(m.velocity, s.Velocity)
	if len(m.velocity) > historyCapacity {
		m.velocity = m.velocity[1:]
	}
}

// drag moves the virtual finger by delta. The first press of a gesture
// only touches down, so a lone press releases as a tap.
func (m *Model) drag(delta float64) {
	if m.replay != nil || !m.running {
		return
	}
	m.lastKey = m.t
	if !m.dragging {
		m.dragPos = 0
		m.effect.BeginAt(m.dragPos, m.t)
		m.dragging = true
		return
	}
	m.dragPos += delta
	if err := m.effect.ExtendAt(m.dragPos, m.t); err != nil {
		m.err = err
	}
}

// release ends the drag stamped at the last key press; stamping it at
// the timeout would put a still sample at the end of the history and
// read as zero velocity.
func (m *Model) release() {
	if !m.dragging {
		return
	}
	m.dragging = false
	if err := m.effect.EndAt(m.dragPos, m.lastKey); err != nil {
		m.err = err
	}
}

func (m *Model) fling(v float64) {
	if m.replay != nil || !m.running {
		return
	}
	m.release()
	m.effect.Fling(v)
}

func (m *Model) reset() {
	m.values = m.values[:0]
	m.velocity = m.velocity[:0]
	m.viewport.Reset()
	if m.replay != nil {
		m.playHead = 0
		return
	}
	m.dragging = false
	m.effect.Reset(m.lo)
	m.effect.TakeTick()
}

// scrub steps a replay by one frame and pauses it.
func (m *Model) scrub(dir int) {
	if m.replay == nil || len(m.replay.Frames) == 0 {
		return
	}
	m.running = false
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.replay.Frames) {
		m.playHead = len(m.replay.Frames) - 1
	}
	m.state = m.replay.Frames[m.playHead]
	m.fraction = m.viewport.Fraction(m.state.Scroll-m.lo, m.hi-m.lo)
}

// Recording returns what the live session produced so far.
func (m *Model) Recording() *Recording {
	return &Recording{
		Times:  append([]float64(nil), m.recTimes...),
		Frames: append([]scroll.State(nil), m.recFrames...),
	}
}

func (m *Model) Err() error { return m.err }

func (m *Model) thumbLen() int {
	n := m.opts.Visible * m.opts.Visible / len(m.rows)
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the list, the scrollbar and the stats panel.
func (m *Model) View() string {
	list := m.styles.List.Render(lipgloss.JoinHorizontal(lipgloss.Top, m.renderRows(), " ", m.renderScrollbar()))

	var s strings.Builder
	s.WriteString(m.styles.Title.Render(GradientText(strings.ToUpper(m.opts.Title), m.theme.Title, m.theme.Chart)) + "\n")
	s.WriteString(m.status() + "\n\n")

	st := m.state
	s.WriteString(m.styles.Label.Render("Phase") + m.styles.Value.Render(st.Phase.String()) + "\n")
	s.WriteString(m.styles.Label.Render("Value") + m.styles.Value.Render(fmt.Sprintf("%.1f", st.Value)) + "\n")
	s.WriteString(m.styles.Label.Render("Velocity") + m.styles.Value.Render(fmt.Sprintf("%.1f", st.Velocity)) + "\n")
	s.WriteString(m.styles.Label.Render("Overscroll") + m.styles.Value.Render(fmt.Sprintf("%.1f", st.Overscroll)) + "\n")
	s.WriteString(m.styles.Label.Render("") + m.styles.Edge.Render(Meter(st.Overscroll, 100, 20)) + "\n")
	s.WriteString(m.styles.Label.Render("Position") + m.styles.Value.Render(fmt.Sprintf("%.3f", m.fraction)) + "\n")

	if len(m.velocity) > 1 {
		data := m.velocity
		if len(data) > chartPoints {
			data = data[len(data)-chartPoints:]
		}
		chart := asciigraph.Plot(data, asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("velocity"))
		s.WriteString(m.styles.Chart.Render(chart) + "\n")
	}
	if len(m.values) > 1 {
		c := NewCanvas(20, 3)
		c.Trace(m.values, m.lo, m.hi)
		s.WriteString(m.styles.Chart.Render(c.String()))
	}
	if m.err != nil {
		s.WriteString(m.styles.Edge.Render(m.err.Error()) + "\n")
	}

	s.WriteString(m.styles.Help.Render(Separator(36) + "\n" + m.hint()))
	view := lipgloss.JoinHorizontal(lipgloss.Top, list, m.styles.Stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m *Model) status() string {
	switch {
	case m.replay != nil && !m.running:
		return fmt.Sprintf("REPLAY PAUSED %d/%d", m.playHead+1, len(m.replay.Frames))
	case m.replay != nil:
		return fmt.Sprintf("REPLAY %d/%d", m.playHead+1, len(m.replay.Frames))
	case !m.running:
		return "PAUSED"
	case m.dragging:
		return "DRAGGING"
	}
	return "LIVE"
}

func (m *Model) hint() string {
	if m.replay != nil {
		return "SP:Pause R:Restart Q:Quit\n[ ]:Step T:Theme ?:Help"
	}
	return "↑↓:Drag PgUp/PgDn:Fling Q:Quit\nSP:Pause R:Reset T:Theme ?:Help"
}

// renderRows draws the visible window. Rows outside the content are
// drawn as edge filler so overscroll reads as a gap.
func (m *Model) renderRows() string {
	top := (m.state.Scroll - m.lo) / rowHeight
	first := int(math.Floor(top))
	lines := make([]string, m.opts.Visible)
	for i := range lines {
		idx := first + i
		switch {
		case idx < 0 || idx >= len(m.rows):
			lines[i] = m.styles.Edge.Render(fmt.Sprintf("%-24s", "·"))
		case idx%2 == 0:
			lines[i] = m.styles.Row.Render(fmt.Sprintf("%-24s", m.rows[idx]))
		default:
			lines[i] = m.styles.RowAlt.Render(fmt.Sprintf("%-24s", m.rows[idx]))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderScrollbar() string {
	start := int(math.Round(m.thumb))
	n := m.thumbLen()
	lines := make([]string, m.opts.Visible)
	for i := range lines {
		if i >= start && i < start+n {
			lines[i] = m.styles.Thumb.Render("█")
		} else {
			lines[i] = m.styles.Track.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Up/K, Down/J  - Drag the list       ║
║  PgUp, PgDn    - Fling               ║
║  Space         - Pause/Resume        ║
║  R             - Reset               ║
║  [ ]           - Step a replay       ║
║  T             - Cycle themes        ║
║  Q             - Quit                ║
║  ?             - Toggle this help    ║
╚══════════════════════════════════════╝`

// Run shows m full screen until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
