package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/kinetic/internal/scroll"
)

func at(m *Model, sec float64) {
	m.Update(TickMsg(m.start.Add(time.Duration(sec * float64(time.Second)))))
}

func press(m *Model, key string) {
	if key == " " {
		m.Update(tea.KeyMsg{Type: tea.KeySpace})
		return
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestViewportFraction(t *testing.T) {
	tests := []struct {
		name   string
		scroll float64
		span   float64
		want   float64
	}{
		{"top", 0, 100, 0},
		{"middle", 50, 100, 0.5},
		{"bottom", 100, 100, 1},
		{"past bottom", 200, 100, 1.01},
		{"past top", -50, 100, -0.01},
		{"no span", 40, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Viewport
			got := v.Fraction(tt.scroll, tt.span)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fraction(%f, %f) = %f, want %f", tt.scroll, tt.span, got, tt.want)
			}
		})
	}
}

func TestViewportJumpGuard(t *testing.T) {
	var v Viewport
	v.Fraction(0, 100)

	if got := v.Fraction(90, 100); got != 0 {
		t.Errorf("expected jump to be held at 0, got %f", got)
	}
	if got := v.Fraction(40, 100); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("expected 0.4, got %f", got)
	}

	v.Reset()
	if got := v.Fraction(90, 100); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("expected reset viewport to accept 0.9, got %f", got)
	}
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	if got, want := c.String(), "⠁⢀\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	c.Clear()
	if got, want := c.String(), "⠀⠀\n"; got != want {
		t.Errorf("after clear got %q, want %q", got, want)
	}
}

func TestCanvasTrace(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Trace([]float64{0, 100, 200, 300, 200, 100}, 0, 300)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != brailleBlank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected trace to light some cells")
	}
	if n := strings.Count(c.String(), "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}

func TestMeter(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "░░░░░│░░░░░"},
		{-100, "█████│░░░░░"},
		{-500, "█████│░░░░░"},
		{50, "░░░░░│██░░░"},
	}
	for _, tt := range tests {
		if got := Meter(tt.v, 100, 10); got != tt.want {
			t.Errorf("Meter(%f) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestNextThemeWraps(t *testing.T) {
	if got := NextTheme("cyberpunk").Name; got != "retro" {
		t.Errorf("expected retro, got %s", got)
	}
	if got := NextTheme("sunset").Name; got != "cyberpunk" {
		t.Errorf("expected wrap to cyberpunk, got %s", got)
	}
	if got := GetTheme("nope").Name; got != "cyberpunk" {
		t.Errorf("expected fallback, got %s", got)
	}
}

func TestDragReleasesIntoFling(t *testing.T) {
	e := scroll.NewDamped(0, 1000)
	m := NewModel(e, nil, Options{})

	dt := 1.0 / 60
	now := 0.0
	for i := 0; i < 30; i++ {
		now += dt
		at(m, now)
		if i%2 == 0 {
			press(m, "j")
		}
	}
	if !m.dragging || !e.IsManual() {
		t.Fatal("expected a drag in flight")
	}
	dragged := e.Value()
	if math.Abs(dragged-14*m.opts.DragStep) > 1e-9 {
		t.Errorf("expected %f dragged, got %f", 14*m.opts.DragStep, dragged)
	}

	for i := 0; i < 25; i++ {
		now += dt
		at(m, now)
	}
	if m.dragging || e.IsManual() {
		t.Fatal("expected the hold timeout to release the drag")
	}
	if e.Velocity() <= 0 {
		t.Errorf("expected a forward fling, got velocity %f", e.Velocity())
	}
	if e.Value() <= dragged {
		t.Errorf("expected the fling to carry past %f, got %f", dragged, e.Value())
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
}

func TestLonePressIsATap(t *testing.T) {
	e := scroll.NewDamped(0, 1000)
	m := NewModel(e, nil, Options{})

	at(m, 0.02)
	press(m, "j")
	for i := 1; i <= 40; i++ {
		at(m, 0.02+float64(i)/60)
	}

	if m.dragging {
		t.Fatal("expected release")
	}
	if e.Value() != 0 || e.Velocity() != 0 {
		t.Errorf("expected no motion, got value %f velocity %f", e.Value(), e.Velocity())
	}
}

func TestFlingKeyMovesThumb(t *testing.T) {
	e := scroll.NewDamped(0, 1000)
	m := NewModel(e, nil, Options{})

	press(m, "J")
	if e.Velocity() != m.opts.FlingVelocity {
		t.Fatalf("expected velocity %f, got %f", m.opts.FlingVelocity, e.Velocity())
	}
	for i := 1; i <= 60; i++ {
		at(m, float64(i)/60)
	}

	if m.fraction <= 0 {
		t.Errorf("expected the window to move down, fraction %f", m.fraction)
	}
	if m.thumb <= 0 {
		t.Errorf("expected the thumb to follow, got %f", m.thumb)
	}
	rec := m.Recording()
	if len(rec.Frames) != 60 || len(rec.Times) != 60 {
		t.Errorf("expected 60 recorded frames, got %d/%d", len(rec.Frames), len(rec.Times))
	}
}

func TestPauseIgnoresInput(t *testing.T) {
	e := scroll.NewInertial()
	m := NewModel(e, nil, Options{})

	press(m, " ")
	press(m, "J")
	press(m, "j")
	if e.Velocity() != 0 || m.dragging {
		t.Error("expected paused model to ignore input")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected PAUSED in the view")
	}
}

func TestReplayScrub(t *testing.T) {
	rec := &Recording{
		Times:  []float64{0, 0.1, 0.2},
		Frames: []scroll.State{{Value: 0, Scroll: 0}, {Value: 10, Scroll: 10}, {Value: 20, Scroll: 20}},
	}
	m := NewReplay(rec, 0, 1000, Options{})

	at(m, 1.0/60)
	if m.state.Value != 10 {
		t.Errorf("expected frame 1, got value %f", m.state.Value)
	}

	press(m, "]")
	press(m, "]")
	if m.running || m.playHead != 2 {
		t.Errorf("expected paused at the last frame, got running=%v head=%d", m.running, m.playHead)
	}
	press(m, "[")
	if m.state.Value != 10 {
		t.Errorf("expected to step back to 10, got %f", m.state.Value)
	}
	if !strings.Contains(m.View(), "REPLAY PAUSED 2/3") {
		t.Error("expected replay status in the view")
	}

	press(m, "j")
	if m.dragging {
		t.Error("replay must not start drags")
	}
}

func TestThemeKey(t *testing.T) {
	m := NewModel(scroll.NewInertial(), nil, Options{Theme: "ocean"})
	press(m, "t")
	if m.theme.Name != "sunset" {
		t.Errorf("expected sunset, got %s", m.theme.Name)
	}
}

func TestPicker(t *testing.T) {
	items := []PickerItem{{Name: "default"}, {Name: "rubber"}}
	p := NewPicker(items)

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected enter to quit the picker")
	}
	if p.Chosen() != "rubber" {
		t.Errorf("expected rubber, got %q", p.Chosen())
	}

	q := NewPicker(items)
	q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if q.Chosen() != "" {
		t.Errorf("expected nothing chosen, got %q", q.Chosen())
	}
}
