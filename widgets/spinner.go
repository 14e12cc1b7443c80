package widgets

import (
	"time"

	"github.com/framegrace/cellkit/core"
	"github.com/jonboulle/clockwork"
)

// DefaultSpinnerFrames is a braille dot cycle.
var DefaultSpinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// SpinnerConfig configures a Spinner. Interval defaults to 100ms and Clock
// to the real clock.
type SpinnerConfig struct {
	core.Config
	Label    string
	Frames   []rune
	Interval time.Duration
	Clock    clockwork.Clock
	Running  bool
}

// Spinner shows an activity indicator. The frame is derived from the clock
// at render time, so the widget needs no timer of its own.
type Spinner struct {
	core.BaseWidget
	Label    string
	Frames   []rune
	Interval time.Duration

	clock   clockwork.Clock
	running bool
	start   time.Time
}

func NewSpinner(cfg SpinnerConfig) *Spinner {
	s := &Spinner{Label: cfg.Label, Frames: cfg.Frames, Interval: cfg.Interval, clock: cfg.Clock}
	if len(s.Frames) == 0 {
		s.Frames = DefaultSpinnerFrames
	}
	if s.Interval <= 0 {
		s.Interval = 100 * time.Millisecond
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	w := 1
	if cfg.Label != "" {
		w += 1 + core.TextWidth(cfg.Label)
	}
	s.Init(cfg.Config, w, 1)
	if cfg.Running {
		s.Start()
	}
	return s
}

func (s *Spinner) Start() {
	if !s.running {
		s.running = true
		s.start = s.clock.Now()
	}
}

func (s *Spinner) Stop()         { s.running = false }
func (s *Spinner) Running() bool { return s.running }

// Frame returns the index of the frame to draw.
func (s *Spinner) Frame() int {
	if !s.running {
		return 0
	}
	return int(s.clock.Since(s.start)/s.Interval) % len(s.Frames)
}

func (s *Spinner) Render(p *core.Painter) {
	fg, bg := s.Colors(Theme.Accent, Theme.Surface)
	r := core.Bounds(s)
	p.Fill(r, ' ', fg, bg)
	glyph := ' '
	if s.running {
		glyph = s.Frames[s.Frame()]
	}
	p.Cell(r.X, r.Y, glyph, fg, bg)
	if s.Label != "" {
		p.Text(r.X+2, r.Y, core.TruncateText(s.Label, r.W-2), Theme.Text, bg)
	}
}
