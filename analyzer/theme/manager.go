package theme

import (
	"fmt"
	"time"

	"picospectrum/analyzer"
	"picospectrum/analyzer/animator"
	"picospectrum/hal"
	"picospectrum/internal/log"
)

// NameDuration is how long a theme change shows the theme name.
const NameDuration = 2000 * time.Millisecond

// Manager owns the active theme and the name overlay. It re-arms the shared
// animator with the hold policy of each theme it switches to.
type Manager struct {
	sink hal.FrameSink
	anim *animator.Animator
	base animator.Config
	log  *log.Logger

	current Kind

	bars      BarsTheme
	waterfall WaterfallTheme
	radial    RadialTheme
	mirror    MirrorTheme

	overlayOn  bool
	overlayEnd time.Time
	overlayBox rect
	drawnBox   bool
}

// NewManager starts in Bars with a cleared sink. anim's current config is
// kept as the base that per-theme hold policies are applied to.
func NewManager(sink hal.FrameSink, anim *animator.Animator, l *log.Logger) (*Manager, error) {
	if sink == nil || anim == nil {
		return nil, fmt.Errorf("theme: nil sink or animator: %w", analyzer.ErrConfiguration)
	}
	m := &Manager{
		sink: sink,
		anim: anim,
		base: anim.Config(),
		log:  l.With("theme"),
	}
	m.bars.Init()
	m.waterfall.Init()
	m.radial.Init()
	m.mirror.Init()
	if err := m.anim.Reconfigure(Bars.AnimatorConfig(m.base)); err != nil {
		return nil, err
	}
	sink.FillScreen(Background)
	m.log.Debugf("initialized, default %s", m.current)
	return m, nil
}

func (m *Manager) Current() Kind { return m.current }
func (m *Manager) Name() string  { return m.current.String() }

// Set switches to k. Selecting the current theme does nothing; any other
// valid kind clears the sink, resets the theme and the animator and shows
// the name for NameDuration. It reports whether the theme changed.
func (m *Manager) Set(k Kind, now time.Time) bool {
	if !k.Valid() || k == m.current {
		return false
	}
	m.current = k
	m.sink.FillScreen(Background)
	m.drawnBox = false
	switch k {
	case Bars:
		m.bars.Init()
	case Waterfall:
		m.waterfall.Init()
	case Radial:
		m.radial.Init()
	case Mirror:
		m.mirror.Init()
	}
	if err := m.anim.Reconfigure(k.AnimatorConfig(m.base)); err != nil {
		m.log.Warnf("animator for %s: %v", k, err)
		m.anim.Reset()
	}
	m.log.Infof("switched to %s", k)
	m.ShowName(now, NameDuration)
	return true
}

func (m *Manager) Next(now time.Time) bool { return m.Set(m.current.Next(), now) }
func (m *Manager) Prev(now time.Time) bool { return m.Set(m.current.Prev(), now) }

// ShowName arms the overlay until now+d.
func (m *Manager) ShowName(now time.Time, d time.Duration) {
	m.overlayOn = true
	m.overlayEnd = now.Add(d)
}

// OverlayVisible reports whether the name is currently drawn.
func (m *Manager) OverlayVisible() bool { return m.overlayOn }

// UpdateOverlay retires an expired overlay and erases its box, since bars
// and the waterfall do not repaint every pixel.
func (m *Manager) UpdateOverlay(now time.Time) {
	if !m.overlayOn || now.Before(m.overlayEnd) {
		return
	}
	m.overlayOn = false
	if m.drawnBox {
		b := m.overlayBox
		m.sink.FillRect(b.x, b.y, b.w, b.h, Background)
		m.drawnBox = false
	}
}

// Render draws f with the current theme, then the overlay if armed.
func (m *Manager) Render(f Frame) error {
	if len(f.Levels) == 0 || len(f.Levels) > analyzer.MaxBands {
		return fmt.Errorf("theme: %d bands, want 1..%d: %w", len(f.Levels), analyzer.MaxBands, analyzer.ErrInvalidArgument)
	}
	switch m.current {
	case Bars:
		m.bars.Render(f, m.sink)
	case Waterfall:
		m.waterfall.Render(f, m.sink)
	case Radial:
		m.radial.Render(f, m.sink)
	case Mirror:
		m.mirror.Render(f, m.sink)
	}
	if m.overlayOn {
		m.overlayBox = drawOverlay(m.sink, m.Name())
		m.drawnBox = true
	}
	return nil
}

// Clear blanks the sink and resets the current theme.
func (m *Manager) Clear() {
	switch m.current {
	case Bars:
		m.bars.Clear(m.sink)
	case Waterfall:
		m.waterfall.Clear(m.sink)
	case Radial:
		m.radial.Clear(m.sink)
	case Mirror:
		m.mirror.Clear(m.sink)
	}
	m.drawnBox = false
}
