package viewer

// Zone is the navigation intent of a tap, derived from its horizontal
// position.
type Zone int

const (
	// ZoneRetreat is the left third of the viewport.
	ZoneRetreat Zone = iota
	// ZoneTogglePause is the middle third.
	ZoneTogglePause
	// ZoneAdvance is the right third.
	ZoneAdvance
)

func (z Zone) String() string {
	switch z {
	case ZoneRetreat:
		return "retreat"
	case ZoneAdvance:
		return "advance"
	default:
		return "toggle pause"
	}
}

// ZoneAt maps a tap at column x of a viewport that is width columns wide
// onto its zone. Integer math keeps the thirds boundaries deterministic:
// a tap exactly on a boundary belongs to the middle zone.
func ZoneAt(x, width int) Zone {
	if width <= 0 {
		return ZoneTogglePause
	}
	switch {
	case 3*x < width:
		return ZoneRetreat
	case 3*x > 2*width:
		return ZoneAdvance
	default:
		return ZoneTogglePause
	}
}

// Tap handles a tap or click at column x of a width-column viewport: it
// reveals the controls overlay and dispatches the zone's navigation intent.
// Taps on a closed session are dropped.
func (s *Session) Tap(x, width int) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.showControlsLocked()
	s.mu.Unlock()

	switch ZoneAt(x, width) {
	case ZoneRetreat:
		s.Retreat()
	case ZoneAdvance:
		s.Advance()
	default:
		s.TogglePause()
	}
}

// showControlsLocked reveals the controls overlay and re-arms its hide
// timer. A second tap within the window restarts the countdown, so the
// overlay always survives the full timeout after the latest tap.
func (s *Session) showControlsLocked() {
	s.controlsVisible = true
	if s.cancelControls != nil {
		s.cancelControls()
	}
	s.cancelControls = s.opts.Clock.After(s.opts.ControlsTimeout, s.hideControls)
}

func (s *Session) hideControls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controlsVisible = false
	s.cancelControls = nil
}
