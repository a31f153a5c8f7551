// Package stereo decides, per output mode, which eye views a frame needs and
// how the display shader combines them.
package stereo

// Parity is the view shown last in alternating mode: 0 or 1.
type Parity int

// InitialParity makes the first alternating frame show view 0.
const InitialParity Parity = 1

// Flip returns the other parity.
func (p Parity) Flip() Parity {
	if p == 0 {
		return 1
	}
	return 0
}

// Next is the view due in the coming alternating frame.
func (p Parity) Next() int {
	if p == 0 {
		return 1
	}
	return 0
}

// Effective returns the mode actually used for a frame. Multi-eye modes degrade
// to ModeLeft for mono sources.
func Effective(mode Mode, sourceIsStereo bool) Mode {
	if !sourceIsStereo || !mode.Valid() {
		return ModeLeft
	}
	return mode
}

// NeedsView reports whether view (0 or 1) must be refreshed this frame.
func NeedsView(mode Mode, view int, sourceIsStereo bool, parity Parity) bool {
	if view != 0 && view != 1 {
		return false
	}
	switch Effective(mode, sourceIsStereo).Policy() {
	case PolicyLeft:
		return view == 0
	case PolicyRight:
		return view == 1
	case PolicyAlternate:
		return view == parity.Next()
	default:
		return true
	}
}

// ResolveAlternating replaces ModeAlternating by the single eye due for the
// given parity. Other modes are returned as is.
func ResolveAlternating(mode Mode, parity Parity) Mode {
	if mode != ModeAlternating {
		return mode
	}
	if parity == 0 {
		return ModeRight
	}
	return ModeLeft
}

// State is the alternation state carried from one frame to the next.
type State struct {
	Parity Parity
}

// NewState returns the state for a fresh display surface.
func NewState() State {
	return State{Parity: InitialParity}
}

// Advance returns the state after a composite pass that used mode for a frame
// with viewCount views, and whether another pass must be scheduled right away.
func (s State) Advance(mode Mode, viewCount int) (State, bool) {
	if mode == ModeAlternating && viewCount == 2 {
		return State{Parity: s.Parity.Flip()}, true
	}
	return s, false
}
