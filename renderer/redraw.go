package renderer

// Redraw is a one-shot redraw request. Any goroutine may post it; the render
// loop takes it before each pass. Posts made while one is pending collapse.
type Redraw struct {
	pending chan struct{}
	wake    func()
}

// NewRedraw returns a Redraw that calls wake after every post, so a loop
// blocked waiting for window events can pick the request up.
func NewRedraw(wake func()) *Redraw {
	return &Redraw{
		pending: make(chan struct{}, 1),
		wake:    wake,
	}
}

// Request schedules a pass. It never blocks and never runs the pass itself.
func (r *Redraw) Request() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
	if r.wake != nil {
		r.wake()
	}
}

// Take reports whether a pass was requested and clears the request.
func (r *Redraw) Take() bool {
	select {
	case <-r.pending:
		return true
	default:
		return false
	}
}
