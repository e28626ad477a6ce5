// Package gesture tracks the active gesture animation consumed by the
// translator and renderer. The engine reads gesture state once per frame so
// both consumers see the same snapshot.
package gesture

// Recognized gesture names.
const (
	Spin    = "spin"
	Rain    = "rain"
	Glow    = "glow"
	Firefly = "firefly"
	Flicker = "flicker"
	Shimmer = "shimmer"
)

// State is the per-frame snapshot of the active gesture.
type State struct {
	Name     string
	Progress float64 // 0 at trigger, 1 at completion

	// Shimmer wave origin in canvas coordinates.
	CenterX, CenterY float64
}

// Runner advances a single active gesture over time. Triggering a new
// gesture replaces the current one; gestures do not stack.
type Runner struct {
	active   bool
	state    State
	duration float64
	elapsed  float64
}

// NewRunner creates an idle gesture runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Trigger starts a gesture with the given duration in seconds.
func (r *Runner) Trigger(name string, duration float64) {
	if duration <= 0 {
		duration = 1.0
	}
	r.active = true
	r.duration = duration
	r.elapsed = 0
	r.state = State{Name: name}
}

// SetCenter sets the shimmer wave origin for the active gesture.
func (r *Runner) SetCenter(x, y float64) {
	r.state.CenterX = x
	r.state.CenterY = y
}

// Advance moves the gesture clock forward and returns the frame snapshot,
// or nil when no gesture is active. A gesture completes the frame its
// progress reaches 1.
func (r *Runner) Advance(dt float64) *State {
	if !r.active {
		return nil
	}
	r.elapsed += dt
	p := r.elapsed / r.duration
	if p >= 1 {
		r.state.Progress = 1
		r.active = false
		s := r.state
		return &s
	}
	r.state.Progress = p
	s := r.state
	return &s
}

// Active reports whether a gesture is in flight.
func (r *Runner) Active() bool {
	return r.active
}

// Cancel stops the active gesture immediately.
func (r *Runner) Cancel() {
	r.active = false
}
