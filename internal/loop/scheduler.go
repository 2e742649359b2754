package loop

// Scheduler requests that fn run on the next display refresh.
type Scheduler interface {
	Schedule(fn func())
}

// ManualScheduler holds at most one pending frame until Fire is called.
// Front ends call Fire from their own refresh signal; tests call it directly.
type ManualScheduler struct {
	pending func()
}

// Schedule replaces the pending frame.
func (s *ManualScheduler) Schedule(fn func()) {
	s.pending = fn
}

// Pending reports whether a frame is waiting.
func (s *ManualScheduler) Pending() bool {
	return s.pending != nil
}

// Fire runs the pending frame, if any, and reports whether one ran.
// The frame may schedule its successor.
func (s *ManualScheduler) Fire() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}
