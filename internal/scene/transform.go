package scene

// Transform is an axis-aligned affine map: scale then translate.
type Transform struct {
	SX, SY float64
	TX, TY float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{SX: 1, SY: 1}

// Apply maps a user-space point to device space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.SX + t.TX, y*t.SY + t.TY
}

// Invert maps a device-space point back to user space.
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.TX) / t.SX, (y - t.TY) / t.SY
}

// TransformStack implements the Save/Restore/Translate/Scale part of Surface.
// Surfaces embed it and read Current when drawing.
type TransformStack struct {
	cur   Transform
	saved []Transform
	init  bool
}

// Current returns the active transform.
func (s *TransformStack) Current() Transform {
	if !s.init {
		return Identity
	}
	return s.cur
}

func (s *TransformStack) ensure() {
	if !s.init {
		s.cur = Identity
		s.init = true
	}
}

// Save pushes the current transform.
func (s *TransformStack) Save() {
	s.ensure()
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved transform. An unbalanced Restore is ignored.
func (s *TransformStack) Restore() {
	s.ensure()
	if n := len(s.saved); n > 0 {
		s.cur = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
}

// Translate moves the origin by (dx, dy) in user space.
func (s *TransformStack) Translate(dx, dy float64) {
	s.ensure()
	s.cur.TX += dx * s.cur.SX
	s.cur.TY += dy * s.cur.SY
}

// Scale multiplies the axes.
func (s *TransformStack) Scale(sx, sy float64) {
	s.ensure()
	s.cur.SX *= sx
	s.cur.SY *= sy
}

// ResetTransform drops all saved state; surfaces call it from Clear.
func (s *TransformStack) ResetTransform() {
	s.cur = Identity
	s.saved = s.saved[:0]
	s.init = true
}

// Depth returns the number of saved transforms.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}
