package orbit

import "math"

// PositionOf returns a satellite's offset from the system center.
// The orbital angle is rotation*SpeedFactor*speed in degrees.
func PositionOf(s *Satellite, rotation, speed, zoom float64) (x, y float64) {
	angle := rotation * s.SpeedFactor * speed * math.Pi / 180
	distance := s.Distance * zoom
	return math.Cos(angle) * distance, math.Sin(angle) * distance
}

// OrbitRadius returns the on-screen orbit radius of a satellite.
func OrbitRadius(s *Satellite, zoom float64) float64 {
	return s.Distance * zoom
}

// ScaledSize returns the render radius of a body, used for drawing and
// hit testing alike.
func ScaledSize(b Body, zoom float64) float64 {
	return b.Style().BaseSize * zoom
}
