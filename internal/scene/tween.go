package scene

import (
	"time"

	"asteroid-tracker/internal/vmath"
)

// Tween interpolates a point linearly over wall-clock time.
type Tween struct {
	From     vmath.Vec3
	To       vmath.Vec3
	Start    time.Time
	Duration time.Duration
}

// Sample returns the interpolated point at now and whether the tween is done.
func (t *Tween) Sample(now time.Time) (vmath.Vec3, bool) {
	if t.Duration <= 0 {
		return t.To, true
	}
	f := float64(now.Sub(t.Start)) / float64(t.Duration)
	if f >= 1 {
		return t.To, true
	}
	if f < 0 {
		f = 0
	}
	return vmath.Lerp(t.From, t.To, f), false
}
