package systems

import (
	"math"

	"github.com/pthm-cable/beasts/components"
)

// Headings and bearings are in degrees in screen coordinates: 0 is up,
// 90 is right, and y grows downwards.

// Direction returns the bearing from one position to another, in (-180, 180].
func Direction(from, to components.Position) float64 {
	dx := float64(to.X) - float64(from.X)
	dy := float64(to.Y) - float64(from.Y)
	return math.Atan2(dx, -dy) * 180 / math.Pi
}

// RelativeDirection returns the bearing of to as seen by a beast at from
// facing heading: 0 is straight ahead, positive is to the right.
// The result is in [-180, 180].
func RelativeDirection(from components.Position, heading float32, to components.Position) float64 {
	return normalizeDegrees(Direction(from, to) - float64(heading))
}

// Translate moves p by dist along heading. Negative distances move backwards.
func Translate(p components.Position, heading float32, dist float64) components.Position {
	r := float64(heading) * math.Pi / 180
	return components.Position{
		X: float32(float64(p.X) + math.Sin(r)*dist),
		Y: float32(float64(p.Y) - math.Cos(r)*dist),
	}
}

// normalizeDegrees wraps an angle to [-180, 180].
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// wrapHeading wraps an angle to [0, 360).
func wrapHeading(d float64) float32 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	h := float32(d)
	if h >= 360 {
		h = 0
	}
	return h
}

// Bounds is the rectangle beasts are confined to.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

// Clamp returns p moved to the nearest point inside b.
func (b Bounds) Clamp(p components.Position) components.Position {
	return components.Position{
		X: clampFloat(p.X, b.MinX, b.MaxX),
		Y: clampFloat(p.Y, b.MinY, b.MaxY),
	}
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
