// Package collision holds the static box geometry queries shared by the probe
// and physics systems.
package collision

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
)

// skin is the tolerance used when deciding whether two boxes touch.
const skin = 1e-3

// Result is the closest blocking hit of a ray.
type Result struct {
	Location mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Box builds a box from two opposite corners in any order.
func Box(a, b mgl32.Vec3) cube.BBox {
	return cube.Box(a.X(), a.Y(), a.Z(), b.X(), b.Y(), b.Z())
}

// CentredBox returns a box of the given half extents around centre.
func CentredBox(centre, half mgl32.Vec3) cube.BBox {
	return Box(centre.Sub(half), centre.Add(half))
}

// Centre returns the middle of bb.
func Centre(bb cube.BBox) mgl32.Vec3 {
	return bb.Min().Add(bb.Max()).Mul(0.5)
}

// FaceNormal returns the outward unit normal of a box face.
func FaceNormal(f cube.Face) mgl32.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}

// Contains reports whether p lies strictly inside bb.
func Contains(bb cube.BBox, p mgl32.Vec3) bool {
	lo, hi := bb.Min(), bb.Max()
	for i := 0; i < 3; i++ {
		if p[i] <= lo[i] || p[i] >= hi[i] {
			return false
		}
	}
	return true
}

// Raycast returns the closest box hit along the segment start→end. Boxes that
// contain start are ignored, so a ray cast from inside geometry passes out of
// it.
func Raycast(boxes []cube.BBox, start, end mgl32.Vec3) (Result, bool) {
	best := Result{Distance: math32.MaxFloat32}
	found := false
	for _, bb := range boxes {
		if Contains(bb, start) {
			continue
		}
		res, ok := trace.BBoxIntercept(bb, start, end)
		if !ok {
			continue
		}
		pos := res.Position()
		d := pos.Sub(start).Len()
		if d < best.Distance {
			best = Result{Location: pos, Normal: FaceNormal(res.Face()), Distance: d}
			found = true
		}
	}
	return best, found
}

// overlaps reports whether a and b intersect on every axis except skip.
func overlaps(a, b cube.BBox, skip int) bool {
	for i := 0; i < 3; i++ {
		if i == skip {
			continue
		}
		if a.Max()[i] <= b.Min()[i]+skin || a.Min()[i] >= b.Max()[i]-skin {
			return false
		}
	}
	return true
}

// ClipAxis shortens delta along axis so moving stops at stationary's face.
func ClipAxis(stationary, moving cube.BBox, axis int, delta float32) float32 {
	if delta == 0 || !overlaps(stationary, moving, axis) {
		return delta
	}
	if delta > 0 && moving.Max()[axis] <= stationary.Min()[axis]+skin {
		if gap := stationary.Min()[axis] - moving.Max()[axis]; gap < delta {
			return math32.Max(gap, 0)
		}
	}
	if delta < 0 && moving.Min()[axis] >= stationary.Max()[axis]-skin {
		if gap := stationary.Max()[axis] - moving.Min()[axis]; gap > delta {
			return math32.Min(gap, 0)
		}
	}
	return delta
}

// Sweep moves a box by delta against static boxes, resolving the vertical
// axis first and then the two horizontal axes. It returns the applied motion
// and which axes were blocked.
func Sweep(boxes []cube.BBox, moving cube.BBox, delta mgl32.Vec3) (mgl32.Vec3, [3]bool) {
	var moved mgl32.Vec3
	var blocked [3]bool
	for _, axis := range [3]int{2, 0, 1} {
		d := delta[axis]
		for _, bb := range boxes {
			d = ClipAxis(bb, moving, axis, d)
		}
		blocked[axis] = d != delta[axis]
		moved[axis] = d
		var step mgl32.Vec3
		step[axis] = d
		moving = moving.Translate(step)
	}
	return moved, blocked
}
