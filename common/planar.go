package common

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// Planar projects v onto the ground plane as a cp vector.
func Planar(v mgl32.Vec3) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Y())}
}

// FromPlanar lifts a ground plane vector back to 3D with the given height.
func FromPlanar(v cp.Vector, z float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), z}
}

// SignedAngle is the angle in radians from a to b on the ground plane, positive
// when b lies counter-clockwise of a seen from above (the positive yaw
// direction, so SignedAngle(r.Forward(), r.Right()) is +pi/2). Antiparallel
// vectors give +pi.
func SignedAngle(a, b mgl32.Vec3) float32 {
	pa, pb := Planar(a), Planar(b)
	return float32(cp.Vector{X: pa.Dot(pb), Y: pa.Cross(pb)}.ToAngle())
}

// AlongWall returns the horizontal direction parallel to a wall with the given
// normal, pointing forward for a character that has the wall on its right
// (or left when right is false).
func AlongWall(normal mgl32.Vec3, right bool) mgl32.Vec3 {
	n := Planar(normal)
	if n.LengthSq() == 0 {
		return mgl32.Vec3{}
	}
	n = n.Normalize()
	if right {
		return FromPlanar(n.Perp(), 0)
	}
	return FromPlanar(n.ReversePerp(), 0)
}
