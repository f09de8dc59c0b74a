package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis. The world is Z-up; yaw 0 faces +X and yaw +90 faces +Y.
var Up = mgl32.Vec3{0, 0, 1}

const interpEpsilon = 1e-4

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InRange reports whether lo <= v <= hi.
func InRange(v, lo, hi float32) bool {
	return v >= lo && v <= hi
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// RotateAngleAxis rotates v by deg degrees around axis.
func RotateAngleAxis(v mgl32.Vec3, deg float32, axis mgl32.Vec3) mgl32.Vec3 {
	if axis.Len() == 0 {
		return v
	}
	return mgl32.QuatRotate(mgl32.DegToRad(deg), axis.Normalize()).Rotate(v)
}

// RotateYaw rotates v around the up axis. Positive angles turn +X toward +Y.
func RotateYaw(v mgl32.Vec3, deg float32) mgl32.Vec3 {
	return mgl32.Rotate3DZ(mgl32.DegToRad(deg)).Mul3x1(v)
}

// Horizontal drops the Z component.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), v.Y(), 0}
}

func HorizontalLen(v mgl32.Vec3) float32 {
	return math32.Sqrt(v.X()*v.X() + v.Y()*v.Y())
}

// SafeNormal returns the unit vector of v, or zero when v is too short to normalize.
func SafeNormal(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// FInterpTo moves current toward target at a rate proportional to the remaining
// distance. A non-positive speed snaps to the target.
func FInterpTo(current, target, dt, speed float32) float32 {
	if speed <= 0 {
		return target
	}
	dist := target - current
	if dist*dist < interpEpsilon*interpEpsilon {
		return target
	}
	return current + dist*Clamp(dt*speed, 0, 1)
}

// VInterpTo is FInterpTo for vectors.
func VInterpTo(current, target mgl32.Vec3, dt, speed float32) mgl32.Vec3 {
	if speed <= 0 {
		return target
	}
	dist := target.Sub(current)
	if dist.Dot(dist) < interpEpsilon*interpEpsilon {
		return target
	}
	return current.Add(dist.Mul(Clamp(dt*speed, 0, 1)))
}

// EaseInOut blends a to b with an eased alpha. exp controls the curve steepness.
func EaseInOut(a, b, alpha, exp float32) float32 {
	return Lerp(a, b, EaseInOutAlpha(alpha, exp))
}

func EaseInOutAlpha(alpha, exp float32) float32 {
	alpha = Clamp(alpha, 0, 1)
	if alpha < 0.5 {
		return 0.5 * math32.Pow(2*alpha, exp)
	}
	return 1 - 0.5*math32.Pow(2*(1-alpha), exp)
}

func ApproxEqual(a, b, tolerance float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func ApproxEqualVec3(a, b mgl32.Vec3, tolerance float32) bool {
	return a.Sub(b).Len() <= tolerance
}
