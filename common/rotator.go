package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rotator is an orientation in degrees.
type Rotator struct {
	Pitch float32 `yaml:"pitch"`
	Yaw   float32 `yaml:"yaw"`
	Roll  float32 `yaml:"roll"`
}

func YawRotator(yaw float32) Rotator {
	return Rotator{Yaw: yaw}
}

// RotationFromVector returns the rotation that faces along v. Roll is always zero.
func RotationFromVector(v mgl32.Vec3) Rotator {
	return Rotator{
		Yaw:   mgl32.RadToDeg(math32.Atan2(v.Y(), v.X())),
		Pitch: mgl32.RadToDeg(math32.Atan2(v.Z(), HorizontalLen(v))),
	}
}

func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

func (r Rotator) Normalized() Rotator {
	return Rotator{Pitch: NormalizeAxis(r.Pitch), Yaw: NormalizeAxis(r.Yaw), Roll: NormalizeAxis(r.Roll)}
}

// Vector is the unit direction the rotation faces, pitch included.
func (r Rotator) Vector() mgl32.Vec3 {
	p, y := mgl32.DegToRad(r.Pitch), mgl32.DegToRad(r.Yaw)
	cp := math32.Cos(p)
	return mgl32.Vec3{cp * math32.Cos(y), cp * math32.Sin(y), math32.Sin(p)}
}

// Forward is the horizontal facing direction.
func (r Rotator) Forward() mgl32.Vec3 {
	y := mgl32.DegToRad(r.Yaw)
	return mgl32.Vec3{math32.Cos(y), math32.Sin(y), 0}
}

// Right is Forward turned by +90 degrees of yaw, counter-clockwise seen from
// above like every positive yaw in this package.
func (r Rotator) Right() mgl32.Vec3 {
	y := mgl32.DegToRad(r.Yaw)
	return mgl32.Vec3{-math32.Sin(y), math32.Cos(y), 0}
}

// DeltaYaw returns the normalized yaw difference r - o.
func (r Rotator) DeltaYaw(o Rotator) float32 {
	return NormalizeAxis(r.Yaw - o.Yaw)
}

// LerpRotator blends between a and b along the shortest arc of each axis.
func LerpRotator(a, b Rotator, t float32) Rotator {
	return Rotator{
		Pitch: a.Pitch + NormalizeAxis(b.Pitch-a.Pitch)*t,
		Yaw:   a.Yaw + NormalizeAxis(b.Yaw-a.Yaw)*t,
		Roll:  a.Roll + NormalizeAxis(b.Roll-a.Roll)*t,
	}
}

func (r Rotator) Equal(o Rotator, tolerance float32) bool {
	return math32.Abs(NormalizeAxis(r.Pitch-o.Pitch)) <= tolerance &&
		math32.Abs(NormalizeAxis(r.Yaw-o.Yaw)) <= tolerance &&
		math32.Abs(NormalizeAxis(r.Roll-o.Roll)) <= tolerance
}
