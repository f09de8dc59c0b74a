package component

import "github.com/ethaniccc/float32-cube/cube"

// StaticCollider is immovable level geometry. Box is in world space.
type StaticCollider struct {
	Box  cube.BBox
	Name string
}

var StaticColliderComponent = NewComponent[StaticCollider]()
