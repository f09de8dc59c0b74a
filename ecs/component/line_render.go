package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// LineRender is a world-space debug line.
type LineRender struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
	Width float32
	Color color.Color
}

var LineRenderComponent = NewComponent[LineRender]()
