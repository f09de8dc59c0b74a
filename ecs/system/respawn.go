package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
	"github.com/sirupsen/logrus"
)

// RespawnSystem returns characters that fell below the level's kill height to
// their spawn point.
type RespawnSystem struct {
	log logrus.FieldLogger
}

func NewRespawnSystem(log logrus.FieldLogger) *RespawnSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RespawnSystem{log: log}
}

func (s *RespawnSystem) Update(w *ecs.World, _ float32) {
	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.CharacterBodyComponent.Kind(), component.SpawnPointComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.CharacterBody, spawn *component.SpawnPoint) {
		if t.Position.Z() >= bounds.KillZ {
			return
		}
		s.log.WithFields(logrus.Fields{
			"entity": e.String(),
			"z":      t.Position.Z(),
		}).Info("traversal: respawning character")

		t.Position = spawn.Position
		t.Rotation = spawn.Rotation
		body.Velocity = mgl32.Vec3{}
		body.PendingInput = mgl32.Vec3{}
		body.Mode = traversal.ModeFalling
		body.Scripted = false
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			g.Scale = 1
		}
		if ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && ch.Controller != nil {
			ch.Controller.Reset()
		}
	})
}
