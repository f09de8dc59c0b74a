package system

import (
	"fmt"

	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/script"
	"github.com/milk9111/traversal/traversal"
	"github.com/sirupsen/logrus"
)

// Scene is a populated world with one character in it.
type Scene struct {
	World      *ecs.World
	Level      *levels.Level
	Character  ecs.Entity
	Controller *traversal.Controller
	Camera     ecs.Entity
}

// BuildScene installs the systems, loads the level's geometry and spawns a
// character called name at the level's spawn point, followed by a camera.
func BuildScene(lvl *levels.Level, name string, cfg config.Config, log logrus.FieldLogger) (*Scene, error) {
	w := ecs.NewWorld()
	Install(w, log)
	if err := lvl.Populate(w); err != nil {
		return nil, err
	}

	e, c, err := SpawnCharacter(w, name, cfg, lvl.SpawnPoint(), log)
	if err != nil {
		return nil, err
	}

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Target: name}); err != nil {
		return nil, fmt.Errorf("scene camera: %w", err)
	}
	_ = ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{})

	return &Scene{World: w, Level: lvl, Character: e, Controller: c, Camera: cam}, nil
}

// Attach hands the character's input over to d.
func (s *Scene) Attach(d *script.Driver) (*component.ScriptControl, error) {
	sc := &component.ScriptControl{Driver: d}
	if err := ecs.Add(s.World, s.Character, component.ScriptControlComponent.Kind(), sc); err != nil {
		return nil, fmt.Errorf("attach script %s: %w", d.Name(), err)
	}
	return sc, nil
}

// Run steps the world at dt until seconds have passed or, when scripts are
// attached, every script has finished. It returns the number of ticks taken.
func (s *Scene) Run(seconds, dt float32) int {
	if dt <= 0 {
		return 0
	}
	_, scripted := ecs.First(s.World, component.ScriptControlComponent.Kind())
	ticks := 0
	for n := int(seconds / dt); ticks < n; ticks++ {
		if scripted && Finished(s.World) {
			break
		}
		s.World.Update(dt)
	}
	return ticks
}

// Input returns the character's input component.
func (s *Scene) Input() *component.Input {
	in, _ := ecs.Get(s.World, s.Character, component.InputComponent.Kind())
	return in
}
