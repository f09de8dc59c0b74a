package system

import (
	"fmt"

	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
	"github.com/sirupsen/logrus"
)

// Install registers the sandbox systems in update order.
func Install(w *ecs.World, log logrus.FieldLogger) {
	w.AddSystem(NewScriptSystem(log))
	w.AddSystem(NewTraversalSystem(log))
	w.AddSystem(NewPhysicsSystem())
	w.AddSystem(NewAnimationSystem())
	w.AddSystem(NewTTLSystem())
	w.AddSystem(NewRespawnSystem(log))
}

func montageTable(cfg config.Config) map[string]config.Montage {
	out := make(map[string]config.Montage, len(cfg.Montages))
	for _, m := range cfg.Montages {
		out[m.Name] = m
	}
	return out
}

// SpawnCharacter creates a character entity at spawn and wires a traversal
// controller to it. The character starts falling so it settles onto the
// ground on the first physics step.
func SpawnCharacter(w *ecs.World, name string, cfg config.Config, spawn component.SpawnPoint, log logrus.FieldLogger) (ecs.Entity, *traversal.Controller, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := ecs.CreateEntity(w)

	components := []error{
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: spawn.Position, Rotation: spawn.Rotation}),
		ecs.Add(w, e, component.CharacterBodyComponent.Kind(), &component.CharacterBody{
			Params:           cfg.Body,
			Mode:             traversal.ModeFalling,
			OrientToMovement: true,
		}),
		ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}),
		ecs.Add(w, e, component.MontagePlayerComponent.Kind(), &component.MontagePlayer{Montages: montageTable(cfg)}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, e, component.SpawnPointComponent.Kind(), &spawn),
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
	}
	for _, err := range components {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return 0, nil, fmt.Errorf("spawn %s: %w", name, err)
		}
	}

	prober := NewProber(w)
	ctrl, err := traversal.New(cfg.Traversal, traversal.Deps{
		Body:       NewBody(w, e),
		Prober:     prober,
		Animator:   NewAnimator(w, e),
		Indicators: NewIndicators(w),
		Debug:      prober,
		Logger:     log.WithField("character", name),
	})
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, nil, fmt.Errorf("spawn %s: %w", name, err)
	}
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Name: name, Controller: ctrl}); err != nil {
		return 0, nil, fmt.Errorf("spawn %s: %w", name, err)
	}
	return e, ctrl, nil
}

// findCharacter returns the character called name, or any character when name
// is empty.
func findCharacter(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, ch *component.Character) {
		if ok || ch.Controller == nil {
			return
		}
		if name == "" || ch.Name == name {
			found, ok = e, true
		}
	})
	return found, ok
}

// FindCharacter is findCharacter for callers outside the package.
func FindCharacter(w *ecs.World, name string) (ecs.Entity, *traversal.Controller, bool) {
	e, ok := findCharacter(w, name)
	if !ok {
		return 0, nil, false
	}
	ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	return e, ch.Controller, true
}
