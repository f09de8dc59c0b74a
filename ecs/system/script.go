package system

import (
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
	"github.com/sirupsen/logrus"
)

// ScriptSystem steps script drivers and writes their frames into the
// character's Input. It runs ahead of the traversal system.
type ScriptSystem struct {
	log logrus.FieldLogger
}

func NewScriptSystem(log logrus.FieldLogger) *ScriptSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ScriptSystem{log: log}
}

func (s *ScriptSystem) Update(w *ecs.World, dt float32) {
	ecs.ForEach3(w, component.ScriptControlComponent.Kind(), component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, sc *component.ScriptControl, ch *component.Character, in *component.Input) {
		if sc.Driver == nil || sc.Err != nil || sc.Driver.Done() || ch.Controller == nil {
			return
		}

		frame, err := sc.Driver.Step(sc.Tick, dt, ch.Controller.State())
		sc.Tick++
		if err != nil {
			sc.Err = err
			in.Axes = traversal.Input{}
			s.log.WithError(err).WithField("entity", e.String()).Error("script: stopped")
			return
		}

		in.Axes = frame.Input
		in.Actions = append(in.Actions, frame.Actions...)
		if frame.Done {
			s.log.WithFields(logrus.Fields{
				"entity": e.String(),
				"script": sc.Driver.Name(),
				"ticks":  sc.Tick,
			}).Info("script: finished")
		}
	})
}

// Finished reports whether every scripted character has finished or failed.
func Finished(w *ecs.World) bool {
	done := true
	ecs.ForEach(w, component.ScriptControlComponent.Kind(), func(_ ecs.Entity, sc *component.ScriptControl) {
		if sc.Driver != nil && sc.Err == nil && !sc.Driver.Done() {
			done = false
		}
	})
	return done
}
