package system

import (
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/sirupsen/logrus"
)

// TraversalSystem feeds each character's input to its controller, then
// mirrors the controller's camera onto the camera entity.
type TraversalSystem struct {
	log logrus.FieldLogger
}

func NewTraversalSystem(log logrus.FieldLogger) *TraversalSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TraversalSystem{log: log}
}

func (s *TraversalSystem) Update(w *ecs.World, dt float32) {
	if w == nil {
		return
	}
	s.applyReload(w)

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ch *component.Character, in *component.Input) {
		c := ch.Controller
		if c == nil {
			return
		}
		for _, a := range in.Actions {
			c.HandleAction(a)
		}
		in.Actions = in.Actions[:0]

		c.Tick(dt, in.Axes)

		if body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind()); ok {
			body.OrientToMovement = !c.State().Aiming
		}
	})

	s.updateCamera(w)
}

func (s *TraversalSystem) applyReload(w *ecs.World) {
	e, ok := ecs.First(w, component.ReloadRequestComponent.Kind())
	if !ok {
		return
	}
	req, _ := ecs.Get(w, e, component.ReloadRequestComponent.Kind())
	ecs.DestroyEntity(w, e)
	if err := req.Config.Validate(); err != nil {
		s.log.WithError(err).Error("traversal: reload rejected")
		return
	}
	montages := montageTable(req.Config)
	if _, ok := montages[req.Config.Traversal.ClimbMontage]; !ok {
		s.log.WithField("montage", req.Config.Traversal.ClimbMontage).Error("traversal: reload rejected: climb montage not declared")
		return
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.CharacterBodyComponent.Kind(), func(ce ecs.Entity, ch *component.Character, body *component.CharacterBody) {
		if ch.Controller == nil {
			return
		}
		anim, hasAnim := ecs.Get(w, ce, component.MontagePlayerComponent.Kind())

		// The controller derives its jump reach from the body and checks the
		// climb montage against the animator, so both change first and are
		// restored if the controller refuses the tuning.
		oldParams := body.Params
		body.Params = req.Config.Body
		var oldMontages map[string]config.Montage
		if hasAnim {
			oldMontages = anim.Montages
			anim.Montages = montages
		}
		if err := ch.Controller.SetConfig(req.Config.Traversal); err != nil {
			body.Params = oldParams
			if hasAnim {
				anim.Montages = oldMontages
			}
			s.log.WithError(err).WithField("entity", ce.String()).Error("traversal: reload rejected")
			return
		}
		s.log.WithField("entity", ce.String()).Info("traversal: config reloaded")
	})
}

func (s *TraversalSystem) updateCamera(w *ecs.World) {
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		target, ok := findCharacter(w, cam.Target)
		if !ok {
			return
		}
		ch, _ := ecs.Get(w, target, component.CharacterComponent.Kind())
		st := ch.Controller.State()
		cam.Pivot = st.Location
		cam.Rotation = st.Control
		cam.Eye = ch.Controller.CameraLocation()
	})
}
