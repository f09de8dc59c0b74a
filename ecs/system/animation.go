package system

import (
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
)

// Animator plays montages through an entity's MontagePlayer component.
type Animator struct {
	w *ecs.World
	e ecs.Entity
}

var _ traversal.Animator = (*Animator)(nil)

func NewAnimator(w *ecs.World, e ecs.Entity) *Animator {
	return &Animator{w: w, e: e}
}

func (a *Animator) player() (*component.MontagePlayer, bool) {
	return ecs.Get(a.w, a.e, component.MontagePlayerComponent.Kind())
}

func (a *Animator) HasMontage(name string) bool {
	p, ok := a.player()
	if !ok {
		return false
	}
	_, ok = p.Montages[name]
	return ok
}

func (a *Animator) Play(name string, rate float32) float32 {
	p, ok := a.player()
	if !ok {
		return 0
	}
	m, ok := p.Montages[name]
	if !ok {
		return 0
	}
	p.Current = name
	p.Time = 0
	p.Rate = rate
	p.Playing = true
	return m.Duration
}

func (a *Animator) Stop(name string) {
	p, ok := a.player()
	if !ok || p.Current != name {
		return
	}
	p.Playing = false
}

func (a *Animator) BlendOutTriggerTime(name string) float32 {
	p, ok := a.player()
	if !ok {
		return 0
	}
	return p.Montages[name].BlendOutTriggerTime
}

// AnimationSystem advances playing montages and stops them at their end.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World, dt float32) {
	ecs.ForEach(w, component.MontagePlayerComponent.Kind(), func(_ ecs.Entity, p *component.MontagePlayer) {
		if !p.Playing {
			return
		}
		p.Time += dt * p.Rate
		if m, ok := p.Montages[p.Current]; !ok || p.Time >= m.Duration {
			p.Playing = false
		}
	})
}
