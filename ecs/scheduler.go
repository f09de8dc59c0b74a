package ecs

// System advances one concern of the world by dt seconds.
type System interface {
	Update(w *World, dt float32)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World, dt float32)

func (f SystemFunc) Update(w *World, dt float32) {
	f(w, dt)
}

// AddSystem appends s to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs every system once, in the order they were added.
func (w *World) Update(dt float32) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}
