package ecs

import (
	"testing"

	"github.com/milk9111/traversal/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should report false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("recycled handle should carry a new generation")
	}
	if Has(w, fresh, kind) {
		t.Fatalf("component leaked into recycled slot")
	}
	if err := Add(w, old, kind, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestComponents(t *testing.T) {
	w := NewWorld()

	counter := component.NewComponent[int]()
	label := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, counter.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, counter.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, counter.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, label.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, label.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, label.Kind()) || !Has(w, e2, label.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, label.Kind()) },
		},
		{
			name:  "mutate_in_place",
			setup: func() error { return Add(w, e2, counter.Kind(), intPtr(1)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e2, counter.Kind())
				*v = 42
				again, _ := Get(w, e2, counter.Kind())
				if *again != 42 {
					t.Fatalf("expected in-place mutation to stick, got %d", *again)
				}
			},
			teardown: func() bool { return Remove(w, e2, counter.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[int](w, e, component.NewComponentKind[int](), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEachAndFirst(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if _, ok := First(w, kind); ok {
		t.Fatalf("First on empty store should miss")
	}

	_ = Add(w, e1, kind, intPtr(1))
	_ = Add(w, e3, kind, intPtr(3))

	seen := map[Entity]int{}
	ForEach(w, kind, func(e Entity, v *int) { seen[e] = *v })
	if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("unexpected ForEach result %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}

	// Destroying during the walk must not visit the destroyed entity.
	visited := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		visited++
		if e == e1 {
			DestroyEntity(w, e3)
		} else if e == e3 {
			DestroyEntity(w, e1)
		}
	})
	if visited != 1 {
		t.Fatalf("expected one visit after concurrent destroy, got %d", visited)
	}

	if first, ok := First(w, kind); !ok || first != e1 {
		t.Fatalf("expected e1 to survive, got %v ok=%v", first, ok)
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				e4 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, add := range []struct {
					e    Entity
					kind component.ComponentKind[int]
					v    int
				}{
					{e1, ka, 1}, {e2, ka, 2}, {e2, kb, 3}, {e2, kc, 5}, {e3, kb, 4}, {e4, kc, 6},
				} {
					if err := Add(w, add.e, add.kind, intPtr(add.v)); err != nil {
						t.Fatal(err)
					}
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestSystemsRunInOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	var total float32
	w.AddSystem(SystemFunc(func(_ *World, dt float32) { order = append(order, "a"); total += dt }))
	w.AddSystem(nil)
	w.AddSystem(SystemFunc(func(_ *World, dt float32) { order = append(order, "b"); total += dt }))

	w.Update(0.5)

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
	if total != 1 {
		t.Fatalf("expected dt passed to each system, got %v", total)
	}
}
