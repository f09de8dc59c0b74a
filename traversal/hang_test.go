package traversal

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

func TestHangAndClimbUp(t *testing.T) {
	body := newFakeBody(mgl32.Vec3{0, 0, 100}, ModeFalling)
	body.vel = mgl32.Vec3{0, 0, -200}
	r := newRig(t, body, box(45, -200, -1000, 300, 200, 180))

	r.tick(t, 1.0/60, Input{})

	s := r.c.State()
	if !s.Hanging || s.Climbing {
		t.Fatalf("expected hanging, got mode %s", s.Mode())
	}
	if body.mode != ModeFlying {
		t.Fatalf("movement mode = %v, want flying", body.mode)
	}
	if body.vel != (mgl32.Vec3{}) {
		t.Fatalf("velocity = %v, want zero", body.vel)
	}
	if len(r.anim.plays) != 1 || r.anim.plays[0] != (play{"climb", 0}) {
		t.Fatalf("plays = %v, want climb held at rate 0", r.anim.plays)
	}
	if !vecNear(s.UpClimb.Normal, common.Up) || !vecNear(s.ForwardClimb.Normal, mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("unexpected probe normals up=%v forward=%v", s.UpClimb.Normal, s.ForwardClimb.Normal)
	}

	r.run(t, 0.3, Input{MoveForward: 1})
	want := mgl32.Vec3{45 - 50, 0, 180 - 50}
	if !vecNear(body.loc, want) {
		t.Fatalf("hang location = %v, want %v", body.loc, want)
	}
	if !body.rot.Equal(common.YawRotator(0), 0.01) {
		t.Fatalf("hang rotation = %v, want facing the wall", body.rot)
	}
	if len(body.inputs) != 0 {
		t.Fatalf("movement input applied while hanging: %v", body.inputs)
	}

	r.c.ClimbUp()
	if !r.c.State().Climbing {
		t.Fatalf("expected climbing after ClimbUp")
	}
	if got := r.anim.plays[len(r.anim.plays)-1]; got != (play{"climb", 1}) {
		t.Fatalf("climb play = %v", got)
	}

	// Repeated requests and drops are ignored while the climb is in flight.
	r.c.ClimbUp()
	r.c.DropDown()
	if len(r.anim.plays) != 2 || !r.c.State().Hanging {
		t.Fatalf("climb was interrupted: plays=%v mode=%s", r.anim.plays, r.c.State().Mode())
	}

	// Montage is 1.2s with a 0.25s blend out, so the hang ends after 0.95s.
	r.run(t, 0.9, Input{})
	if !r.c.State().Climbing {
		t.Fatalf("climb finished early")
	}
	r.run(t, 0.1, Input{})
	s = r.c.State()
	if s.Hanging || s.Climbing {
		t.Fatalf("expected climb to finish, got mode %s", s.Mode())
	}
	if body.mode != ModeWalking {
		t.Fatalf("movement mode = %v, want walking", body.mode)
	}

	r.run(t, 0.3, Input{})
	want = want.Add(mgl32.Vec3{100, 0, 150})
	if !vecNear(body.loc, want) {
		t.Fatalf("climb finish location = %v, want %v", body.loc, want)
	}
}

func TestDropDown(t *testing.T) {
	body := newFakeBody(mgl32.Vec3{0, 0, 100}, ModeFalling)
	r := newRig(t, body, box(45, -200, -1000, 300, 200, 180))

	r.c.DropDown()
	if len(r.anim.stopped) != 0 {
		t.Fatalf("DropDown acted while not hanging")
	}

	r.tick(t, 1.0/60, Input{})
	if !r.c.State().Hanging {
		t.Fatalf("expected hanging")
	}
	r.c.DropDown()

	s := r.c.State()
	if s.Hanging || body.mode != ModeFalling {
		t.Fatalf("expected falling after drop, mode=%s movement=%v", s.Mode(), body.mode)
	}
	if len(r.anim.stopped) != 1 || r.anim.stopped[0] != "climb" {
		t.Fatalf("stopped = %v", r.anim.stopped)
	}
	if r.c.Repositioner().Active() || body.scripted {
		t.Fatalf("scripted move left running after drop")
	}

	// The ledge is still in reach: it must not be grabbed straight back.
	r.run(t, 0.3, Input{})
	if r.c.State().Hanging {
		t.Fatalf("grabbed the ledge again right after dropping")
	}
	if got := events(r.hook); len(got) != 2 || got[0] != "hang" || got[1] != "drop" {
		t.Fatalf("events = %v, want [hang drop]", got)
	}

	r.run(t, 0.2, Input{})
	if !r.c.State().Hanging {
		t.Fatalf("ledge should be grabbable once the delay passed")
	}
}

func TestResetFromHang(t *testing.T) {
	body := newFakeBody(mgl32.Vec3{0, 0, 100}, ModeFalling)
	r := newRig(t, body, box(45, -200, -1000, 300, 200, 180))
	r.tick(t, 1.0/60, Input{})
	r.c.ClimbUp()
	if !r.c.State().Climbing {
		t.Fatalf("expected climbing")
	}

	r.c.Reset()
	s := r.c.State()
	if s.Hanging || s.Climbing {
		t.Fatalf("mode = %s after reset, want free", s.Mode())
	}
	if body.mode != ModeFalling {
		t.Fatalf("movement mode = %v after reset, want falling", body.mode)
	}

	// The cancelled climb timer must not fire later.
	r.prober.boxes = nil
	r.run(t, 1.5, Input{})
	if body.mode != ModeFalling {
		t.Fatalf("cancelled climb finished after reset")
	}
}

func TestHangHeightBand(t *testing.T) {
	// Character centre at z=100, so the ledge height is top-100.
	cases := []struct {
		name string
		top  float32
		hang bool
	}{
		{"below_min", 129, false},
		{"at_min", 130, true},
		{"just_above_min", 131, true},
		{"mid", 180, true},
		{"at_max", 200, true},
		{"above_max", 201, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := newFakeBody(mgl32.Vec3{0, 0, 100}, ModeFalling)
			r := newRig(t, body, box(45, -200, -1000, 300, 200, c.top))
			r.tick(t, 1.0/60, Input{})
			if got := r.c.State().Hanging; got != c.hang {
				t.Fatalf("hanging = %v, want %v", got, c.hang)
			}
		})
	}
}

func TestHangRejectsSteepSurfaces(t *testing.T) {
	body := newFakeBody(mgl32.Vec3{0, 0, 100}, ModeFalling)
	// A slab overhead with no wall under it: the up probe hits but the
	// forward probe finds nothing.
	r := newRig(t, body, box(45, -200, 170, 300, 200, 180))
	r.tick(t, 1.0/60, Input{})
	if r.c.State().Hanging {
		t.Fatalf("hung from a ledge with no wall")
	}
}

func TestHangNotWhileGrounded(t *testing.T) {
	body := newFakeBody(mgl32.Vec3{0, 0, 100}, ModeWalking)
	r := newRig(t, body, box(45, -200, -1000, 300, 200, 180))
	r.run(t, 0.2, Input{})
	if r.c.State().Hanging {
		t.Fatalf("hung while walking")
	}
}

func TestIndicator(t *testing.T) {
	// Band while grounded is [30, 100 + maxJump] = [30, 250].
	cases := []struct {
		name string
		top  float32
		show bool
	}{
		{"below_min", 125, false},
		{"at_min", 126, true},
		{"just_above_min", 127, true},
		{"needs_jump", 296, true},
		{"at_max", 346, true},
		{"above_max", 347, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := newFakeBody(mgl32.Vec3{0, 0, 96}, ModeWalking)
			r := newRig(t, body, box(45, -200, -1000, 300, 200, c.top))
			r.tick(t, 1.0/60, Input{})

			h := r.c.Indicator()
			if (h != 0) != c.show {
				t.Fatalf("indicator shown = %v, want %v", h != 0, c.show)
			}
			if !c.show {
				return
			}
			ind := r.ind.live[h]
			if ind.class != "hang_indicator" {
				t.Fatalf("class = %q", ind.class)
			}
			want := mgl32.Vec3{55, 0, c.top}
			if !vecNear(ind.loc, want) {
				t.Fatalf("indicator location = %v, want %v", ind.loc, want)
			}
		})
	}
}

func TestIndicatorLifecycle(t *testing.T) {
	body := newFakeBody(mgl32.Vec3{0, 0, 96}, ModeWalking)
	r := newRig(t, body, box(45, -200, -1000, 300, 200, 296))

	r.tick(t, 1.0/60, Input{})
	first := r.c.Indicator()
	if first == 0 {
		t.Fatalf("expected an indicator")
	}

	r.tick(t, 1.0/60, Input{})
	if r.c.Indicator() != first || len(r.ind.live) != 1 || r.ind.moves == 0 {
		t.Fatalf("indicator should be repositioned, not respawned")
	}

	r.prober.boxes = nil
	r.tick(t, 1.0/60, Input{})
	if r.c.Indicator() != 0 || len(r.ind.live) != 0 {
		t.Fatalf("indicator should be destroyed once the ledge is gone")
	}

	// Falling leaves the indicator alone.
	r.prober.boxes = []cube.BBox{box(45, -200, -1000, 300, 200, 296)}
	r.tick(t, 1.0/60, Input{})
	h := r.c.Indicator()
	body.mode = ModeFalling
	r.prober.boxes = nil
	r.tick(t, 1.0/60, Input{})
	if r.c.Indicator() != h || h == 0 {
		t.Fatalf("indicator changed while falling")
	}
}
