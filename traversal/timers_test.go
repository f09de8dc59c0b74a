package traversal

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

func TestTimersOrder(t *testing.T) {
	timers := NewTimers()
	var fired []string
	record := func(name string) func() {
		return func() { fired = append(fired, name) }
	}

	timers.After(0.3, record("c"))
	timers.After(0.1, record("a"))
	timers.After(0.1, record("b"))
	timers.After(-1, record("now"))
	timers.After(1, record("later"))

	timers.Advance(0.5)
	if want := []string{"now", "a", "b", "c"}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	if timers.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", timers.Pending())
	}

	timers.Advance(0.5)
	if fired[len(fired)-1] != "later" || timers.Pending() != 0 {
		t.Fatalf("later timer did not fire: %v", fired)
	}
}

func TestTimersCancel(t *testing.T) {
	timers := NewTimers()
	var fired []string

	var second TimerHandle
	timers.After(0.1, func() {
		fired = append(fired, "first")
		timers.Cancel(second)
	})
	second = timers.After(0.1, func() { fired = append(fired, "second") })
	dropped := timers.After(0.2, func() { fired = append(fired, "dropped") })

	if !timers.Cancel(dropped) {
		t.Fatalf("Cancel should report a pending timer")
	}
	if timers.Cancel(dropped) {
		t.Fatalf("Cancel should be false the second time")
	}

	timers.Advance(1)
	if want := []string{"first"}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
}

func TestTimersArmedFromCallbackWaitForNextAdvance(t *testing.T) {
	timers := NewTimers()
	n := 0
	timers.After(0, func() {
		n++
		timers.After(0, func() { n++ })
	})

	timers.Advance(0)
	if n != 1 {
		t.Fatalf("n = %d after the first advance, want 1", n)
	}
	timers.Advance(0)
	if n != 2 {
		t.Fatalf("n = %d after the second advance, want 2", n)
	}
}

func TestRepositioner(t *testing.T) {
	t.Run("eases_to_target", func(t *testing.T) {
		body := newFakeBody(mgl32.Vec3{}, ModeWalking)
		body.vel = mgl32.Vec3{100, 0, 0}
		m := NewRepositioner(body)

		m.MoveTo(mgl32.Vec3{100, 0, 0}, common.YawRotator(90), 1)
		if !m.Active() || !body.scripted || body.vel != (mgl32.Vec3{}) {
			t.Fatalf("MoveTo should take over the body")
		}

		m.Advance(0.25)
		if body.loc.X() <= 0 || body.loc.X() >= 25 {
			t.Fatalf("eased start should lag the linear position, got %v", body.loc)
		}
		m.Advance(0.25)
		if !vecNear(body.loc, mgl32.Vec3{50, 0, 0}) || !body.rot.Equal(common.YawRotator(45), 0.01) {
			t.Fatalf("midpoint = %v %v", body.loc, body.rot)
		}

		m.Advance(0.5)
		if m.Active() || body.scripted {
			t.Fatalf("move should be finished")
		}
		if body.loc != (mgl32.Vec3{100, 0, 0}) || body.rot != common.YawRotator(90) {
			t.Fatalf("final pose = %v %v", body.loc, body.rot)
		}
	})

	t.Run("zero_duration_snaps", func(t *testing.T) {
		body := newFakeBody(mgl32.Vec3{}, ModeWalking)
		m := NewRepositioner(body)
		m.MoveTo(mgl32.Vec3{0, 0, 50}, common.YawRotator(0), 0)
		if m.Active() || body.loc != (mgl32.Vec3{0, 0, 50}) {
			t.Fatalf("zero duration should snap, got %v active=%v", body.loc, m.Active())
		}
	})

	t.Run("new_request_replaces", func(t *testing.T) {
		body := newFakeBody(mgl32.Vec3{}, ModeWalking)
		m := NewRepositioner(body)
		m.MoveTo(mgl32.Vec3{100, 0, 0}, common.Rotator{}, 1)
		m.Advance(0.5)
		m.MoveTo(mgl32.Vec3{0, 100, 0}, common.Rotator{}, 1)
		m.Advance(1)
		if body.loc != (mgl32.Vec3{0, 100, 0}) {
			t.Fatalf("location = %v, want the second target", body.loc)
		}
	})

	t.Run("stop", func(t *testing.T) {
		body := newFakeBody(mgl32.Vec3{}, ModeWalking)
		m := NewRepositioner(body)
		m.MoveTo(mgl32.Vec3{100, 0, 0}, common.Rotator{}, 1)
		m.Advance(0.5)
		at := body.loc
		m.Stop()
		m.Advance(0.5)
		if m.Active() || body.scripted || body.loc != at {
			t.Fatalf("stopped move kept running")
		}
	})
}
