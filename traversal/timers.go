package traversal

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

type TimerHandle uint64

type timer struct {
	due float32
	fn  func()
}

// Timers is a Scheduler driven by simulated time. Timers that come due on the
// same Advance fire in due order, ties in arming order.
type Timers struct {
	now     float32
	next    TimerHandle
	pending *orderedmap.OrderedMap[TimerHandle, timer]
}

func NewTimers() *Timers {
	return &Timers{pending: orderedmap.NewOrderedMap[TimerHandle, timer]()}
}

// After arms fn to run once delay seconds from now. Negative delays fire on the
// next Advance.
func (t *Timers) After(delay float32, fn func()) TimerHandle {
	if delay < 0 {
		delay = 0
	}
	t.next++
	t.pending.Set(t.next, timer{due: t.now + delay, fn: fn})
	return t.next
}

func (t *Timers) Cancel(h TimerHandle) bool {
	return t.pending.Delete(h)
}

func (t *Timers) Pending() int {
	return t.pending.Len()
}

func (t *Timers) Now() float32 {
	return t.now
}

// Advance moves the clock and fires every timer that is due. Callbacks may arm
// new timers; those wait for a later Advance.
func (t *Timers) Advance(dt float32) {
	t.now += dt

	type firing struct {
		h TimerHandle
		timer
	}
	var due []firing
	for _, h := range t.pending.Keys() {
		tm, _ := t.pending.Get(h)
		if tm.due <= t.now {
			due = append(due, firing{h: h, timer: tm})
		}
	}
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })

	for _, f := range due {
		// Skip timers cancelled by an earlier callback in this batch.
		if !t.pending.Delete(f.h) {
			continue
		}
		if f.fn != nil {
			f.fn()
		}
	}
}
