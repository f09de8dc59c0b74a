// Package script drives a character from a tengo script. Each tick the script's
// update function receives an engine object, a persistent memory map and a
// read-only view of the character state.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/prefabs"
	"github.com/milk9111/traversal/traversal"
	"github.com/sirupsen/logrus"
)

var ErrNoUpdate = errors.New("script: update function is not defined")

const dispatch = `
if __run {
	update(__engine, __memory, __state)
}
`

// Frame is what a script asked for on one tick.
type Frame struct {
	Input   traversal.Input
	Actions []traversal.Action
	Done    bool
}

type Driver struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	log      logrus.FieldLogger
	done     bool
}

// Load compiles a script from the prefabs store.
func Load(name string, log logrus.FieldLogger) (*Driver, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src, log)
}

// New compiles src. The script must define update(engine, memory, state).
func New(name string, src []byte, log logrus.FieldLogger) (*Driver, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := tengo.NewScript(append(append([]byte{}, src...), dispatch...))
	_ = s.Add("__run", false)
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__memory", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	// Run once with dispatch disabled so top-level definitions exist.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: init %s: %w", name, err)
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("%w: %s", ErrNoUpdate, name)
	}

	return &Driver{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		log:      log.WithField("script", name),
	}, nil
}

func (d *Driver) Name() string {
	return d.name
}

// Done reports whether the script has called engine.done().
func (d *Driver) Done() bool {
	return d.done
}

// Step runs update for one tick. After the script finishes, Step returns an
// empty frame with Done set.
func (d *Driver) Step(tick int, dt float32, s traversal.CharacterState) (Frame, error) {
	if d.done {
		return Frame{Done: true}, nil
	}

	var frame Frame
	engine := d.engine(&frame)
	for name, value := range map[string]any{
		"__run":    true,
		"__engine": engine,
		"__memory": d.memory,
		"__state":  stateObject(tick, float32(tick)*dt, s),
	} {
		if err := d.compiled.Set(name, value); err != nil {
			return Frame{}, fmt.Errorf("script: %s: set %s: %w", d.name, name, err)
		}
	}
	if err := d.compiled.Run(); err != nil {
		return Frame{}, fmt.Errorf("script: %s tick %d: %w", d.name, tick, err)
	}
	d.done = frame.Done
	return frame, nil
}

func (d *Driver) engine(frame *Frame) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		frame.Input.MoveForward = float(args[0])
		frame.Input.MoveRight = float(args[1])
		return tengo.UndefinedValue, nil
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		frame.Input.Turn += float(args[0])
		return tengo.UndefinedValue, nil
	}}

	values["look"] = &tengo.UserFunction{Name: "look", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		frame.Input.LookUp += float(args[0])
		return tengo.UndefinedValue, nil
	}}

	values["action"] = &tengo.UserFunction{Name: "action", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, _ := tengo.ToString(args[0])
		a, err := traversal.ParseAction(name)
		if err != nil {
			return nil, err
		}
		frame.Actions = append(frame.Actions, a)
		return tengo.TrueValue, nil
	}}

	values["done"] = &tengo.UserFunction{Name: "done", Value: func(args ...tengo.Object) (tengo.Object, error) {
		frame.Done = true
		return tengo.UndefinedValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			s, _ := tengo.ToString(a)
			parts = append(parts, s)
		}
		d.log.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func float(o tengo.Object) float32 {
	f, _ := tengo.ToFloat64(o)
	return float32(f)
}

func stateObject(tick int, t float32, s traversal.CharacterState) *tengo.ImmutableMap {
	num := func(f float32) tengo.Object { return &tengo.Float{Value: float64(f)} }
	flag := func(b bool) tengo.Object {
		if b {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}

	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"tick":         &tengo.Int{Value: int64(tick)},
		"time":         num(t),
		"mode":         &tengo.String{Value: s.Mode()},
		"hanging":      flag(s.Hanging),
		"climbing":     flag(s.Climbing),
		"in_cover":     flag(s.InCover),
		"aiming":       flag(s.Aiming),
		"wall_running": flag(s.WallRunning),
		"x":            num(s.Location.X()),
		"y":            num(s.Location.Y()),
		"z":            num(s.Location.Z()),
		"vx":           num(s.Velocity.X()),
		"vy":           num(s.Velocity.Y()),
		"vz":           num(s.Velocity.Z()),
		"speed":        num(common.HorizontalLen(s.Velocity)),
		"yaw":          num(s.Rotation.Yaw),
		"control_yaw":  num(s.Control.Yaw),
	}}
}
