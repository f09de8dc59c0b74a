package traversal

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
	"gopkg.in/yaml.v3"
)

// ProbeHit caches the outcome of a single probe.
type ProbeHit struct {
	Hit      bool
	Location mgl32.Vec3
	Normal   mgl32.Vec3
}

func probeHit(h Hit, ok bool) ProbeHit {
	if !ok {
		return ProbeHit{}
	}
	return ProbeHit{Hit: true, Location: h.Location, Normal: h.Normal}
}

// CharacterState is the per-tick record owned by the controller. Pose and
// velocity mirror the body at the end of each tick.
type CharacterState struct {
	Location mgl32.Vec3
	Rotation common.Rotator
	Velocity mgl32.Vec3
	Control  common.Rotator

	Hanging     bool
	Climbing    bool
	InCover     bool
	Aiming      bool
	WallRunning bool

	RightCover   bool
	TallCover    bool
	RightWallRun bool

	UpClimb      ProbeHit
	ForwardClimb ProbeHit
	SideWallRun  ProbeHit
	ForwardCover ProbeHit
	SideCover    ProbeHit

	CoverLocation mgl32.Vec3
	CoverRotation common.Rotator

	CameraOffset    mgl32.Vec3
	CameraArmLength float32
}

// CoverSide reports the cover side flags; ok is false outside cover.
func (s CharacterState) CoverSide() (right, tall, ok bool) {
	if !s.InCover {
		return false, false, false
	}
	return s.RightCover, s.TallCover, true
}

// WallSide reports which side the wall is on; ok is false when not wall-running.
func (s CharacterState) WallSide() (right, ok bool) {
	if !s.WallRunning {
		return false, false
	}
	return s.RightWallRun, true
}

// Validate checks the mode flag invariants.
func (s CharacterState) Validate() error {
	if s.Climbing && !s.Hanging {
		return fmt.Errorf("%w: climbing without hanging", ErrInvariant)
	}
	if s.Hanging && s.WallRunning {
		return fmt.Errorf("%w: hanging and wall-running", ErrInvariant)
	}
	if (s.InCover || s.Aiming) && (s.Hanging || s.WallRunning) {
		return fmt.Errorf("%w: cover or aim while suspended", ErrInvariant)
	}
	return nil
}

// Mode names the dominant traversal mode for logs and HUDs.
func (s CharacterState) Mode() string {
	switch {
	case s.Climbing:
		return "climbing"
	case s.Hanging:
		return "hanging"
	case s.WallRunning:
		return "wall_running"
	case s.InCover && s.Aiming:
		return "cover_aiming"
	case s.InCover:
		return "in_cover"
	case s.Aiming:
		return "aiming"
	default:
		return "free"
	}
}

// Snapshot flattens the state into ordered key/value pairs.
func (s CharacterState) Snapshot() *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("mode", s.Mode())
	m.Set("location", vecString(s.Location))
	m.Set("yaw", s.Rotation.Yaw)
	m.Set("velocity", vecString(s.Velocity))
	m.Set("control_yaw", s.Control.Yaw)
	m.Set("control_pitch", s.Control.Pitch)
	m.Set("hanging", s.Hanging)
	m.Set("climbing", s.Climbing)
	m.Set("in_cover", s.InCover)
	m.Set("aiming", s.Aiming)
	m.Set("wall_running", s.WallRunning)
	if right, tall, ok := s.CoverSide(); ok {
		m.Set("cover_right", right)
		m.Set("cover_tall", tall)
		m.Set("cover_location", vecString(s.CoverLocation))
		m.Set("cover_yaw", s.CoverRotation.Yaw)
	}
	if right, ok := s.WallSide(); ok {
		m.Set("wall_right", right)
	}
	m.Set("camera_offset", vecString(s.CameraOffset))
	m.Set("camera_arm_length", s.CameraArmLength)
	return m
}

// SnapshotYAML renders Snapshot as a YAML mapping that keeps insertion order.
func (s CharacterState) SnapshotYAML() ([]byte, error) {
	snap := s.Snapshot()
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range snap.Keys() {
		v, _ := snap.Get(key)
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return nil, fmt.Errorf("traversal: encode %s: %w", key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &val)
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("traversal: marshal snapshot: %w", err)
	}
	return out, nil
}

func vecString(v mgl32.Vec3) string {
	return fmt.Sprintf("%.1f, %.1f, %.1f", v.X(), v.Y(), v.Z())
}
