// Package levels loads box-built test courses and populates a world with them.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/collision"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name  string  `yaml:"name"`
	KillZ float32 `yaml:"kill_z"`
	Spawn Spawn   `yaml:"spawn"`
	Boxes []Box   `yaml:"boxes"`
}

type Spawn struct {
	Position []float32 `yaml:"position"`
	Yaw      float32   `yaml:"yaw"`
}

// Box is an axis-aligned block given by two opposite corners.
type Box struct {
	Name string    `yaml:"name"`
	Min  []float32 `yaml:"min"`
	Max  []float32 `yaml:"max"`
}

// Names lists the embedded levels without their extension.
func Names() []string {
	entries, _ := fs.ReadDir(LevelsFS, ".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load reads a level by embedded name, or from disk when name is a path to an
// existing file.
func Load(name string) (*Level, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, strings.TrimSuffix(name, ".yaml")+".yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if _, err := vec(l.Spawn.Position); err != nil {
		return fmt.Errorf("%w: spawn position: %v", ErrInvalidLevel, err)
	}
	if len(l.Boxes) == 0 {
		return fmt.Errorf("%w: no boxes", ErrInvalidLevel)
	}
	for i, b := range l.Boxes {
		lo, err := vec(b.Min)
		if err != nil {
			return fmt.Errorf("%w: box %d (%s) min: %v", ErrInvalidLevel, i, b.Name, err)
		}
		hi, err := vec(b.Max)
		if err != nil {
			return fmt.Errorf("%w: box %d (%s) max: %v", ErrInvalidLevel, i, b.Name, err)
		}
		for axis := 0; axis < 3; axis++ {
			if lo[axis] >= hi[axis] {
				return fmt.Errorf("%w: box %d (%s) has no volume", ErrInvalidLevel, i, b.Name)
			}
		}
	}
	return nil
}

func vec(v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

// SpawnPoint returns where characters enter the level.
func (l *Level) SpawnPoint() component.SpawnPoint {
	pos, _ := vec(l.Spawn.Position)
	return component.SpawnPoint{Position: pos, Rotation: common.YawRotator(l.Spawn.Yaw)}
}

// Populate adds the level's colliders and bounds to w.
func (l *Level) Populate(w *ecs.World) error {
	for _, b := range l.Boxes {
		lo, _ := vec(b.Min)
		hi, _ := vec(b.Max)
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.StaticColliderComponent.Kind(), &component.StaticCollider{
			Box:  collision.Box(lo, hi),
			Name: b.Name,
		}); err != nil {
			return fmt.Errorf("populate %s: %w", l.Name, err)
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{KillZ: l.KillZ}); err != nil {
		return fmt.Errorf("populate %s: %w", l.Name, err)
	}
	return nil
}
