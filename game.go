package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/ecs/system"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/prefabs"
	"github.com/milk9111/traversal/script"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	heroName       = "hero"
	statusDuration = 120 // ticks
)

type Game struct {
	frames int

	cfg   config.Config
	log   *logrus.Logger
	level *levels.Level
	scene *system.Scene
	input *Input

	scriptName string
	control    *component.ScriptControl

	watcher *config.Watcher
	scripts *prefabs.ScriptWatcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	haveClipboard bool
	status        string
	statusTicks   int

	top, side view
}

func NewGame(cfg config.Config, configPath string, lvl *levels.Level, scriptName string, log *logrus.Logger) (*Game, error) {
	g := &Game{
		cfg:        cfg,
		log:        log,
		level:      lvl,
		input:      NewInput(),
		scriptName: scriptName,
		top:        view{name: "top", x: 10, y: 60, w: baseWidth/2 - 15, h: baseHeight - 70, u: 0, v: 1, scale: 0.25},
		side:       view{name: "side", x: baseWidth/2 + 5, y: 60, w: baseWidth/2 - 15, h: baseHeight - 70, u: 0, v: 2, scale: 0.5},
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if w, err := config.NewWatcher(configPath); err != nil {
		log.WithError(err).Warn("demo: config hot reload disabled")
	} else {
		g.watcher = w
	}
	if w, err := prefabs.WatchScripts("prefabs/scripts"); err != nil {
		log.WithError(err).Debug("demo: script hot reload disabled")
	} else {
		g.scripts = w
	}

	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("demo: clipboard unavailable")
	} else {
		g.haveClipboard = true
	}
	return g, nil
}

// restart rebuilds the scene from the level and, when set, the script.
func (g *Game) restart() error {
	scene, err := system.BuildScene(g.level, heroName, g.cfg, g.log)
	if err != nil {
		return err
	}
	g.scene = scene
	g.control = nil
	if g.scriptName != "" {
		if err := g.loadScript(); err != nil {
			return err
		}
	}
	g.paused = false
	return nil
}

func (g *Game) loadScript() error {
	d, err := script.Load(g.scriptName, g.log)
	if err != nil {
		return err
	}
	if g.control != nil {
		*g.control = component.ScriptControl{Driver: d}
		return nil
	}
	g.control, err = g.scene.Attach(d)
	return err
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.scripts != nil {
		_ = g.scripts.Close()
	}
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusTicks = statusDuration
}

// pollReloads applies pending config and script edits without blocking.
func (g *Game) pollReloads() {
	if g.watcher != nil {
		select {
		case cfg := <-g.watcher.Changes:
			g.cfg = cfg
			g.requestReload()
			g.setStatus("config reloaded")
		case err := <-g.watcher.Errors:
			g.log.WithError(err).Warn("demo: config reload failed")
			g.setStatus("config reload failed: %v", err)
		default:
		}
	}
	if g.scripts != nil {
		select {
		case name, ok := <-g.scripts.Changes:
			if !ok {
				g.scripts = nil
				return
			}
			if name == g.scriptName {
				if err := g.loadScript(); err != nil {
					g.log.WithError(err).Warn("demo: script reload failed")
					g.setStatus("script reload failed: %v", err)
				} else {
					g.setStatus("script %s reloaded", name)
				}
			}
		default:
		}
	}
}

func (g *Game) requestReload() {
	e := ecs.CreateEntity(g.scene.World)
	_ = ecs.Add(g.scene.World, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Config: g.cfg})
}

func (g *Game) copySnapshot() {
	out, err := g.scene.Controller.State().SnapshotYAML()
	if err != nil {
		g.setStatus("snapshot failed: %v", err)
		return
	}
	if !g.haveClipboard {
		g.log.Info("demo: state snapshot\n" + string(out))
		g.setStatus("clipboard unavailable, snapshot logged")
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.setStatus("state copied to clipboard")
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	if g.statusTicks > 0 {
		g.statusTicks--
	}

	g.pollReloads()
	g.input.Update()

	if g.input.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	switch {
	case g.input.Restart:
		if err := g.restart(); err != nil {
			g.log.WithError(err).Error("demo: restart failed")
		}
	case g.input.CopyState:
		g.copySnapshot()
	case g.input.ToggleDebug:
		g.cfg.Traversal.DebugDraw = !g.cfg.Traversal.DebugDraw
		g.requestReload()
		g.setStatus("debug draw: %v", g.cfg.Traversal.DebugDraw)
	}

	if g.control == nil {
		in := g.scene.Input()
		in.Axes = g.input.Axes
		in.Actions = append(in.Actions, g.input.Actions...)
	}

	g.scene.World.Update(1 / float32(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x12, G: 0x14, B: 0x1a, A: 0xff})

	st := g.scene.Controller.State()
	g.top.centre = st.Location
	g.side.centre = st.Location
	g.top.drawWorld(screen, g.scene.World, g.scene.Character)
	g.side.drawWorld(screen, g.scene.World, g.scene.Character)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    level: %s", g.frames, ebiten.ActualFPS(), g.level.Name))
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("mode: %-12s loc: %5.0f %5.0f %5.0f  vel: %5.0f %5.0f %5.0f  yaw: %4.0f  control: %4.0f/%3.0f",
		st.Mode(),
		st.Location.X(), st.Location.Y(), st.Location.Z(),
		st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z(),
		st.Rotation.Yaw, st.Control.Yaw, st.Control.Pitch,
	), 0, 16)

	hint := "WASD move  arrows look  space jump  E climb  Q drop  C cover  RMB aim  Y copy  F1 debug  R restart  Esc pause"
	if g.control != nil {
		hint = "script: " + g.scriptName
		if g.control.Err != nil {
			hint += " failed: " + g.control.Err.Error()
		} else if g.control.Driver.Done() {
			hint += " (done)"
		}
	}
	ebitenutil.DebugPrintAt(screen, hint, 0, 32)
	if g.statusTicks > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, int(baseWidth/2), 0)
	}
	ebitenutil.DebugPrintAt(screen, g.top.name, int(g.top.x)+4, int(g.top.y)+2)
	ebitenutil.DebugPrintAt(screen, g.side.name, int(g.side.x)+4, int(g.side.y)+2)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
