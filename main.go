package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/levels"
)

func main() {
	configPath := flag.String("config", "traversal.yaml", "config file layered over the embedded defaults; edits are hot reloaded")
	levelName := flag.String("level", "gym", "level name in levels/ or a path to a level file")
	scriptName := flag.String("script", "", "drive the character from a script in prefabs/scripts instead of the keyboard")
	stats := flag.Bool("stats", false, "serve runtime stats on localhost:18066")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	os.Exit(run(*configPath, *levelName, *scriptName, *stats, *baseMonitor))
}

// run owns every deferred cleanup, so main only exits once they have run.
func run(configPath, levelName, scriptName string, stats, baseMonitor bool) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := cfg.NewLogger(os.Stderr)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.WithError(err).Warn("sentry: init failed")
		} else {
			defer sentry.Flush(5 * time.Second)
			defer sentry.Recover()
		}
	}

	if stats {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:18066"))
		mgr := statsview.New()
		go func() {
			if err := mgr.Start(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Warn("stats: viewer stopped")
			}
		}()
		defer mgr.Stop()
	}

	lvl, err := levels.Load(levelName)
	if err != nil {
		log.WithError(err).Error("demo: level")
		return 2
	}

	if baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("traversal")

	game, err := NewGame(cfg, configPath, lvl, scriptName, log)
	if err != nil {
		log.WithError(err).Error("demo: start")
		return 1
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("demo: run")
		return 1
	}
	return 0
}
