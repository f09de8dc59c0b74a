// Command traversal-sim runs a level headless, optionally driven by a tengo
// script, and prints the character's final state as YAML.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/ecs/system"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/script"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "traversal.yaml", "config file layered over the embedded defaults")
	levelName := flag.String("level", "gym", "level name in levels/ or a path to a level file")
	scriptName := flag.String("script", "", "script in prefabs/scripts driving the character (empty: idle)")
	seconds := flag.Float64("seconds", 10, "maximum simulated time")
	hz := flag.Int("hz", 60, "simulation rate")
	flag.Parse()

	os.Exit(run(*configPath, *levelName, *scriptName, float32(*seconds), *hz))
}

func run(configPath, levelName, scriptName string, seconds float32, hz int) (code int) {
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
			defer func() {
				if r := recover(); r != nil {
					hub := sentry.CurrentHub().Clone()
					hub.ConfigureScope(func(scope *sentry.Scope) {
						scope.SetTag("level", levelName)
						scope.SetTag("script", scriptName)
					})
					hub.Recover(r)
					log.Errorf("traversal-sim: panic: %v", r)
					code = 1
				}
			}()
		}
	}

	if hz <= 0 {
		log.Errorf("traversal-sim: hz must be positive, got %d", hz)
		return 2
	}

	lvl, err := levels.Load(levelName)
	if err != nil {
		log.WithError(err).Error("traversal-sim: level")
		return 2
	}
	scene, err := system.BuildScene(lvl, "hero", cfg, log)
	if err != nil {
		log.WithError(err).Error("traversal-sim: scene")
		return 1
	}

	var sc *component.ScriptControl
	if scriptName != "" {
		d, err := script.Load(scriptName, log)
		if err != nil {
			log.WithError(err).Error("traversal-sim: script")
			return 2
		}
		if sc, err = scene.Attach(d); err != nil {
			log.WithError(err).Error("traversal-sim: script")
			return 1
		}
	}

	start := time.Now()
	ticks := scene.Run(seconds, 1/float32(hz))
	log.WithFields(logrus.Fields{
		"level":   lvl.Name,
		"ticks":   ticks,
		"elapsed": time.Since(start).Round(time.Microsecond),
	}).Info("traversal-sim: finished")

	out, err := scene.Controller.State().SnapshotYAML()
	if err != nil {
		log.WithError(err).Error("traversal-sim: snapshot")
		return 1
	}
	_, _ = os.Stdout.Write(out)

	if sc != nil {
		if sc.Err != nil {
			log.WithError(sc.Err).Error("traversal-sim: script failed")
			return 1
		}
		if !sc.Driver.Done() {
			log.Warn("traversal-sim: script did not finish in time")
			return 3
		}
	}
	return 0
}
