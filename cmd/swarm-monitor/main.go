package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbit-swarm/config"
	"github.com/lixenwraith/orbit-swarm/core"
	"github.com/lixenwraith/orbit-swarm/engine"
)

const (
	logDir      = "logs"
	logFileName = "swarm-monitor.log"
)

var (
	configPath = flag.String("config", "", "Scenario file (gcfg), built-in solar system when empty")
	interval   = flag.Duration("interval", 16*time.Millisecond, "Simulation tick interval")
	workers    = flag.Int("workers", 0, "Dispatcher workers, 0 uses GOMAXPROCS")
	seed       = flag.Int64("seed", 0, "Spawn seed, overrides the scenario")
	focusName  = flag.String("focus", "earth", "Body used for orbital swarms")
	debug      = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

func setupLogging(debug bool) *os.File {
	return core.SetupLogging(logDir, logFileName, debug)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if f := setupLogging(*debug); f != nil {
		defer f.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "swarm-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if *workers > 0 {
		cfg.Sim.Workers = *workers
	}

	scene, err := cfg.Build(nil)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	core.SetCrashReset(screen.Fini)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon := NewMonitor(screen, scene.Sim, scene.Ctrl, scene.Spawner, focusIndex(cfg, *focusName))

	sched, updates := engine.NewScheduler(scene.Sim, scene.Ctrl, *interval)
	sched.Start(ctx)
	defer sched.Stop()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	log.Printf("monitor: started, %d bodies, capacity %d, interval %v", scene.Sim.BodyCount(), scene.Sim.Capacity(), *interval)
	mon.Loop(ctx, events, updates, 16*time.Millisecond)
	log.Printf("monitor: exit at tick %d", scene.Sim.Tick())

	return sched.Err()
}

func loadScenario() (*config.Config, error) {
	if *configPath == "" {
		return config.Solar()
	}
	return config.Load(*configPath)
}

// focusIndex resolves the orbital swarm body, falling back to the first planet
func focusIndex(cfg *config.Config, name string) int {
	if i, ok := cfg.BodyIndex(name); ok {
		return i
	}
	if len(cfg.Body) > 1 {
		return 1
	}
	return 0
}

// Loop redraws on committed ticks and on the redraw ticker until input asks to quit or ctx ends
func (m *Monitor) Loop(ctx context.Context, events <-chan tcell.Event, updates <-chan struct{}, redraw time.Duration) {
	ticker := time.NewTicker(redraw)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			if !m.HandleInput(ev) {
				return
			}
			dirty = true

		case <-updates:
			dirty = true

		case <-ticker.C:
			if dirty {
				m.Draw()
				dirty = false
			}
		}
	}
}
