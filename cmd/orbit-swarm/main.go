package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/orbit-swarm/config"
	"github.com/lixenwraith/orbit-swarm/core"
	"github.com/lixenwraith/orbit-swarm/engine"
	"github.com/lixenwraith/orbit-swarm/status"
	"github.com/lixenwraith/orbit-swarm/wire"
)

const (
	logDir      = "logs"
	logFileName = "orbit-swarm.log"
)

var (
	configPath = flag.String("config", "", "Scenario file (gcfg), built-in solar system when empty")
	ticks      = flag.Int("ticks", 0, "Ticks to run, overrides the scenario")
	workers    = flag.Int("workers", 0, "Dispatcher workers, 0 uses GOMAXPROCS")
	seed       = flag.Int64("seed", 0, "Spawn seed, overrides the scenario")
	report     = flag.Int("report", 100, "Print counters every N ticks, 0 disables")
	dumpPath   = flag.String("dump", "", "Write final particles, bodies and trails in the packed GPU layout")
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil && !errors.Is(err, engine.ErrStopped) {
		fmt.Fprintf(os.Stderr, "orbit-swarm: %v\n", err)
		os.Exit(1)
	}
}

func loadScenario() (*config.Config, error) {
	if *configPath == "" {
		return config.Solar()
	}
	return config.Load(*configPath)
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	if *ticks > 0 {
		cfg.Sim.Ticks = *ticks
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if *workers > 0 {
		cfg.Sim.Workers = *workers
	}
	log.Printf("scenario: %d bodies, capacity %d, %d ticks", len(cfg.Body), cfg.Sim.Particles, cfg.Sim.Ticks)

	scene, err := cfg.Build(nil)
	if err != nil {
		return err
	}
	sim, ctrl := scene.Sim, scene.Ctrl

	start := time.Now()
	err = runTicks(ctx, sim, ctrl, cfg.Sim.Ticks, cfg.Sim.Dt, *report, out)
	elapsed := time.Since(start)

	fmt.Fprintf(out, "ran %d ticks in %v, simulated %.3f yr\n", sim.Tick(), elapsed.Round(time.Millisecond), ctrl.Elapsed())
	printCounters(out, sim.Registry())
	log.Printf("finished: %d ticks in %v", sim.Tick(), elapsed)

	if *dumpPath != "" {
		if derr := dump(*dumpPath, sim); derr != nil {
			return derr
		}
		fmt.Fprintf(out, "state written to %s\n", *dumpPath)
	}
	return err
}

// runTicks steps as fast as possible with a fixed frame dt
func runTicks(ctx context.Context, sim *engine.Simulation, ctrl *engine.Controller, n int, frameDt float64, every int, out io.Writer) error {
	for i := 1; i <= n; i++ {
		if err := sim.Step(ctx, ctrl.Next(frameDt)); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if every > 0 && i%every == 0 {
			reg := sim.Registry()
			fmt.Fprintf(out, "tick %6d  alive %6d  swarm %6d  kills %6d\n",
				i,
				reg.Ints.Get(engine.StatAlive).Load(),
				reg.Ints.Get(engine.StatSwarm).Load(),
				reg.Ints.Get(engine.StatKillsTotal).Load(),
			)
		}
	}
	return nil
}

func printCounters(out io.Writer, reg *status.Registry) {
	for _, e := range reg.Snapshot() {
		fmt.Fprintf(out, "  %-20s %s\n", e.Key, e.Value)
	}
}

// dump writes particles, bodies and trails back to back, each preceded by its byte length
func dump(path string, sim *engine.Simulation) error {
	var buf []byte
	section := func(payload []byte) {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
		buf = append(buf, payload...)
	}

	section(wire.AppendParticles(nil, sim.Particles()))
	section(wire.AppendBodies(nil, sim.Bodies()))
	trails, _ := wire.AppendTrails(nil, sim.Trails(), nil)
	section(trails)

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
