package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orbit-swarm/core"
	"github.com/lixenwraith/orbit-swarm/status"
)

const (
	StatStepMs = "sim.step_ms"
	StatPaused = "sim.paused"
)

// Scheduler drives a Simulation on a fixed tick
// Pause-aware without busy-wait, deadlines are drift-corrected
type Scheduler struct {
	sim  *Simulation
	ctrl *Controller

	tickInterval     time.Duration
	nextTickDeadline time.Time

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Signals a committed tick, dropped when the consumer is behind
	updateDone chan<- struct{}

	errMu sync.Mutex
	err   error

	// Cached metric pointers
	statStepMs *status.AtomicFloat
	statPaused *atomic.Bool
}

// NewScheduler creates a scheduler stepping sim with parameters from ctrl every tickInterval
// Returns the update signal channel, buffered by one
func NewScheduler(sim *Simulation, ctrl *Controller, tickInterval time.Duration) (*Scheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)
	reg := sim.Registry()

	s := &Scheduler{
		sim:          sim,
		ctrl:         ctrl,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		updateDone:   updateDone,
		statStepMs:   reg.Floats.Get(StatStepMs),
		statPaused:   reg.Bools.Get(StatPaused),
	}
	return s, updateDone
}

// Start begins the scheduler loop, it ends on Stop, on ctx cancellation or on a step error
func (s *Scheduler) Start(ctx context.Context) {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(func() { s.loop(ctx) })
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.running.Store(false)
}

// TickCount returns ticks committed by this scheduler
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// Err returns the step error that ended the loop, if any
func (s *Scheduler) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	s.nextTickDeadline = time.Now().Add(s.tickInterval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	frameDt := s.tickInterval.Seconds()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		default:
		}

		var sleepDuration time.Duration

		paused := s.ctrl.Paused()
		s.statPaused.Store(paused)

		if paused {
			// Longer sleep while paused, deadline restarts on resume
			sleepDuration = s.tickInterval * 2
			s.nextTickDeadline = time.Now().Add(s.tickInterval)
		} else {
			now := time.Now()
			if !now.Before(s.nextTickDeadline) {
				if !s.processTick(ctx, frameDt) {
					return
				}

				s.nextTickDeadline = s.nextTickDeadline.Add(s.tickInterval)
				maxBehind := s.tickInterval * 2
				if now.Sub(s.nextTickDeadline) > maxBehind {
					s.nextTickDeadline = now.Add(s.tickInterval)
				}

				s.tickCount.Add(1)

				select {
				case s.updateDone <- struct{}{}:
				default:
				}
			}
			sleepDuration = time.Until(s.nextTickDeadline)
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}
}

// processTick steps once, returns false when the loop must end
func (s *Scheduler) processTick(ctx context.Context, frameDt float64) bool {
	params := s.ctrl.Next(frameDt)

	start := time.Now()
	err := s.sim.Step(ctx, params)
	s.statStepMs.Store(float64(time.Since(start).Microseconds()) / 1000)

	if err == nil {
		return true
	}
	if errors.Is(err, ErrStopped) {
		return false
	}

	s.errMu.Lock()
	s.err = err
	s.errMu.Unlock()
	log.Printf("scheduler: step failed: %v", err)
	return false
}
