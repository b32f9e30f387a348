package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/spawn"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

const (
	burstCount    = 100
	swarmCount    = 200
	orbitalCount  = 300
	orbitalRadius = 0.1
	helpText      = "1/2/3 mode  arrows cursor  enter target  t untarget  b burst  s swarm  o orbit  c clear  space pause  +/- speed  q/w/e/g tune  r reset  [/] zoom  esc quit"
)

// HandleInput applies one terminal event, returns false when the monitor should exit
func (m *Monitor) HandleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			m.moveCursor(0, -1)
		case tcell.KeyDown:
			m.moveCursor(0, 1)
		case tcell.KeyLeft:
			m.moveCursor(-1, 0)
		case tcell.KeyRight:
			m.moveCursor(1, 0)
		case tcell.KeyEnter:
			m.ctrl.SetTarget(m.cursor)
			m.message = fmt.Sprintf("target (%.2f, %.2f, %.2f)", m.cursor.X, m.cursor.Y, m.cursor.Z)
		case tcell.KeyRune:
			m.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		m.screen.Sync()
	}

	return true
}

func (m *Monitor) handleRune(r rune) {
	switch r {
	case '1':
		m.setMode(spawn.ModeSwarm)
	case '2':
		m.setMode(spawn.ModeFree)
	case '3':
		m.setMode(spawn.ModeBurst)
	case 't':
		m.ctrl.ClearTarget()
		m.message = "target cleared"
	case 'b':
		n := m.spawner.Burst(m.cursor, burstCount)
		m.message = fmt.Sprintf("burst %d %s", n, m.spawner.Mode())
	case 's':
		n := m.spawner.Swarm(m.cursor, swarmCount)
		m.message = fmt.Sprintf("swarm %d", n)
	case 'o':
		n := m.spawner.OrbitalSwarm(m.focus, orbitalCount, orbitalRadius)
		m.message = fmt.Sprintf("orbital swarm %d", n)
	case 'c':
		n := m.spawner.Clear()
		m.message = fmt.Sprintf("cleared %d", n)
	case ' ':
		if m.ctrl.TogglePause() {
			m.message = "paused"
		} else {
			m.message = "running"
		}
	case '+', '=':
		m.message = fmt.Sprintf("time scale x%.2f", m.ctrl.SpeedUp())
	case '-':
		m.message = fmt.Sprintf("time scale x%.2f", m.ctrl.SlowDown())
	case 'q':
		m.ctrl.AdjustWeights(parameter.TuneWeightStepFloat, 0, 0)
		m.message = "separation up"
	case 'w':
		m.ctrl.AdjustWeights(0, parameter.TuneWeightStepFloat, 0)
		m.message = "alignment up"
	case 'e':
		m.ctrl.AdjustWeights(0, 0, parameter.TuneWeightStepFloat)
		m.message = "cohesion up"
	case 'Q':
		m.ctrl.AdjustWeights(-parameter.TuneWeightStepFloat, 0, 0)
		m.message = "separation down"
	case 'W':
		m.ctrl.AdjustWeights(0, -parameter.TuneWeightStepFloat, 0)
		m.message = "alignment down"
	case 'E':
		m.ctrl.AdjustWeights(0, 0, -parameter.TuneWeightStepFloat)
		m.message = "cohesion down"
	case 'g':
		m.ctrl.AdjustSwarmGravity(parameter.TuneGravityStepFloat)
		m.message = "swarm gravity up"
	case 'G':
		m.ctrl.AdjustSwarmGravity(-parameter.TuneGravityStepFloat)
		m.message = "swarm gravity down"
	case 'r':
		m.sim.Reset()
		m.message = "reset"
	case '[':
		m.zoom(zoomStep)
	case ']':
		m.zoom(1 / zoomStep)
	case 'h':
		m.message = helpText
	}
}

func (m *Monitor) setMode(mode spawn.Mode) {
	m.spawner.SetMode(mode)
	m.message = "mode " + mode.String()
}

// moveCursor steps the cursor by a fraction of the view width in the xz plane
func (m *Monitor) moveCursor(dx, dz float64) {
	step := 2 * m.halfWidth / cursorSteps
	m.cursor.X = vmath.Clamp(m.cursor.X+dx*step, -m.halfWidth, m.halfWidth)
	m.cursor.Z = vmath.Clamp(m.cursor.Z+dz*step, -m.halfWidth, m.halfWidth)
}

func (m *Monitor) zoom(f float64) {
	m.halfWidth = vmath.Clamp(m.halfWidth*f, minHalfWidth, maxHalfWidth)
	m.message = fmt.Sprintf("view ±%.2f AU", m.halfWidth)
}
