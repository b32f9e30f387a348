package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/engine"
	"github.com/lixenwraith/orbit-swarm/spawn"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

const (
	panelWidth       = 30
	trailStride      = 8
	defaultHalfWidth = 2.0
	minHalfWidth     = 0.05
	maxHalfWidth     = 64.0
	zoomStep         = 1.25
	cursorSteps      = 20
)

var (
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCursor = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePaused = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// Monitor draws a top-down xz view of the simulation with telemetry and handles keys
type Monitor struct {
	screen  tcell.Screen
	sim     *engine.Simulation
	ctrl    *engine.Controller
	spawner *spawn.Spawner

	snap      engine.Snapshot
	focus     int
	cursor    vmath.Vec3F
	halfWidth float64
	message   string
}

// NewMonitor creates a monitor, focus is the body used for orbital swarms
func NewMonitor(screen tcell.Screen, sim *engine.Simulation, ctrl *engine.Controller, spawner *spawn.Spawner, focus int) *Monitor {
	return &Monitor{
		screen:    screen,
		sim:       sim,
		ctrl:      ctrl,
		spawner:   spawner,
		focus:     focus,
		halfWidth: defaultHalfWidth,
		message:   "h for help",
	}
}

// mapSize returns the map area, left of the panel and between header and footer
func (m *Monitor) mapSize() (int, int) {
	w, h := m.screen.Size()
	mw := w - panelWidth
	if mw < 0 {
		mw = 0
	}
	mh := h - 2
	if mh < 0 {
		mh = 0
	}
	return mw, mh
}

// project maps a world position onto map cells, terminal cells are about twice as tall as wide
func (m *Monitor) project(p vmath.Vec3F) (int, int, bool) {
	mw, mh := m.mapSize()
	if mw == 0 || mh == 0 {
		return 0, 0, false
	}
	perCol := 2 * m.halfWidth / float64(mw)
	perRow := 2 * perCol
	col := int(math.Floor(float64(mw)/2 + p.X/perCol))
	row := int(math.Floor(float64(mh)/2 + p.Z/perRow))
	if col < 0 || col >= mw || row < 0 || row >= mh {
		return 0, 0, false
	}
	return col, row + 1, true
}

func rgb(c component.Color) tcell.Color {
	ch := func(v float64) int32 {
		return int32(vmath.Clamp(v, 0, 1)*255 + 0.5)
	}
	return tcell.NewRGBColor(ch(c.R), ch(c.G), ch(c.B))
}

func (m *Monitor) text(x, y int, s string, style tcell.Style) int {
	w, _ := m.screen.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		m.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Draw renders one frame from a fresh snapshot
func (m *Monitor) Draw() {
	m.sim.Snapshot(&m.snap)
	m.screen.Clear()

	m.drawHeader()
	m.drawMap()
	m.drawPanel()
	m.drawFooter()

	m.screen.Show()
}

func (m *Monitor) drawHeader() {
	w, _ := m.screen.Size()
	for x := 0; x < w; x++ {
		m.screen.SetContent(x, 0, ' ', nil, styleHeader)
	}
	line := fmt.Sprintf(" swarm-monitor  tick %d  t=%.3f yr  x%.2f  mode %s  view ±%.2f AU",
		m.snap.Tick, m.ctrl.Elapsed(), m.ctrl.TimeScale(), m.spawner.Mode(), m.halfWidth)
	x := m.text(0, 0, line, styleHeader)
	if m.ctrl.Paused() {
		m.text(x+2, 0, " PAUSED ", stylePaused)
	}
}

func (m *Monitor) drawMap() {
	// Trails first so bodies draw over them
	length := m.snap.TrailLength
	for b, body := range m.snap.Bodies {
		if body.Star || length == 0 {
			continue
		}
		seg := m.snap.Trails[b*length : (b+1)*length]
		for i := 0; i < len(seg); i += trailStride {
			if x, y, ok := m.project(seg[i].Position); ok {
				m.screen.SetContent(x, y, '·', nil, tcell.StyleDefault.Foreground(rgb(seg[i].Color)))
			}
		}
	}

	for i := range m.snap.Particles {
		p := &m.snap.Particles[i]
		if !p.Alive {
			continue
		}
		if x, y, ok := m.project(p.Position); ok {
			glyph := '.'
			if p.IsSwarm() {
				glyph = '•'
			}
			m.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(rgb(p.Color)))
		}
	}

	for _, body := range m.snap.Bodies {
		if x, y, ok := m.project(body.Position); ok {
			glyph := 'o'
			if body.Star {
				glyph = '@'
			}
			m.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(rgb(body.Color)).Bold(true))
		}
	}

	params := m.ctrl.Params()
	if params.TargetActive {
		if x, y, ok := m.project(params.Target); ok {
			m.screen.SetContent(x, y, 'x', nil, styleTarget)
		}
	}
	if x, y, ok := m.project(m.cursor); ok {
		m.screen.SetContent(x, y, '+', nil, styleCursor)
	}
}

func (m *Monitor) drawPanel() {
	w, h := m.screen.Size()
	x0 := w - panelWidth + 1
	if x0 < 0 {
		return
	}
	y := 1
	row := func(label, value string, style tcell.Style) {
		if y >= h-1 {
			return
		}
		m.text(x0, y, fmt.Sprintf("%-18s", label), styleLabel)
		m.text(x0+18, y, value, style)
		y++
	}

	for _, e := range m.sim.Registry().Snapshot() {
		row(e.Key, e.Value, styleValue)
	}

	p := m.ctrl.Params()
	y++
	row("separation", fmt.Sprintf("%.1f", p.SeparationWeight), styleValue)
	row("alignment", fmt.Sprintf("%.1f", p.AlignmentWeight), styleValue)
	row("cohesion", fmt.Sprintf("%.1f", p.CohesionWeight), styleValue)
	row("swarm gravity", fmt.Sprintf("%.1f", p.SwarmGravityWeight), styleValue)

	y++
	for i, body := range m.snap.Bodies {
		name := body.Name
		if i == m.focus {
			name = "> " + name
		}
		row(name, fmt.Sprintf("%.3f AU", vmath.V3FMag(body.Position)), tcell.StyleDefault.Foreground(rgb(body.Color)))
	}
}

func (m *Monitor) drawFooter() {
	_, h := m.screen.Size()
	if h < 2 {
		return
	}
	m.text(0, h-1, " "+m.message, styleValue)
}
