package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orbit-swarm/config"
	"github.com/lixenwraith/orbit-swarm/spawn"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

const scenario = `
[sim]
particles = 1024
trail-length = 16

[body "sun"]
order = 0
mass = 1
radius = 0.1
star

[body "earth"]
order = 1
x = 1
mass = 3e-6
radius = 0.02
auto-orbit

[spawn "cloud"]
kind = swarm
count = 64
x = 0.5
`

func newTestMonitor(t *testing.T) (*Monitor, tcell.SimulationScreen) {
	t.Helper()

	cfg, err := config.Parse(scenario)
	require.NoError(t, err)
	scene, err := cfg.Build(nil)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	return NewMonitor(screen, scene.Sim, scene.Ctrl, scene.Spawner, focusIndex(cfg, "earth")), screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestDraw_Header(t *testing.T) {
	m, screen := newTestMonitor(t)
	m.Draw()

	header := rowText(screen, 0)
	assert.Contains(t, header, "tick 0")
	assert.Contains(t, header, "mode swarm")
	assert.NotContains(t, header, "PAUSED")
}

func TestDraw_StarAtCenter(t *testing.T) {
	m, screen := newTestMonitor(t)
	m.cursor = vmath.Vec3F{X: 1, Z: 1}
	m.Draw()

	x, y, ok := m.project(vmath.Vec3F{})
	require.True(t, ok)
	r, _, _, _ := screen.GetContent(x, y)
	assert.Equal(t, '@', r)
}

func TestDraw_PanelListsBodies(t *testing.T) {
	m, screen := newTestMonitor(t)
	m.Draw()

	var panel strings.Builder
	_, h := screen.Size()
	for y := 1; y < h-1; y++ {
		panel.WriteString(rowText(screen, y))
	}
	assert.Contains(t, panel.String(), "> earth")
	assert.Contains(t, panel.String(), "sun")
	assert.Contains(t, panel.String(), "cohesion")
}

func TestProject(t *testing.T) {
	m, _ := newTestMonitor(t)

	// 70x28 map below the header
	x, y, ok := m.project(vmath.Vec3F{})
	require.True(t, ok)
	assert.Equal(t, 35, x)
	assert.Equal(t, 15, y)

	// Rows cover twice the distance of columns
	off := 0.5
	x2, y2, ok := m.project(vmath.Vec3F{X: off, Z: off})
	require.True(t, ok)
	assert.Equal(t, 35+int(off/(4.0/70)), x2)
	assert.Equal(t, 15+int(off/(8.0/70)), y2)

	_, _, ok = m.project(vmath.Vec3F{X: 3})
	assert.False(t, ok)

	m.HandleInput(key('['))
	_, _, ok = m.project(vmath.Vec3F{X: 2.2})
	assert.True(t, ok, "zoomed out view should include 2.2 AU")
}

func TestInput_Quit(t *testing.T) {
	m, _ := newTestMonitor(t)
	assert.False(t, m.HandleInput(special(tcell.KeyEscape)))
	assert.False(t, m.HandleInput(special(tcell.KeyCtrlC)))
	assert.True(t, m.HandleInput(key('x')))
}

func TestInput_SpawnAndClear(t *testing.T) {
	m, _ := newTestMonitor(t)
	require.Equal(t, 64, m.spawner.Alive())

	m.HandleInput(key('s'))
	assert.Equal(t, 64+swarmCount, m.spawner.Alive())

	m.HandleInput(key('2'))
	assert.Equal(t, spawn.ModeFree, m.spawner.Mode())
	m.HandleInput(key('b'))
	assert.Equal(t, 64+swarmCount+burstCount, m.spawner.Alive())

	m.HandleInput(key('o'))
	assert.Equal(t, 64+swarmCount+burstCount+orbitalCount, m.spawner.Alive())
	assert.Contains(t, m.message, "orbital swarm")

	m.HandleInput(key('c'))
	assert.Zero(t, m.spawner.Alive())
}

func TestInput_PauseShownInHeader(t *testing.T) {
	m, screen := newTestMonitor(t)

	m.HandleInput(key(' '))
	assert.True(t, m.ctrl.Paused())
	m.Draw()
	assert.Contains(t, rowText(screen, 0), "PAUSED")

	m.HandleInput(key(' '))
	assert.False(t, m.ctrl.Paused())
}

func TestInput_TimeScale(t *testing.T) {
	m, _ := newTestMonitor(t)
	base := m.ctrl.TimeScale()

	m.HandleInput(key('+'))
	assert.InDelta(t, base*1.5, m.ctrl.TimeScale(), 1e-9)
	m.HandleInput(key('-'))
	m.HandleInput(key('-'))
	assert.InDelta(t, base/1.5, m.ctrl.TimeScale(), 1e-9)
}

func TestInput_Tuning(t *testing.T) {
	m, _ := newTestMonitor(t)
	before := m.ctrl.Params()

	m.HandleInput(key('q'))
	m.HandleInput(key('w'))
	m.HandleInput(key('e'))
	m.HandleInput(key('g'))

	after := m.ctrl.Params()
	assert.InDelta(t, before.SeparationWeight+0.2, after.SeparationWeight, 1e-9)
	assert.InDelta(t, before.AlignmentWeight+0.2, after.AlignmentWeight, 1e-9)
	assert.InDelta(t, before.CohesionWeight+0.2, after.CohesionWeight, 1e-9)
	assert.Greater(t, after.SwarmGravityWeight, before.SwarmGravityWeight)
}

func TestInput_TargetAtCursor(t *testing.T) {
	m, _ := newTestMonitor(t)

	m.HandleInput(special(tcell.KeyRight))
	m.HandleInput(special(tcell.KeyDown))
	m.HandleInput(special(tcell.KeyEnter))

	p := m.ctrl.Params()
	require.True(t, p.TargetActive)
	step := 2 * defaultHalfWidth / cursorSteps
	assert.InDelta(t, step, p.Target.X, 1e-9)
	assert.InDelta(t, step, p.Target.Z, 1e-9)

	m.HandleInput(key('t'))
	assert.False(t, m.ctrl.Params().TargetActive)
}

func TestInput_Reset(t *testing.T) {
	m, _ := newTestMonitor(t)
	m.HandleInput(key('r'))
	assert.Zero(t, m.spawner.Alive())
	assert.Equal(t, "reset", m.message)
}

func TestLoop_ExitsOnEscape(t *testing.T) {
	m, screen := newTestMonitor(t)

	events := make(chan tcell.Event, 2)
	updates := make(chan struct{}, 1)
	updates <- struct{}{}

	done := make(chan struct{})
	go func() {
		m.Loop(context.Background(), events, updates, time.Millisecond)
		close(done)
	}()

	// Let at least one redraw happen
	time.Sleep(20 * time.Millisecond)
	events <- special(tcell.KeyEscape)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on escape")
	}
	assert.Contains(t, rowText(screen, 0), "swarm-monitor")
}

func TestLoop_ExitsOnContext(t *testing.T) {
	m, _ := newTestMonitor(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Loop(ctx, nil, nil, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on cancelled context")
	}
}

func TestFocusIndex(t *testing.T) {
	cfg, err := config.Parse(scenario)
	require.NoError(t, err)

	assert.Equal(t, 1, focusIndex(cfg, "earth"))
	assert.Equal(t, 0, focusIndex(cfg, "sun"))
	assert.Equal(t, 1, focusIndex(cfg, "pluto"))
}
