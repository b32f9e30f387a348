package core

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DisabledDiscards(t *testing.T) {
	f := SetupLogging(t.TempDir(), "x.log", false)
	assert.Nil(t, f)
	assert.Equal(t, io.Discard, log.Writer())
}

func TestSetupLogging_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	f := SetupLogging(dir, "sim.log", true)
	require.NotNil(t, f)
	t.Cleanup(func() {
		log.SetOutput(io.Discard)
		f.Close()
	})

	log.Println("probe")
	data, err := os.ReadFile(filepath.Join(dir, "sim.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "probe")
	assert.NotEqual(t, os.Stderr, log.Writer())
}

func TestSetupLogging_RotatesOversized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.log")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxLogSize+1), 0644))

	f := SetupLogging(dir, "sim.log", true)
	require.NotNil(t, f)
	t.Cleanup(func() {
		log.SetOutput(io.Discard)
		f.Close()
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	rotated := 0
	for _, e := range entries {
		if e.Name() != "sim.log" && filepath.Ext(e.Name()) == ".log" {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(MaxLogSize))
}
