package core

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()
	var buf bytes.Buffer
	codes := make(chan int, 1)
	crashOut = &buf
	crashExit = func(c int) { codes <- c }
	t.Cleanup(func() {
		crashOut = os.Stderr
		crashExit = os.Exit
		SetCrashReset(nil)
	})
	return &buf, codes
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	buf, codes := captureCrash(t)
	HandleCrash(nil)
	assert.Empty(t, codes)
	assert.Zero(t, buf.Len())
}

func TestHandleCrash_RunsResetThenExits(t *testing.T) {
	buf, codes := captureCrash(t)
	reset := false
	SetCrashReset(func() { reset = true })

	HandleCrash("boom")

	assert.True(t, reset)
	require.Len(t, codes, 1)
	assert.Equal(t, 1, <-codes)
	assert.Contains(t, buf.String(), "CRASH DETECTED: boom")
	assert.Contains(t, buf.String(), "Stack Trace:")
}

func TestGo_RecoversPanic(t *testing.T) {
	buf, codes := captureCrash(t)

	Go(func() { panic("worker failed") })

	select {
	case code := <-codes:
		assert.Equal(t, 1, code)
	case <-time.After(2 * time.Second):
		t.Fatal("crash handler not invoked")
	}
	// Channel receive orders the buffer writes before this read
	assert.Contains(t, buf.String(), "worker failed")
}
