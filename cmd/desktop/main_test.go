package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchOutputSignalsReadyOnce(t *testing.T) {
	input := strings.Join([]string{
		`{"level":"info","msg":"Running database auto-migration..."}`,
		`{"level":"info","msg":"serving on port 5000","desktop":true}`,
		`{"level":"info","msg":"serving on port 5000"}`,
	}, "\n")
	ready := make(chan struct{})
	var out bytes.Buffer

	watchOutput(strings.NewReader(input), &out, ready)

	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("ready was not signalled")
	}
	assert.Equal(t, input+"\n", out.String())
}

func TestServerEnvForcesDesktopMode(t *testing.T) {
	env := serverEnv([]string{"PATH=/bin"}, launchOptions{Port: "5123", DataDir: "/home/a/.config/thesis-hand"})
	assert.Contains(t, env, "IS_DESKTOP=true")
	assert.Contains(t, env, "HTTP_PORT=5123")
	assert.Contains(t, env, "SQLITE_PATH=/home/a/.config/thesis-hand/database.db")
	assert.Equal(t, "PATH=/bin", env[0])
}

func TestBrowserCommand(t *testing.T) {
	name, args := browserCommand("linux", "http://localhost:5000")
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"http://localhost:5000"}, args)

	name, _ = browserCommand("darwin", "http://localhost:5000")
	assert.Equal(t, "open", name)
}
