package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch(t *testing.T) {
	in := strings.NewReader("1+2\n\n  10/4  \n0.1+0.2\n2*(3+4)\n")
	var out bytes.Buffer

	failed, err := runBatch(in, &out)
	require.NoError(t, err)
	assert.False(t, failed)
	assert.Equal(t, "3\n2.5\n0.3\n14\n", out.String())
}

func TestRunBatch_ErrorsContinue(t *testing.T) {
	in := strings.NewReader("5/0\n2+\n7\n")
	var out bytes.Buffer

	failed, err := runBatch(in, &out)
	require.NoError(t, err)
	assert.True(t, failed)
	assert.Equal(t, "Error\nError\n7\n", out.String())
}

func TestBatch_ExitStatus(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, batch(strings.NewReader("1+1\n"), &out))
	assert.Equal(t, 1, batch(strings.NewReader("1+\n"), &out))
}

func TestRotatingWriter_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	w, err := NewRotatingWriter(path, 10, 2)
	require.NoError(t, err)
	defer w.Close()

	for _, line := range []string{"first---", "second--", "third---", "fourth--"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "fourth--", read(path))
	assert.Equal(t, "third---", read(path+".1"))
	assert.Equal(t, "second--", read(path+".2"))
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err), "only two backups are kept")
}

func TestRotatingWriter_NoBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	w, err := NewRotatingWriter(path, 4, 0)
	require.NoError(t, err)
	defer w.Close()

	w.Write([]byte("abcd"))
	w.Write([]byte("efgh"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "efgh", string(data))
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_OversizedWriteOnEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	w, err := NewRotatingWriter(path, 4, 1)
	require.NoError(t, err)
	defer w.Close()

	n, err := w.Write([]byte("longer than the limit"))
	require.NoError(t, err)
	assert.Equal(t, 21, n)
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err), "an empty log is never rotated")
}

func TestRotatingWriter_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	w, err := NewRotatingWriter(path, 1024, 1)
	require.NoError(t, err)
	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(data))
}

func TestLogOutput_DiscardsWithoutDebug(t *testing.T) {
	out, err := logOutput("OFF")
	require.NoError(t, err)
	assert.Equal(t, NullWriter{}, out)
}

func TestNullWriter(t *testing.T) {
	n, err := NullWriter{}.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPollEvents_Forwards(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	defer sim.Fini()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(sim, done)

	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone, "")))
	for {
		select {
		case ev := <-events:
			if key, ok := ev.(*tcell.EventKey); ok {
				assert.Equal(t, '7', key.Rune())
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("key never forwarded")
		}
	}
}

func TestPollEvents_StopsWithUnreadEvent(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())

	done := make(chan struct{})
	events := pollEvents(sim, done)

	// Nobody reads this one, so the forwarder is parked on the send
	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone, "")))
	time.Sleep(50 * time.Millisecond)
	close(done)
	sim.Fini()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event forwarder did not stop")
		}
	}
}
