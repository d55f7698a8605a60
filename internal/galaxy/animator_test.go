package galaxy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnimator(hub *ResizeHub) (*Animator, chan struct{}) {
	frames := make(chan struct{}, 1)
	f := NewField(100, 100, DefaultOptions())
	a := NewAnimator(f, AnimatorOptions{
		FPS: 200,
		Redraw: func() {
			select {
			case frames <- struct{}{}:
			default:
			}
		},
		Resizes: hub,
	})
	return a, frames
}

func waitFrame(t *testing.T, frames <-chan struct{}) {
	t.Helper()
	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame within 2s")
	}
}

func TestAnimator_StepsAndRedraws(t *testing.T) {
	a, frames := newTestAnimator(nil)
	a.Start(context.Background())
	defer a.Stop()

	waitFrame(t, frames)

	var frame uint64
	a.Do(func(f *Field) { frame = f.Frame() })
	assert.True(t, frame > 0)
}

func TestAnimator_StopDetachesResizeListener(t *testing.T) {
	hub := NewResizeHub()
	a, _ := newTestAnimator(hub)

	a.Start(context.Background())
	assert.Equal(t, 1, hub.Len())
	assert.True(t, a.Running())

	a.Stop()
	assert.Equal(t, 0, hub.Len())
	assert.False(t, a.Running())

	// Stop is idempotent
	a.Stop()
	assert.Equal(t, 0, hub.Len())
}

func TestAnimator_RemountDoesNotAccumulateListeners(t *testing.T) {
	hub := NewResizeHub()
	a, frames := newTestAnimator(hub)

	for i := 0; i < 3; i++ {
		a.Start(context.Background())
		a.Start(context.Background())
		waitFrame(t, frames)
		assert.Equal(t, 1, hub.Len())
		a.Stop()
	}
	assert.Equal(t, 0, hub.Len())
}

func TestAnimator_ResizeReachesField(t *testing.T) {
	hub := NewResizeHub()
	a, _ := newTestAnimator(hub)
	a.Start(context.Background())
	defer a.Stop()

	hub.Notify(300, 50)

	a.Do(func(f *Field) {
		assert.Equal(t, 300.0, f.W)
		assert.Equal(t, 50.0, f.H)
	})
}

func TestAnimator_ContextCancelThenStop(t *testing.T) {
	hub := NewResizeHub()
	a, frames := newTestAnimator(hub)

	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	waitFrame(t, frames)
	cancel()

	done := make(chan struct{})
	go func() {
		a.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop hung after context cancel")
	}
	assert.Equal(t, 0, hub.Len())
}

func TestAnimator_SetFPS(t *testing.T) {
	a, frames := newTestAnimator(nil)
	a.SetFPS(0)
	assert.Equal(t, DefaultFPS, a.FPS())

	a.Start(context.Background())
	defer a.Stop()
	a.SetFPS(120)
	a.SetFPS(250)
	assert.Equal(t, 250, a.FPS())
	waitFrame(t, frames)
}

func TestResizeHub(t *testing.T) {
	hub := NewResizeHub()
	var got []float64

	remove := hub.Add(func(w, h float64) { got = append(got, w, h) })
	require.Equal(t, 1, hub.Len())

	hub.Notify(3, 4)
	remove()
	remove()
	hub.Notify(5, 6)

	assert.Equal(t, []float64{3, 4}, got)
	assert.Equal(t, 0, hub.Len())
}
