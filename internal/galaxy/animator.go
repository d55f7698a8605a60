package galaxy

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultFPS is the frame rate used when none is configured
const DefaultFPS = 30

// AnimatorOptions configures an Animator
type AnimatorOptions struct {
	FPS int

	// Redraw is called from the animation goroutine after every step.
	// It must not block.
	Redraw func()

	// Resizes, if set, resizes the field whenever the viewport changes
	Resizes *ResizeHub
}

// Animator steps a field on a ticker. The field is only touched under the
// animator's lock; painters read it through Do.
type Animator struct {
	mu    sync.Mutex
	field *Field

	redraw  func()
	resizes *ResizeHub

	// Lifecycle, guarded by lifeMu
	lifeMu       sync.Mutex
	fps          int
	running      bool
	stop         chan struct{}
	done         chan struct{}
	fpsChanged   chan int
	removeResize func()
}

// NewAnimator creates a stopped animator for field
func NewAnimator(field *Field, opts AnimatorOptions) *Animator {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	return &Animator{
		field:   field,
		fps:     opts.FPS,
		redraw:  opts.Redraw,
		resizes: opts.Resizes,
	}
}

// Start launches the animation goroutine and subscribes to resizes.
// Starting a running animator does nothing.
func (a *Animator) Start(ctx context.Context) {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()

	if a.running {
		return
	}
	a.running = true
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	a.fpsChanged = make(chan int, 1)
	a.removeResize = a.Subscribe()

	log.Printf("STARCALC Galaxy: starting animator at %d fps", a.fps)
	go a.loop(ctx, a.fps, a.stop, a.done, a.fpsChanged)
}

// Subscribe registers the resize listener and returns its removal func.
// Start calls it; it is exported for callers that drive Step themselves.
func (a *Animator) Subscribe() func() {
	if a.resizes == nil {
		return func() {}
	}
	return a.resizes.Add(func(w, h float64) {
		a.mu.Lock()
		a.field.Resize(w, h)
		a.mu.Unlock()
	})
}

// Stop halts the ticker, waits for the goroutine to exit and removes the
// resize listener. It is safe to call more than once.
func (a *Animator) Stop() {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()

	if !a.running {
		return
	}
	a.running = false
	close(a.stop)
	<-a.done

	if a.removeResize != nil {
		a.removeResize()
		a.removeResize = nil
	}
	log.Println("STARCALC Galaxy: animator stopped")
}

// Running returns true between Start and Stop
func (a *Animator) Running() bool {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()
	return a.running
}

// SetFPS changes the frame rate, taking effect on the next tick
func (a *Animator) SetFPS(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}

	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()

	a.fps = fps
	if !a.running {
		return
	}
	// Keep only the newest rate
	select {
	case <-a.fpsChanged:
	default:
	}
	a.fpsChanged <- fps
}

// FPS returns the configured frame rate
func (a *Animator) FPS() int {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()
	return a.fps
}

// Do runs fn with the field locked
func (a *Animator) Do(fn func(f *Field)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.field)
}

func (a *Animator) loop(ctx context.Context, fps int, stop <-chan struct{}, done chan<- struct{}, fpsChanged <-chan int) {
	defer close(done)

	ticker := time.NewTicker(frameInterval(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case fps := <-fpsChanged:
			ticker.Reset(frameInterval(fps))
		case <-ticker.C:
			a.mu.Lock()
			a.field.Step()
			a.mu.Unlock()

			if a.redraw != nil {
				a.redraw()
			}
		}
	}
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}

// ResizeFunc receives a new viewport size in field pixels
type ResizeFunc func(w, h float64)

// ResizeHub fans viewport size changes out to listeners
type ResizeHub struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]ResizeFunc
}

// NewResizeHub creates an empty hub
func NewResizeHub() *ResizeHub {
	return &ResizeHub{listeners: make(map[int]ResizeFunc)}
}

// Add registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (r *ResizeHub) Add(fn ResizeFunc) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Notify calls every listener with the new size
func (r *ResizeHub) Notify(w, h float64) {
	r.mu.Lock()
	fns := make([]ResizeFunc, 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(w, h)
	}
}

// Len returns the number of registered listeners
func (r *ResizeHub) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
