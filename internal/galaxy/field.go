// Package galaxy simulates the animated star field drawn behind the
// calculator: twinkling stars, short-lived cosmic-ray streaks, static
// nebulae and a glow at the galaxy core.
package galaxy

import (
	"math"
	"math/rand"
)

// Options controls the size of the field's arenas and its randomness
type Options struct {
	StarDensity  float64 // Square pixels per star
	MaxStars     int
	MaxStreaks   int
	StreakChance float64 // Probability of spawning a streak each frame
	Nebulae      int
	Seed         int64
}

// DefaultOptions returns the options the calculator starts with
func DefaultOptions() Options {
	return Options{
		StarDensity:  1000,
		MaxStars:     4000,
		MaxStreaks:   32,
		StreakChance: 0.03,
		Nebulae:      5,
		Seed:         1,
	}
}

// Star is a slowly drifting, twinkling point
type Star struct {
	X, Y          float64
	Radius        float64
	Color         RGB
	DX, DY        float64
	Brightness    float64
	MaxBrightness float64
	TwinkleSpeed  float64
	twinkleDir    float64
}

// Streak is a cosmic ray crossing the field
type Streak struct {
	X, Y    float64
	Length  float64
	Angle   float64
	Speed   float64
	Width   float64
	Color   RGB
	Life    int
	MaxLife int

	gen  uint32
	live bool
}

// Alpha is the streak's opacity: fully opaque when born, fading to zero at MaxLife
func (s Streak) Alpha() float64 {
	return math.Max(0, math.Min(1, float64(s.MaxLife-s.Life)/float64(s.MaxLife)))
}

// End returns the far end of the streak
func (s Streak) End() (float64, float64) {
	return s.X + math.Cos(s.Angle)*s.Length, s.Y + math.Sin(s.Angle)*s.Length
}

// StreakRef identifies a streak slot at a given generation. A ref goes
// stale once its slot is released, even if the slot is reused.
type StreakRef struct {
	Slot int
	Gen  uint32
}

// Nebula is a static coloured cloud
type Nebula struct {
	X, Y    float64
	Radius  float64
	Color   RGB
	Opacity float64
}

// Field holds every body in the galaxy. Stars and streaks live in arenas
// allocated once by NewField; stepping never allocates.
type Field struct {
	W, H float64

	opts    Options
	rng     *rand.Rand
	stars   []Star
	streaks []Streak
	free    []int
	nebulae []Nebula
	frame   uint64
}

// NewField creates a field for a viewport of w×h abstract pixels
func NewField(w, h float64, opts Options) *Field {
	def := DefaultOptions()
	if opts.StarDensity <= 0 {
		opts.StarDensity = def.StarDensity
	}
	if opts.MaxStars < 0 {
		opts.MaxStars = 0
	}
	if opts.MaxStreaks < 0 {
		opts.MaxStreaks = 0
	}
	if opts.Nebulae < 0 {
		opts.Nebulae = 0
	}

	f := &Field{
		W:    math.Max(w, 1),
		H:    math.Max(h, 1),
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}

	n := StarCount(f.W, f.H, opts)
	f.stars = make([]Star, n, opts.MaxStars)
	for i := range f.stars {
		f.stars[i] = f.newStar()
	}

	f.streaks = make([]Streak, opts.MaxStreaks)
	f.free = make([]int, 0, opts.MaxStreaks)
	for i := opts.MaxStreaks - 1; i >= 0; i-- {
		f.free = append(f.free, i)
	}

	f.nebulae = make([]Nebula, opts.Nebulae)
	for i := range f.nebulae {
		f.nebulae[i] = Nebula{
			X:       f.rng.Float64() * f.W,
			Y:       f.rng.Float64() * f.H,
			Radius:  50 + f.rng.Float64()*150,
			Color:   glowPalette[f.rng.Intn(len(glowPalette))],
			Opacity: 0.05 + f.rng.Float64()*0.1,
		}
	}

	return f
}

// StarCount is the number of stars a w×h viewport gets under opts
func StarCount(w, h float64, opts Options) int {
	if opts.StarDensity <= 0 {
		return 0
	}
	n := int(w * h / opts.StarDensity)
	if n > opts.MaxStars {
		n = opts.MaxStars
	}
	if n < 0 {
		n = 0
	}
	return n
}

func (f *Field) newStar() Star {
	dir := 1.0
	if f.rng.Float64() > 0.5 {
		dir = -1
	}
	return Star{
		X:             f.rng.Float64() * f.W,
		Y:             f.rng.Float64() * f.H,
		Radius:        f.rng.Float64() * 1.5,
		Color:         starPalette[f.rng.Intn(len(starPalette))],
		DX:            (f.rng.Float64() - 0.5) * 0.05,
		DY:            (f.rng.Float64() - 0.5) * 0.05,
		Brightness:    f.rng.Float64(),
		MaxBrightness: 0.7 + f.rng.Float64()*0.3,
		TwinkleSpeed:  0.001 + f.rng.Float64()*0.005,
		twinkleDir:    dir,
	}
}

// Frame returns the number of steps taken since creation
func (f *Field) Frame() uint64 {
	return f.frame
}

// Stars returns the live stars. The slice aliases the arena.
func (f *Field) Stars() []Star {
	return f.stars
}

// Nebulae returns the nebulae. The slice aliases the arena.
func (f *Field) Nebulae() []Nebula {
	return f.nebulae
}

// StreakCapacity returns the size of the streak arena
func (f *Field) StreakCapacity() int {
	return len(f.streaks)
}

// LiveStreaks returns the number of streaks currently in flight
func (f *Field) LiveStreaks() int {
	return len(f.streaks) - len(f.free)
}

// EachStreak calls fn for every live streak in slot order
func (f *Field) EachStreak(fn func(ref StreakRef, s Streak)) {
	for i := range f.streaks {
		if f.streaks[i].live {
			fn(StreakRef{Slot: i, Gen: f.streaks[i].gen}, f.streaks[i])
		}
	}
}

// Streak looks up a streak by ref. It returns false for stale refs.
func (f *Field) Streak(ref StreakRef) (Streak, bool) {
	if ref.Slot < 0 || ref.Slot >= len(f.streaks) {
		return Streak{}, false
	}
	s := f.streaks[ref.Slot]
	if !s.live || s.gen != ref.Gen {
		return Streak{}, false
	}
	return s, true
}

// SpawnStreak launches a new streak at a random position. It returns false
// when the arena is full; the spawn is dropped.
func (f *Field) SpawnStreak() (StreakRef, bool) {
	if len(f.free) == 0 {
		return StreakRef{}, false
	}
	slot := f.free[len(f.free)-1]
	f.free = f.free[:len(f.free)-1]

	s := &f.streaks[slot]
	s.X = f.rng.Float64() * f.W
	s.Y = f.rng.Float64() * f.H
	s.Length = 100 + f.rng.Float64()*200
	s.Angle = f.rng.Float64() * math.Pi * 2
	s.Speed = 1 + f.rng.Float64()*3
	s.Width = 0.5 + f.rng.Float64()*2
	s.Color = glowPalette[f.rng.Intn(len(glowPalette))]
	s.Life = 0
	s.MaxLife = 100 + f.rng.Intn(101)
	s.live = true

	return StreakRef{Slot: slot, Gen: s.gen}, true
}

func (f *Field) release(slot int) {
	s := &f.streaks[slot]
	s.live = false
	s.gen++
	f.free = append(f.free, slot)
}

// Step advances the field by one frame
func (f *Field) Step() {
	f.frame++

	for i := range f.stars {
		s := &f.stars[i]
		s.X += s.DX
		s.Y += s.DY

		if s.X < 0 {
			s.X = f.W
		}
		if s.X > f.W {
			s.X = 0
		}
		if s.Y < 0 {
			s.Y = f.H
		}
		if s.Y > f.H {
			s.Y = 0
		}

		s.Brightness += s.TwinkleSpeed * s.twinkleDir
		if s.Brightness > s.MaxBrightness {
			s.twinkleDir = -1
		} else if s.Brightness < 0.1 {
			s.twinkleDir = 1
		}
	}

	if f.rng.Float64() < f.opts.StreakChance {
		f.SpawnStreak()
	}

	for i := range f.streaks {
		s := &f.streaks[i]
		if !s.live {
			continue
		}
		s.X += math.Cos(s.Angle) * s.Speed
		s.Y += math.Sin(s.Angle) * s.Speed
		s.Life++

		if s.Life > s.MaxLife ||
			s.X < -s.Length || s.X > f.W+s.Length ||
			s.Y < -s.Length || s.Y > f.H+s.Length {
			f.release(i)
		}
	}
}

// Resize re-measures the viewport. Stars and nebulae are rescaled into the
// new bounds; no arena is reallocated.
func (f *Field) Resize(w, h float64) {
	w = math.Max(w, 1)
	h = math.Max(h, 1)
	if w == f.W && h == f.H {
		return
	}
	sx, sy := w/f.W, h/f.H

	for i := range f.stars {
		f.stars[i].X *= sx
		f.stars[i].Y *= sy
	}
	for i := range f.nebulae {
		f.nebulae[i].X *= sx
		f.nebulae[i].Y *= sy
	}
	f.W, f.H = w, h
}
