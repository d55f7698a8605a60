// Package keypad is the calculator screen: a display, a history list and
// a 4-column button grid drawn over the animated galaxy.
package keypad

import (
	"context"
	"errors"
	"log"

	"github.com/ellery/starcalc/internal/calc"
	"github.com/ellery/starcalc/internal/config"
	"github.com/ellery/starcalc/internal/galaxy"
	"github.com/micro-editor/tcell/v2"
)

// Button is one key of the grid. Buttons either type a rune into the
// expression or run an action.
type Button struct {
	Label  string
	Rune   rune
	Action config.Action
}

// Columns is the width of the button grid
const Columns = 4

// Buttons in grid order, left to right and top to bottom
var Buttons = []Button{
	{Label: "MC", Action: config.ActionMemoryClear},
	{Label: "MR", Action: config.ActionMemoryRecall},
	{Label: "M+", Action: config.ActionMemoryAdd},
	{Label: "M-", Action: config.ActionMemorySubtract},

	{Label: "sin", Action: config.ActionSin},
	{Label: "cos", Action: config.ActionCos},
	{Label: "tan", Action: config.ActionTan},
	{Label: "log", Action: config.ActionLog},

	{Label: "ln", Action: config.ActionLn},
	{Label: "√", Action: config.ActionSqrt},
	{Label: "x²", Action: config.ActionSquare},
	{Label: "%", Rune: '%'},

	{Label: "C", Action: config.ActionClear},
	{Label: "⌫", Action: config.ActionDelete},
	{Label: "(", Rune: '('},
	{Label: ")", Rune: ')'},

	{Label: "7", Rune: '7'},
	{Label: "8", Rune: '8'},
	{Label: "9", Rune: '9'},
	{Label: "÷", Rune: '÷'},

	{Label: "4", Rune: '4'},
	{Label: "5", Rune: '5'},
	{Label: "6", Rune: '6'},
	{Label: "×", Rune: '×'},

	{Label: "1", Rune: '1'},
	{Label: "2", Rune: '2'},
	{Label: "3", Rune: '3'},
	{Label: "-", Rune: '-'},

	{Label: "0", Rune: '0'},
	{Label: ".", Rune: '.'},
	{Label: "=", Action: config.ActionEvaluate},
	{Label: "+", Rune: '+'},
}

// Region defines a rectangular screen area
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains checks if a point is within this region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Options configures a new Keypad
type Options struct {
	Settings  *config.Settings
	Clipboard Clipboard

	// NoGalaxy disables the background regardless of settings
	NoGalaxy bool
	// FPS overrides the configured frame rate when > 0
	FPS  int
	Seed int64

	// Redraw receives a value after every galaxy frame. It should be
	// buffered; a frame is dropped when it is full.
	Redraw chan struct{}
}

// Keypad is the calculator screen
type Keypad struct {
	// Screen reference
	Screen  tcell.Screen
	ScreenW int
	ScreenH int

	Calc      *calc.Controller
	Keys      *config.KeyMap
	Clipboard Clipboard
	Theme     Theme

	ShowHistory bool
	Focus       int // Index into Buttons, -1 when no button has focus
	History     *HistoryView
	Help        *HelpModal

	status    string
	statusErr bool

	// Background
	painter  *galaxy.CellPainter
	resizes  *galaxy.ResizeHub
	animator *galaxy.Animator
	ctx      context.Context
	galaxyOn bool
	noGalaxy bool
	fps      int
	seed     int64
	redraw   chan struct{}
	galaxyOf config.GalaxySettings

	// Layout regions (calculated during render)
	panelRegion   Region
	toggleRegion  Region
	displayRegion Region
	buttonRegions []Region

	// Button1 is reported on every motion while held
	mouseDown bool

	// OnExit is called when the user quits
	OnExit func()
}

// New creates the calculator screen. The galaxy isn't animated until Start.
func New(screen tcell.Screen, opts Options) *Keypad {
	w, h := screen.Size()

	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = NewMemoryClipboard()
	}

	k := &Keypad{
		Screen:    screen,
		ScreenW:   w,
		ScreenH:   h,
		Calc:      calc.NewController(),
		Clipboard: clip,
		Focus:     -1,
		History:   NewHistoryView(),
		Help:      NewHelpModal(),
		painter:   galaxy.NewCellPainter(),
		resizes:   galaxy.NewResizeHub(),
		noGalaxy:  opts.NoGalaxy,
		fps:       opts.FPS,
		seed:      opts.Seed,
		redraw:    opts.Redraw,
	}

	for _, e := range k.ApplySettings(settings) {
		log.Printf("STARCALC Keypad: %v", e)
	}
	k.ShowHistory = settings.Calculator.StartInHistory
	k.calculateLayout()

	return k
}

// ApplySettings installs the theme, key bindings and galaxy settings.
// Invalid binding overrides are returned and skipped.
func (k *Keypad) ApplySettings(s *config.Settings) []config.ValidationError {
	k.Theme = NewTheme(s.Appearance)

	keys, errs := config.NewKeyMap(s.Bindings)
	if keys != nil {
		k.Keys = keys
	}

	k.configureGalaxy(s.Galaxy)
	return errs
}

func (k *Keypad) configureGalaxy(g config.GalaxySettings) {
	fps := g.FPS
	if k.fps > 0 {
		fps = k.fps
	}
	enabled := g.Enabled && !k.noGalaxy

	if k.animator != nil && g == k.galaxyOf && enabled == k.galaxyOn {
		return
	}

	// Only the frame rate changed: keep the field
	running := k.animator != nil && k.animator.Running()
	if k.animator != nil && enabled && k.galaxyOn && sameField(g, k.galaxyOf) {
		k.animator.SetFPS(fps)
		k.galaxyOf = g
		return
	}

	if k.animator != nil {
		k.animator.Stop()
	}
	k.galaxyOf = g
	k.galaxyOn = enabled
	if !enabled {
		k.animator = nil
		return
	}

	w, h := k.painter.FieldSize(k.ScreenW, k.ScreenH)
	field := galaxy.NewField(w, h, galaxy.Options{
		StarDensity:  g.StarDensity,
		MaxStars:     g.MaxStars,
		MaxStreaks:   g.MaxStreaks,
		StreakChance: g.StreakChance,
		Nebulae:      g.Nebulae,
		Seed:         k.seed,
	})
	redraw := k.redraw
	k.animator = galaxy.NewAnimator(field, galaxy.AnimatorOptions{
		FPS: fps,
		Redraw: func() {
			if redraw == nil {
				return
			}
			select {
			case redraw <- struct{}{}:
			default:
			}
		},
		Resizes: k.resizes,
	})
	if running {
		k.animator.Start(k.ctx)
	}
}

func sameField(a, b config.GalaxySettings) bool {
	a.FPS, b.FPS = 0, 0
	return a == b
}

// Start animates the galaxy, if enabled
func (k *Keypad) Start(ctx context.Context) {
	k.ctx = ctx
	if k.animator != nil {
		k.animator.Start(ctx)
	}
}

// Stop halts the galaxy animation. It is safe to call more than once.
func (k *Keypad) Stop() {
	if k.animator != nil {
		k.animator.Stop()
	}
}

// GalaxyRunning returns true while the background is animating
func (k *Keypad) GalaxyRunning() bool {
	return k.animator != nil && k.animator.Running()
}

// Status returns the transient status line message
func (k *Keypad) Status() string {
	return k.status
}

func (k *Keypad) setStatus(msg string) {
	k.status = msg
	k.statusErr = false
}

func (k *Keypad) setError(msg string) {
	k.status = msg
	k.statusErr = true
}

// Press activates a button as if it had been clicked
func (k *Keypad) Press(b Button) {
	if b.Action != "" {
		k.runAction(b.Action)
		return
	}
	k.typeRune(b.Rune)
}

// typeRune sends a digit or operator to the calculator
func (k *Keypad) typeRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		k.Calc.AppendDigit(r)
		return true
	case r == 'x' || r == 'X':
		k.Calc.AppendOperator('*')
		return true
	}
	return k.Calc.AppendOperator(r) == nil
}

func (k *Keypad) runAction(a config.Action) {
	switch a {
	case config.ActionEvaluate:
		k.evaluate()
	case config.ActionDelete:
		k.Calc.DeleteLast()
	case config.ActionClear:
		k.Calc.Clear()

	case config.ActionSin, config.ActionCos, config.ActionTan, config.ActionLog,
		config.ActionLn, config.ActionSqrt, config.ActionSquare:
		if err := k.Calc.ApplyFunction(calc.Function(a)); err != nil {
			log.Printf("STARCALC Keypad: %s: %v", a, err)
		}

	case config.ActionMemoryAdd:
		k.memory(calc.MemoryAdd)
	case config.ActionMemorySubtract:
		k.memory(calc.MemorySubtract)
	case config.ActionMemoryRecall:
		k.memory(calc.MemoryRecall)
	case config.ActionMemoryClear:
		k.memory(calc.MemoryClear)

	case config.ActionToggleHistory:
		k.ToggleHistory()
	case config.ActionFilterHistory:
		if !k.ShowHistory {
			k.ToggleHistory()
		}
		k.History.StartFilter()
	case config.ActionCopy:
		k.copyExpression()
	case config.ActionPaste:
		k.paste()
	case config.ActionHelp:
		k.Help.Show(k.Keys, k.ScreenW, k.ScreenH)

	case config.ActionMoveUp:
		k.moveFocus(0, -1)
	case config.ActionMoveDown:
		k.moveFocus(0, 1)
	case config.ActionMoveLeft:
		k.moveFocus(-1, 0)
	case config.ActionMoveRight:
		k.moveFocus(1, 0)

	case config.ActionQuit:
		if k.OnExit != nil {
			k.OnExit()
		}
	}
}

func (k *Keypad) evaluate() {
	if err := k.Calc.Evaluate(); err != nil {
		log.Printf("STARCALC Keypad: evaluate: %v", err)
	}
}

func (k *Keypad) memory(op calc.MemoryOp) {
	err := k.Calc.ApplyMemory(op)
	switch {
	case err == nil:
	case errors.Is(err, calc.ErrInvalidOperand):
		k.setError(op.String() + ": not a number")
	default:
		k.setError(err.Error())
	}
}

// ToggleHistory switches between the display and the history list
func (k *Keypad) ToggleHistory() {
	k.ShowHistory = !k.ShowHistory
	if k.ShowHistory {
		k.History.Reset(k.Calc.History())
	} else {
		k.History.StopFilter()
	}
}

func (k *Keypad) copyExpression() {
	expr := k.Calc.Expression()
	if err := k.Clipboard.WriteAll(expr); err != nil {
		log.Printf("STARCALC Keypad: copy failed: %v", err)
		k.setError("Copy failed: " + err.Error())
		return
	}
	k.setStatus("Copied " + expr)
}

func (k *Keypad) paste() {
	text, err := k.Clipboard.ReadAll()
	if err != nil {
		log.Printf("STARCALC Keypad: paste failed: %v", err)
		k.setError("Paste failed: " + err.Error())
		return
	}
	if err := k.Calc.Paste(text); err != nil {
		k.setError("Pasted text is not an expression")
	}
}

// moveFocus moves the focused button, wrapping at the grid edges
func (k *Keypad) moveFocus(dx, dy int) {
	rows := len(Buttons) / Columns
	if k.Focus < 0 {
		// First move lands on "="
		k.Focus = len(Buttons) - 2
		return
	}
	col := (k.Focus%Columns + dx + Columns) % Columns
	row := (k.Focus/Columns + dy + rows) % rows
	k.Focus = row*Columns + col
}

// useSelectedHistory loads the selected history entry and returns to the display
func (k *Keypad) useSelectedHistory() bool {
	id := k.History.SelectedID()
	if id == "" {
		return false
	}
	if err := k.Calc.UseHistory(id); err != nil {
		k.setError(err.Error())
		return true
	}
	k.ShowHistory = false
	k.History.StopFilter()
	return true
}
