package keypad

import (
	"unicode/utf8"

	"github.com/ellery/starcalc/internal/config"
	"github.com/micro-editor/tcell/v2"
	"golang.org/x/text/width"
)

// HandleEvent processes all events for the calculator screen.
// Returns true if the screen needs a redraw.
func (k *Keypad) HandleEvent(event tcell.Event) bool {
	if k.Help.Active {
		if k.Help.HandleEvent(event) {
			return true
		}
		// Only quit gets past the modal
		if ev, ok := event.(*tcell.EventKey); ok {
			if a, found := k.Keys.Lookup(ev); found && a == config.ActionQuit {
				k.runAction(a)
			}
			return true
		}
	}

	switch ev := event.(type) {
	case *tcell.EventKey:
		consumed := k.handleKey(ev)
		k.syncHistory()
		return consumed
	case *tcell.EventMouse:
		consumed := k.handleMouse(ev)
		k.syncHistory()
		return consumed
	case *tcell.EventResize:
		k.ScreenW, k.ScreenH = ev.Size()
		k.resizes.Notify(k.painter.FieldSize(k.ScreenW, k.ScreenH))
		k.calculateLayout()
		return true
	}
	return false
}

// syncHistory refreshes the list after an evaluation added an entry
func (k *Keypad) syncHistory() {
	if k.ShowHistory && k.History.Total() != k.Calc.HistoryLen() {
		k.History.Reset(k.Calc.History())
	}
}

// narrowKey maps fullwidth digits and operators (from IME input) to ASCII
func narrowKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() != tcell.KeyRune || ev.Rune() < utf8.RuneSelf {
		return ev
	}
	r, _ := utf8.DecodeRuneInString(width.Narrow.String(string(ev.Rune())))
	if r == ev.Rune() {
		return ev
	}
	return tcell.NewEventKey(tcell.KeyRune, r, ev.Modifiers(), "")
}

// handleKey processes keyboard events
func (k *Keypad) handleKey(ev *tcell.EventKey) bool {
	k.setStatus("")
	ev = narrowKey(ev)

	action, bound := k.Keys.Lookup(ev)
	if bound && action == config.ActionQuit {
		k.runAction(action)
		return true
	}

	if k.ShowHistory && k.handleHistoryKey(ev) {
		return true
	}

	if ev.Key() == tcell.KeyEnter && k.Focus >= 0 {
		k.Press(Buttons[k.Focus])
		return true
	}

	if bound && !(action == config.ActionFilterHistory && !k.ShowHistory) {
		k.runAction(action)
		return true
	}

	if ev.Key() == tcell.KeyRune {
		k.typeRune(ev.Rune())
	}
	return true // Keypad consumes all keys
}

// handleHistoryKey handles navigation and filtering in the history list.
// Returns false for keys the list doesn't use.
func (k *Keypad) handleHistoryKey(ev *tcell.EventKey) bool {
	h := k.History

	if h.Filtering {
		switch ev.Key() {
		case tcell.KeyRune:
			h.TypeFilter(ev.Rune())
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			h.BackspaceFilter()
		case tcell.KeyEnter:
			// Keep the filter, stop typing into it
			h.Filtering = false
		case tcell.KeyEscape:
			h.StopFilter()
		case tcell.KeyUp:
			h.MoveSelection(-1)
		case tcell.KeyDown:
			h.MoveSelection(1)
		default:
			return false
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyUp:
		h.MoveSelection(-1)
	case tcell.KeyDown:
		h.MoveSelection(1)
	case tcell.KeyPgUp:
		h.MoveSelection(-(DisplayHeight - 1))
	case tcell.KeyPgDn:
		h.MoveSelection(DisplayHeight - 1)
	case tcell.KeyEnter:
		return k.useSelectedHistory()
	case tcell.KeyEscape:
		if h.Filter != "" {
			h.StopFilter()
		} else {
			k.ToggleHistory()
		}
	default:
		return false
	}
	return true
}

// handleMouse processes mouse events
func (k *Keypad) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()

	switch ev.Buttons() {
	case tcell.Button1:
		if k.mouseDown {
			return false
		}
		k.mouseDown = true
		k.setStatus("")
		return k.handleLeftClick(x, y)

	case tcell.ButtonNone:
		k.mouseDown = false
		return false

	case tcell.WheelUp:
		if k.ShowHistory {
			k.History.ScrollBy(-1)
			return true
		}
	case tcell.WheelDown:
		if k.ShowHistory {
			k.History.ScrollBy(1)
			return true
		}
	}
	return false
}

// handleLeftClick processes left mouse button clicks
func (k *Keypad) handleLeftClick(x, y int) bool {
	if k.toggleRegion.Contains(x, y) {
		k.ToggleHistory()
		return true
	}

	for i, r := range k.buttonRegions {
		if r.Contains(x, y) {
			k.Press(Buttons[i])
			return true
		}
	}

	if k.ShowHistory && k.displayRegion.Contains(x, y) {
		if i := k.historyRowAt(y); i >= 0 {
			k.History.selectIndex(i)
			k.useSelectedHistory()
			return true
		}
	}
	return false
}
