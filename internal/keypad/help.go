package keypad

import (
	"strings"

	"github.com/ellery/starcalc/internal/config"
	"github.com/ellery/starcalc/internal/util"
	"github.com/micro-editor/tcell/v2"
)

const (
	helpWidth    = 58
	helpKeyWidth = 16
)

// helpLine is one row of the help body: a section title or a binding
type helpLine struct {
	section string
	keys    string
	help    string
}

// HelpModal lists the key bindings
type HelpModal struct {
	Active  bool
	ScreenW int
	ScreenH int
	Scroll  int

	lines []helpLine
}

// NewHelpModal creates a hidden help modal
func NewHelpModal() *HelpModal {
	return &HelpModal{}
}

// Show builds the binding table from keys and opens the modal
func (m *HelpModal) Show(keys *config.KeyMap, screenW, screenH int) {
	m.lines = nil
	if keys != nil {
		for _, s := range keys.Sections() {
			if len(m.lines) > 0 {
				m.lines = append(m.lines, helpLine{})
			}
			m.lines = append(m.lines, helpLine{section: s.Section})
			for _, b := range s.Bindings {
				ks := "-"
				if len(b.Keys) > 0 {
					ks = strings.Join(b.Keys, " / ")
				}
				m.lines = append(m.lines, helpLine{keys: ks, help: b.Help})
			}
		}
	}

	m.Active = true
	m.Scroll = 0
	m.ScreenW = screenW
	m.ScreenH = screenH
}

// Hide closes the modal
func (m *HelpModal) Hide() {
	m.Active = false
}

// Lines returns the number of body lines
func (m *HelpModal) Lines() int {
	return len(m.lines)
}

func (m *HelpModal) bodyHeight() int {
	h := m.ScreenH - 8
	if h > len(m.lines) {
		h = len(m.lines)
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *HelpModal) scrollBy(delta int) {
	m.Scroll += delta
	if limit := len(m.lines) - m.bodyHeight(); m.Scroll > limit {
		m.Scroll = limit
	}
	if m.Scroll < 0 {
		m.Scroll = 0
	}
}

// HandleEvent processes events while the modal is open.
// Returns true if the event was consumed.
func (m *HelpModal) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyF1:
			m.Hide()
			return true
		case tcell.KeyUp:
			m.scrollBy(-1)
			return true
		case tcell.KeyDown:
			m.scrollBy(1)
			return true
		case tcell.KeyPgUp:
			m.scrollBy(-m.bodyHeight())
			return true
		case tcell.KeyPgDn:
			m.scrollBy(m.bodyHeight())
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case '?', 'q':
				m.Hide()
			case 'k':
				m.scrollBy(-1)
			case 'j':
				m.scrollBy(1)
			}
			return true
		}
		// Let Ctrl+Q and friends through
		return false

	case *tcell.EventMouse:
		switch ev.Buttons() {
		case tcell.WheelUp:
			m.scrollBy(-1)
		case tcell.WheelDown:
			m.scrollBy(1)
		}
		return true

	case *tcell.EventResize:
		m.ScreenW, m.ScreenH = ev.Size()
		m.scrollBy(0)
		return false
	}
	return false
}

// Render draws the modal centred on the screen
func (m *HelpModal) Render(screen tcell.Screen, theme Theme) {
	if !m.Active {
		return
	}

	boxWidth := helpWidth
	if boxWidth > m.ScreenW-2 {
		boxWidth = m.ScreenW - 2
	}
	body := m.bodyHeight()
	boxHeight := body + 6

	startX := (m.ScreenW - boxWidth) / 2
	startY := (m.ScreenH - boxHeight) / 2

	borderStyle := theme.Border()
	bgStyle := theme.Panel()
	sectionStyle := tcell.StyleDefault.Foreground(ColorCyan).Background(theme.Background).Bold(true)
	keyStyle := tcell.StyleDefault.Foreground(ColorYellow).Background(theme.Background).Bold(true)

	for y := startY; y < startY+boxHeight; y++ {
		for x := startX; x < startX+boxWidth; x++ {
			screen.SetContent(x, y, ' ', nil, bgStyle)
		}
	}
	drawDoubleBox(screen, Region{X: startX, Y: startY, Width: boxWidth, Height: boxHeight}, borderStyle)

	title := "Key Bindings"
	drawText(screen, startX+(boxWidth-len(title))/2, startY+1, title, theme.Title())
	for x := startX + 1; x < startX+boxWidth-1; x++ {
		screen.SetContent(x, startY+2, '─', nil, borderStyle)
	}

	contentX := startX + 3
	inner := boxWidth - 6
	for i := 0; i < body && m.Scroll+i < len(m.lines); i++ {
		line := m.lines[m.Scroll+i]
		y := startY + 3 + i
		if line.section != "" {
			drawText(screen, contentX, y, line.section, sectionStyle)
			continue
		}
		if line.keys == "" {
			continue
		}
		keys := util.HeadFit(line.keys, helpKeyWidth, "…")
		drawText(screen, contentX+helpKeyWidth-util.StringWidth(keys), y, keys, keyStyle)
		drawText(screen, contentX+helpKeyWidth+2, y, util.HeadFit(line.help, inner-helpKeyWidth-2, "…"), theme.Dim())
	}

	hint := "[Esc] Close"
	if len(m.lines) > body {
		hint = "[↑↓] Scroll  [Esc] Close"
	}
	drawText(screen, startX+(boxWidth-util.StringWidth(hint))/2, startY+boxHeight-2, hint, theme.Muted())
}
