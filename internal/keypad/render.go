package keypad

import (
	"github.com/ellery/starcalc/internal/calc"
	"github.com/ellery/starcalc/internal/galaxy"
	"github.com/ellery/starcalc/internal/util"
	"github.com/mattn/go-runewidth"
	"github.com/micro-editor/tcell/v2"
)

// Layout constants
const (
	PanelWidth    = 39
	PanelHeight   = 19
	ContentWidth  = PanelWidth - 4
	DisplayHeight = 5
	ButtonWidth   = 8
	ButtonGap     = 1
)

var displayBg = tcell.Color234

// Render draws the galaxy, then the calculator panel, then any modal
func (k *Keypad) Render(screen tcell.Screen) {
	k.calculateLayout()

	k.drawBackground(screen)
	k.drawLogo(screen)
	k.drawPanel(screen)

	if k.Help.Active {
		k.Help.Render(screen, k.Theme)
	}
}

// calculateLayout centres the panel and places everything inside it
func (k *Keypad) calculateLayout() {
	x := (k.ScreenW - PanelWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (k.ScreenH - PanelHeight) / 2
	if k.ScreenH >= PanelHeight+LogoHeight+2 {
		// Leave room for the logo
		y = (k.ScreenH - PanelHeight + LogoHeight + 1) / 2
	}
	if y < 0 {
		y = 0
	}
	k.panelRegion = Region{X: x, Y: y, Width: PanelWidth, Height: PanelHeight}

	cx := x + 2
	label := k.toggleLabel()
	lw := util.StringWidth(label)
	k.toggleRegion = Region{X: cx + ContentWidth - lw, Y: y + 1, Width: lw, Height: 1}
	k.displayRegion = Region{X: cx, Y: y + 2, Width: ContentWidth, Height: DisplayHeight}

	k.buttonRegions = k.buttonRegions[:0]
	gridY := y + 3 + DisplayHeight + 2
	for i := range Buttons {
		row, col := i/Columns, i%Columns
		k.buttonRegions = append(k.buttonRegions, Region{
			X:      cx + col*(ButtonWidth+ButtonGap),
			Y:      gridY + row,
			Width:  ButtonWidth,
			Height: 1,
		})
	}
}

func (k *Keypad) toggleLabel() string {
	if k.ShowHistory {
		return "Hide History"
	}
	return "Show History"
}

func (k *Keypad) drawBackground(screen tcell.Screen) {
	if k.animator != nil {
		k.animator.Do(func(f *galaxy.Field) {
			k.painter.Paint(screen, f)
		})
		return
	}

	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < k.ScreenH; y++ {
		for x := 0; x < k.ScreenW; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (k *Keypad) drawLogo(screen tcell.Screen) {
	if k.ScreenH < PanelHeight+LogoHeight+2 {
		return
	}
	x := (k.ScreenW - LogoWidth) / 2
	y := k.panelRegion.Y - LogoHeight - 1
	for i, line := range Logo {
		col := 0
		for _, ch := range line {
			if ch != ' ' {
				_, _, st, _ := screen.GetContent(x+col, y+i)
				_, bg, _ := st.Decompose()
				screen.SetContent(x+col, y+i, ch, nil, LogoStyleForChar(ch, bg))
			}
			col++
		}
	}
}

func (k *Keypad) drawPanel(screen tcell.Screen) {
	p := k.panelRegion
	theme := k.Theme

	fillRegion(screen, p, theme.Panel())
	drawDoubleBox(screen, p, theme.Border())
	drawText(screen, p.X+(p.Width-util.StringWidth(Tagline))/2, p.Y, Tagline, theme.Title())

	drawText(screen, k.toggleRegion.X, k.toggleRegion.Y, k.toggleLabel(), theme.Toggle())

	fillRegion(screen, k.displayRegion, theme.Panel().Background(displayBg))
	if k.ShowHistory {
		k.drawHistory(screen)
	} else {
		k.drawDisplay(screen)
	}

	cx := p.X + 2
	infoY := k.displayRegion.Y + DisplayHeight
	if m := k.Calc.MemoryValue(); m != 0 {
		mem := "Memory: " + calc.NumberString(m)
		drawText(screen, cx, infoY, util.PadLeft(util.TailFit(mem, ContentWidth, "…"), ContentWidth), theme.Preview())
	}

	switch {
	case k.status != "" && k.statusErr:
		drawText(screen, cx, infoY+1, util.HeadFit(k.status, ContentWidth, "…"), theme.Error())
	case k.status != "":
		drawText(screen, cx, infoY+1, util.HeadFit(k.status, ContentWidth, "…"), theme.Dim())
	default:
		hint := "? help"
		drawText(screen, cx+ContentWidth-len(hint), infoY+1, hint, theme.Muted())
	}

	for x := p.X + 1; x < p.X+p.Width-1; x++ {
		screen.SetContent(x, infoY+2, '─', nil, theme.Border())
	}

	for i, b := range Buttons {
		r := k.buttonRegions[i]
		drawText(screen, r.X, r.Y, util.Center(b.Label, r.Width), theme.Button(b, i == k.Focus))
	}
}

// drawDisplay shows the preview line and the expression, right-aligned with
// the tail kept visible
func (k *Keypad) drawDisplay(screen tcell.Screen) {
	d := k.displayRegion
	bg := displayBg
	theme := k.Theme

	if k.Calc.IsError() {
		drawText(screen, d.X, d.Y+1, util.PadLeft(calc.ErrorText, d.Width), theme.Error().Background(bg))
	} else if preview := k.Calc.Preview(); preview != "" {
		drawText(screen, d.X, d.Y+1, util.PadLeft(util.TailFit(preview, d.Width, "…"), d.Width), theme.Preview().Background(bg))
	}

	expr := util.TailFit(k.Calc.Expression(), d.Width, "…")
	drawText(screen, d.X, d.Y+3, util.PadLeft(expr, d.Width), theme.Expression().Background(bg))
}

// drawHistory shows the history list, with the filter on top and the count
// at the bottom
func (k *Keypad) drawHistory(screen tcell.Screen) {
	d := k.displayRegion
	bg := displayBg
	theme := k.Theme
	h := k.History

	top := d.Y
	if h.Filtering || h.Filter != "" {
		filter := "/" + h.Filter
		if h.Filtering {
			filter += "▏"
		}
		drawText(screen, d.X, top, util.HeadFit(filter, d.Width, "…"), theme.Match().Background(bg))
		top++
	}
	listHeight := d.Y + d.Height - 1 - top

	rows := h.Rows()
	if len(rows) == 0 {
		msg := "No history yet"
		if h.Total() > 0 {
			msg = "No matches"
		}
		drawText(screen, d.X, top, util.PadLeft(msg, d.Width), theme.Muted().Background(bg))
	}

	start, end := h.Window(listHeight)
	selected := h.SelectedIndex()
	for i := start; i < end; i++ {
		row := rows[i]
		y := top + i - start

		style := theme.Dim().Background(bg)
		if i == selected {
			style = theme.Selected()
			fillRegion(screen, Region{X: d.X, Y: y, Width: d.Width, Height: 1}, style)
		}

		// Right-aligned like the display; long entries keep their result visible
		text := util.TailFit(row.Text, d.Width, "…")
		prefix := ""
		if text != row.Text {
			prefix = "…"
		}
		offset := len(row.Text) - (len(text) - len(prefix))
		x := d.X + d.Width - util.StringWidth(text)
		for bi, ch := range text {
			st := style
			if i != selected && bi >= len(prefix) && row.Matched[bi-len(prefix)+offset] {
				st = theme.Match().Background(bg)
			}
			screen.SetContent(x, y, ch, nil, st)
			x += runewidth.RuneWidth(ch)
		}
	}

	footer := h.Footer()
	drawText(screen, d.X, d.Y+d.Height-1, util.PadLeft(footer, d.Width), theme.Muted().Background(bg))
}

// historyRowAt maps a screen row inside the display to a history row index
func (k *Keypad) historyRowAt(y int) int {
	d := k.displayRegion
	top := d.Y
	if k.History.Filtering || k.History.Filter != "" {
		top++
	}
	listHeight := d.Y + d.Height - 1 - top
	start, end := k.History.Window(listHeight)
	i := start + y - top
	if y < top || i >= end {
		return -1
	}
	return i
}

// drawText draws a string at the given position, advancing by display width
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	w, h := screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, ch := range text {
		if x >= 0 && x < w {
			screen.SetContent(x, y, ch, nil, style)
		}
		x += runewidth.RuneWidth(ch)
	}
}

func fillRegion(screen tcell.Screen, r Region, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawDoubleBox draws a double-line border around r
func drawDoubleBox(screen tcell.Screen, r Region, style tcell.Style) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width-1, r.Y+r.Height-1

	screen.SetContent(x0, y0, '╔', nil, style)
	screen.SetContent(x1, y0, '╗', nil, style)
	screen.SetContent(x0, y1, '╚', nil, style)
	screen.SetContent(x1, y1, '╝', nil, style)
	for x := x0 + 1; x < x1; x++ {
		screen.SetContent(x, y0, '═', nil, style)
		screen.SetContent(x, y1, '═', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		screen.SetContent(x0, y, '║', nil, style)
		screen.SetContent(x1, y, '║', nil, style)
	}
}
