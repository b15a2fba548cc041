package blockfall

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// Glyphs.
const (
	blockGlyph = '█'
	ghostGlyph = ':'
	emptyGlyph = '.'
)

// Side panel layout, in rows below the top of the well.
const (
	panelW        = 18
	panelTitleRow = 0
	panelNextRow  = 2
	panelHoldRow  = 6
	panelStatsRow = 11
	panelNoteRow  = 16
	panelHelpRow  = 19
	previewRows   = 2
)

var controlsHelp = []string{
	"←→ move  ↑ rotate",
	"↓ soft  space drop",
	"c hold   p pause",
	"n new    q quit",
}

// kindColors maps cell codes to piece colors.
var kindColors = [engine.KindCount + 1]core.Color{
	engine.KindI: core.ColorAqua,
	engine.KindJ: core.ColorBlueViolet,
	engine.KindL: core.ColorDarkGreen,
	engine.KindO: core.ColorGold,
	engine.KindS: core.ColorCrimson,
	engine.KindT: core.ColorBeige,
	engine.KindZ: core.ColorBurlywood,
}

// CellColor returns the display color for a cell code.
func CellColor(c engine.Cell) core.Color {
	if int(c) >= len(kindColors) {
		return core.ColorDefault
	}
	return kindColors[c]
}

func (g *Game) cellWidth() int {
	return core.Clamp(g.cfg.Render.CellWidth, 1, 2)
}

func (g *Game) visibleRows() int {
	return g.cfg.Board.Height - g.cfg.Board.HiddenRows
}

// wellSize returns the bordered well size in screen cells.
func (g *Game) wellSize() (int, int) {
	return g.cfg.Board.Width*g.cellWidth() + 2, g.visibleRows() + 2
}

// minSize returns the smallest screen that fits the well and panel.
func (g *Game) minSize() (int, int) {
	w, h := g.wellSize()
	return w + 2 + panelW, max(h, panelNoteRow+2)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	wellW, wellH := g.wellSize()
	totalW := wellW + 2 + panelW
	well := core.NewRect((dst.Width()-totalW)/2, (dst.Height()-wellH)/2, wellW, wellH)

	g.renderWell(dst, well)
	g.renderPanel(dst, well.Right()+2, well.Y)

	switch {
	case g.session.State() == engine.StateTerminal:
		lines := []string{"GAME OVER", fmt.Sprintf("Score %d", g.session.Stats().Score)}
		if g.NewBest() {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "", "r restart  b menu")
		renderOverlay(dst, well, lines, core.ColorBrightYellow)
	case g.paused:
		renderOverlay(dst, well, []string{"PAUSED", "", "p resume  b menu"}, core.ColorBrightWhite)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderWell draws the border, locked cells, ghost and active piece.
// Hidden rows are never drawn.
func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	dst.DrawBoxColored(well, core.ColorGray)

	hidden := g.cfg.Board.HiddenRows
	cw := g.cellWidth()
	grid := g.session.Grid()

	plot := func(x, y int, r rune, c core.Color) {
		if y < hidden || y >= grid.H || x < 0 || x >= grid.W {
			return
		}
		sx := well.X + 1 + x*cw
		sy := well.Y + 1 + y - hidden
		for i := range cw {
			glyph := r
			if r == emptyGlyph && i < cw-1 {
				glyph = ' '
			}
			dst.SetColored(sx+i, sy, glyph, c)
		}
	}

	for y := hidden; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			if c := grid.At(x, y); c != engine.Empty {
				plot(x, y, blockGlyph, CellColor(c))
			} else {
				plot(x, y, emptyGlyph, core.ColorGray)
			}
		}
	}

	active := g.session.Active()
	if g.cfg.Render.Ghost && active.Ghost != active.Anchor {
		for _, c := range active.Shape.Cells() {
			p := c.Add(active.Ghost)
			plot(p.X, p.Y, ghostGlyph, CellColor(active.Kind.Cell()))
		}
	}
	for _, p := range active.Cells() {
		plot(p.X, p.Y, blockGlyph, CellColor(active.Kind.Cell()))
	}
}

// renderPanel draws the previews, stats, notifications and controls.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y+panelTitleRow, strings.ToUpper(g.Title()), core.ColorBrightWhite)

	active := g.session.Active()
	g.renderPreview(dst, x, y+panelNextRow, "NEXT", active.NextShape, active.Next)

	held, shape, ok := g.session.Held()
	label := "HOLD"
	if g.session.HoldUsed() {
		label = "HOLD*"
	}
	if !ok {
		shape = engine.Shape{}
	}
	g.renderPreview(dst, x, y+panelHoldRow, label, shape, held)

	st := g.session.Stats()
	dst.DrawText(x, y+panelStatsRow, fmt.Sprintf("Score: %d", st.Score))
	dst.DrawText(x, y+panelStatsRow+1, fmt.Sprintf("Lines: %d", st.Lines))
	dst.DrawText(x, y+panelStatsRow+2, fmt.Sprintf("Level: %d", st.Level))
	dst.DrawTextColored(x, y+panelStatsRow+3, fmt.Sprintf("Best:  %d", max(g.best, st.Score)), core.ColorGray)

	for i, n := range g.notices {
		dst.DrawTextColored(x, y+panelNoteRow+i, n.text, core.ColorBrightYellow)
	}

	if y+panelHelpRow+len(controlsHelp) <= dst.Height() {
		for i, line := range controlsHelp {
			dst.DrawTextColored(x, y+panelHelpRow+i, line, core.ColorGray)
		}
	}
}

// renderPreview draws a labelled box with a shape centered inside.
func (g *Game) renderPreview(dst *core.Screen, x, y int, label string, shape engine.Shape, kind engine.Kind) {
	cw := g.cellWidth()
	box := core.NewRect(x, y, engine.ShapeSize*cw+2, previewRows+2)
	dst.DrawBoxColored(box, core.ColorGray)
	dst.DrawText(x+1, y, label)

	cells := shape.Cells()
	if len(cells) == 0 {
		return
	}
	minX, maxX, minY := cells[0].X, cells[0].X, cells[0].Y
	for _, c := range cells {
		minX, maxX, minY = min(minX, c.X), max(maxX, c.X), min(minY, c.Y)
	}
	offX := (engine.ShapeSize - (maxX - minX + 1)) * cw / 2
	for _, c := range cells {
		row := c.Y - minY
		if row >= previewRows {
			continue
		}
		for i := range cw {
			dst.SetColored(x+1+offX+(c.X-minX)*cw+i, y+1+row, blockGlyph, CellColor(kind.Cell()))
		}
	}
}

// renderOverlay draws a boxed message centered on r.
func renderOverlay(dst *core.Screen, r core.Rect, lines []string, color core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	box := r.Centered(w+4, len(lines)+2)
	box.X = core.Clamp(box.X, 0, max(dst.Width()-box.W, 0))

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, color)
	for i, l := range lines {
		lx := box.X + (box.W-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(lx, box.Y+1+i, l, color)
	}
}
