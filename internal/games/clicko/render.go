package clicko

import (
	"fmt"

	platformcore "github.com/vovakirdan/clicko/internal/core"
	"github.com/vovakirdan/clicko/internal/games/clicko/core"
)

// Each board cell is a 4x2 character block:
//
//	[ 7]   value, cursor brackets in columns 0 and 3
//	 ▬▬    heat bar, or the animation glyphs
//
// Short terminals get a compact 4x1 layout where animations draw over the value.
const (
	cellW        = 4
	cellH        = 2
	hudHeight    = 3
	footerHeight = 3
)

// boardLayout positions the board on the screen.
type boardLayout struct {
	board    platformcore.Rect // Cell area, without the frame
	cellW    int
	cellH    int
	tooSmall bool
}

func newBoardLayout(cols, rows, screenW, screenH int) boardLayout {
	for _, ch := range []int{cellH, 1} {
		w := cols * cellW
		h := rows * ch
		frameW, frameH := w+2, h+2
		if screenW < frameW || screenH < hudHeight+frameH+footerHeight {
			continue
		}

		x := (screenW - w) / 2
		y := hudHeight + 1 + (screenH-hudHeight-frameH-footerHeight)/2
		return boardLayout{
			board: platformcore.NewRect(x, y, w, h),
			cellW: cellW,
			cellH: ch,
		}
	}
	return boardLayout{tooSmall: true}
}

// cellAt maps a screen position to a board cell.
func (l boardLayout) cellAt(x, y int) (core.Coord, bool) {
	if l.tooSmall {
		return core.Coord{}, false
	}
	col, row, ok := l.board.CellAt(x, y, l.cellW, l.cellH)
	return core.C(col, row), ok
}

// origin returns the top-left screen position of cell c.
func (l boardLayout) origin(c core.Coord) (int, int) {
	return l.board.X + c.X*l.cellW, l.board.Y + c.Y*l.cellH
}

// arrows point along a direction.
var arrows = map[core.Dir]rune{
	core.DirUp:    '↑',
	core.DirDown:  '↓',
	core.DirLeft:  '←',
	core.DirRight: '→',
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	g.renderHUD(dst)

	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBoxWithColor(g.layout.board.Grow(1), platformcore.ColorGray)
	for y := 0; y < g.engine.Height(); y++ {
		for x := 0; x < g.engine.Width(); x++ {
			g.renderCell(dst, core.C(x, y))
		}
	}

	g.renderMessage(dst)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "GAME COMPLETE", fmt.Sprintf("All %d levels cleared! R: play again", g.cfg.Levels.Count))
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "Press P to continue")
	case g.levelDone:
		line := "Time " + g.timer.Format()
		if g.newBest {
			line += "  NEW BEST TIME!"
		}
		g.renderOverlay(dst, "LEVEL COMPLETE", line)
	}
}

// renderHUD draws the status bar, a separator and the controls hint.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" %s | Level: %d/%d | Time: %s | Best: %s | Moves: %d",
		g.variant.Title,
		g.level+1, g.cfg.Levels.Count,
		g.timer.Format(),
		FormatBest(g.bestTime, g.hasBest),
		g.moves,
	)
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	controls := " ←↑↓→: Move | Space/Click: Reduce | U: Undo"
	if p := g.cfg.Rules.UndoPenaltySeconds; p > 0 {
		controls += fmt.Sprintf(" (+%ds)", p)
	}
	controls += " | R: Restart | P: Pause | Q: Quit"
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
}

// renderCell draws one board cell with its animation and the cursor.
func (g *Game) renderCell(dst *platformcore.Screen, c core.Coord) {
	x, y := g.layout.origin(c)
	compact := g.layout.cellH < 2
	glyphY := y + 1
	if compact {
		glyphY = y
	}

	v := g.engine.Value(c)
	top := g.engine.MaxCellValue()
	color := platformcore.Heat(v, top)

	if v == 0 {
		dst.SetWithColor(x+2, y, '·', platformcore.ColorGray)
	} else {
		dst.DrawTextWithColor(x+1, y, fmt.Sprintf("%2d", v), color)
		if !compact {
			fill := (v*2 + top - 1) / top
			for i := 0; i < fill; i++ {
				dst.SetWithColor(x+1+i, y+1, '▬', color)
			}
		}
	}

	if an, ok := g.anim.At(c); ok {
		switch an.Kind {
		case core.AnimReduce:
			glyph := arrows[an.Dir]
			dst.SetWithColor(x+1, glyphY, glyph, platformcore.ColorBrightYellow)
			dst.SetWithColor(x+2, glyphY, glyph, platformcore.ColorBrightYellow)
		case core.AnimReject:
			dst.SetWithColor(x+1, glyphY, 'x', platformcore.ColorBrightRed)
			dst.SetWithColor(x+2, glyphY, 'x', platformcore.ColorBrightRed)
		}
	}

	if c == g.cursor && !g.levelDone && !g.gameOver {
		cursorColor := platformcore.ColorBrightWhite
		if !g.engine.CanReduce(c) {
			cursorColor = platformcore.ColorGray
		}
		dst.SetWithColor(x, y, '[', cursorColor)
		dst.SetWithColor(x+3, y, ']', cursorColor)
	}
}

// renderMessage draws the lockout warning or the current hint under the board.
func (g *Game) renderMessage(dst *platformcore.Screen) {
	y := g.layout.board.Bottom() + 1
	switch {
	case g.locked:
		dst.DrawTextCenteredWithColor(y, "NO MORE MOVES - undo (u) or restart (r)", platformcore.ColorOrange)
	case g.message.text != "":
		dst.DrawTextCenteredWithColor(y, g.message.text, g.message.color)
	}
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := platformcore.CenteredRect(maxLen+4, 5, dst.Width(), dst.Height())
	dst.DrawRect(box, ' ')
	dst.DrawBoxWithColor(box, platformcore.ColorBrightWhite)

	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorWhite)
}
