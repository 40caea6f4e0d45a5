package zombies

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
)

const (
	hudRows    = 1
	minScreenW = 24
	minScreenH = 8
	barWidth   = 10
)

// arenaViewport fits the arena inside a border below the HUD row.
func arenaViewport(cfg config.ZombiesConfig, screenW, screenH int) core.Viewport {
	return core.NewViewport(cfg.Arena.Width, cfg.Arena.Height, screenW-2, screenH-hudRows-2, 1, hudRows+1)
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.match == nil {
		return
	}
	snap := g.match.Snapshot()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	g.view = arenaViewport(g.cfg, dst.Width(), dst.Height())
	view := g.view
	view.OffsetX += g.effects.ShakeOffset(g.clockMs)

	g.renderHUD(dst, snap)
	dst.DrawBox(core.NewRect(view.OffsetX-1, view.OffsetY-1, view.Cols+2, view.Rows+2), core.ColorGray)

	g.renderDecals(dst, view, DecalBlood)
	for _, e := range snap.Enemies {
		fillClipped(dst, view, view.RectFor(e.Pos, e.Size), 'Z', enemyColor(e.Health))
	}
	fillClipped(dst, view, view.RectFor(snap.Avatar.Pos, snap.Avatar.Size), '@', core.ColorCyan)
	g.renderFacing(dst, view, snap.Avatar)
	for _, p := range snap.Projectiles {
		x, y := view.ToCell(p.Pos)
		if view.Bounds().Contains(x, y) {
			dst.SetColor(x, y, '•', core.ColorBrightYellow)
		}
	}
	g.renderDecals(dst, view, DecalMuzzle)

	// Hosts reset straight into a running match; the menu is the start screen.
	switch snap.Phase {
	case PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to continue")
	case PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Final score: %d", snap.FinalScore))
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	x := 1
	score := fmt.Sprintf("Score: %d", snap.HUD.Score)
	dst.DrawTextColor(x, 0, score, core.ColorBrightWhite)
	x += len(score) + 2

	dst.DrawText(x, 0, "HP ")
	x += 3
	filled := int(math.Round(snap.HUD.HealthFraction * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	dst.DrawTextColor(x, 0, bar, healthColor(snap.HUD.HealthFraction))
	x += barWidth + 2

	ammoColor := core.ColorWhite
	if snap.HUD.Reloading {
		ammoColor = core.ColorYellow
	}
	dst.DrawTextColor(x, 0, "Ammo: "+snap.HUD.Ammo, ammoColor)

	if preset := string(g.cfg.Preset); preset != "" {
		dst.DrawTextColor(dst.Width()-len(preset)-1, 0, preset, core.ColorDarkGray)
	}
}

func (g *Game) renderFacing(dst *core.Screen, view core.Viewport, avatar Pose) {
	reach := max(avatar.Size.X, avatar.Size.Y)
	tip := avatar.Pos.Add(avatar.Size.Scale(0.5)).Add(core.FromAngle(avatar.Facing).Scale(reach))
	x, y := view.ToCell(tip)
	if !view.Bounds().Contains(x, y) || dst.Get(x, y) == '@' {
		return
	}
	dst.SetColor(x, y, facingGlyph(avatar.Facing), core.ColorBrightYellow)
}

func (g *Game) renderDecals(dst *core.Screen, view core.Viewport, kind DecalKind) {
	for _, d := range g.effects.Decals() {
		if d.Kind != kind {
			continue
		}
		x, y := view.ToCell(d.At)
		if !view.Bounds().Contains(x, y) {
			continue
		}
		switch kind {
		case DecalBlood:
			glyph := '*'
			if d.Progress(g.clockMs) > 0.5 {
				glyph = '.'
			}
			dst.SetColor(x, y, glyph, core.ColorBlood)
		case DecalMuzzle:
			dst.SetColor(x, y, '✶', core.ColorBrightWhite)
		}
	}
}

// drawCenteredMessage draws a centered box with a title and subtitle.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// fillClipped fills the part of r that lies inside the viewport.
func fillClipped(dst *core.Screen, view core.Viewport, r core.Rect, glyph rune, c core.Color) {
	b := view.Bounds()
	x0, y0 := max(r.X, b.X), max(r.Y, b.Y)
	x1, y1 := min(r.Right(), b.Right()), min(r.Bottom(), b.Bottom())
	if x0 >= x1 || y0 >= y1 {
		return
	}
	dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), glyph, c)
}

func enemyColor(health float64) core.Color {
	switch {
	case health > 0.66:
		return core.ColorGreen
	case health > 0.33:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

func healthColor(frac float64) core.Color {
	switch {
	case frac > 0.5:
		return core.ColorBrightGreen
	case frac > 0.25:
		return core.ColorYellow
	default:
		return core.ColorBrightRed
	}
}

var facingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// facingGlyph picks the arrow closest to the angle. Screen y grows downward.
func facingGlyph(angle float64) rune {
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return facingGlyphs[octant]
}
