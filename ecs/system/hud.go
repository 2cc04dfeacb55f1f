package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/cubespawner/spawn"
	"golang.org/x/image/font/basicfont"
)

const (
	hudMargin      = 10
	hudLineSpacing = 16
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// HUDLines renders the run status shown in the corner of the screen.
func HUDLines(c *spawn.Controller, bodies int) []string {
	if c == nil {
		return nil
	}
	cfg := c.Config()
	s := c.Session()

	progress := fmt.Sprintf("spawned: %d/%d", s.Spawned, cfg.TargetCount)
	if cfg.Infinite {
		progress = "spawned: unlimited"
	}
	lines := []string{
		"mode: " + c.Mode().String(),
		progress,
		fmt.Sprintf("live: %d  bodies: %d", len(s.Live), bodies),
		"run: " + s.RunID.String()[:8],
	}
	if c.Mode() == spawn.ModeExhausted || c.Mode() == spawn.ModeUnlimited {
		key := cfg.ResetKey
		if key == "" {
			key = "R"
		}
		lines = append(lines, fmt.Sprintf("press %s to reset", key))
	}
	return lines
}

func DrawHUD(screen *ebiten.Image, lines []string) {
	if screen == nil || len(lines) == 0 {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(hudMargin, hudMargin)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = hudLineSpacing
	ebtext.Draw(screen, strings.Join(lines, "\n"), hudFace, op)
}
