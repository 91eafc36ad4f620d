package ui

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/gbheader/internal/cart"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenW = 160
	screenH = 144

	// boot ROM logo position
	logoX = (screenW - cart.LogoWidth) / 2
	logoY = 64

	maxChars = screenW / 6 // debug font is 6px wide
)

var background = color.RGBA{0xE0, 0xF8, 0xD0, 0xFF}

type App struct {
	cfg    Config
	h      *cart.Header
	report cart.Report
	logo   *ebiten.Image
	offY   int // current logo scroll position
}

func NewApp(cfg Config, h *cart.Header) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	a := &App{
		cfg:    cfg,
		h:      h,
		report: h.Validate(),
		logo:   ebiten.NewImageFromImage(cart.LogoImage(h.Logo, 1)),
	}
	a.restartScroll()
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) restartScroll() {
	if a.cfg.Scroll {
		a.offY = -cart.LogoHeight
	} else {
		a.offY = logoY
	}
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	// Replay the scroll (Space)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.restartScroll()
	}
	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}
	if a.offY < logoY {
		a.offY++
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(logoX, float64(a.offY))
	screen.DrawImage(a.logo, op)

	ebitenutil.DebugPrintAt(screen, truncate(a.h.Title, maxChars), 4, 4)
	ebitenutil.DebugPrintAt(screen, truncate(a.h.Licensee, maxChars), 4, 20)
	if a.offY < logoY {
		return
	}
	for i, s := range a.statusLines() {
		ebitenutil.DebugPrintAt(screen, truncate(s, maxChars), 4, 80+i*16)
	}
}

func (a *App) statusLines() []string {
	mark := func(err error) string {
		if err != nil {
			return "BAD"
		}
		return "OK"
	}
	return []string{
		"Logo:   " + mark(a.report.Logo),
		fmt.Sprintf("Header: %s (%02X)", mark(a.report.HeaderChecksum), a.h.HeaderChecksum),
		fmt.Sprintf("Global: %s (%04X)", mark(a.report.GlobalChecksum), a.h.GlobalChecksum),
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return screenW, screenH }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}

// saveScreenshot writes the logo bitmap, scaled like the window, to a PNG.
func (a *App) saveScreenshot() error {
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("logo_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, cart.LogoImage(a.h.Logo, a.cfg.Scale))
}
