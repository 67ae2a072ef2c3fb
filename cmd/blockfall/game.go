package main

import (
	"log"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/hotkey"
	"github.com/plus3/blockfall/loop"
)

// Game implements ebiten.Game. While closed it only watches for the
// trigger; while open it drives the engine once per update.
type Game struct {
	driver   *loop.Driver
	input    *InputSystem
	trigger  hotkey.Trigger
	renderer *Renderer
	imgui    *ebitenbackend.EbitenBackend

	open  bool
	keys  []ebiten.Key
	chars []rune
}

// Open resets the engine and starts the tick source.
func (g *Game) Open() {
	if g.open {
		return
	}
	g.open = true
	g.driver.Engine().Reset()
	log.Printf("[blockfall] Game opened")
}

// Close stops the tick source. Engine state is kept until the next Open.
func (g *Game) Close() {
	if !g.open {
		return
	}
	g.open = false
	if seq, ok := g.trigger.(*hotkey.Sequence); ok {
		seq.Reset()
	}
	snap := g.driver.Engine().Snapshot()
	log.Printf("[blockfall] Game closed (score %d, lines %d, level %d)", snap.Score, snap.Lines, snap.Level)
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	mods := currentModifiers()

	if !g.open {
		if g.triggered(mods) {
			g.Open()
		}
		return nil
	}

	for _, k := range g.keys {
		if k == ebiten.KeyEscape {
			g.Close()
			return nil
		}
	}

	g.input.Pressed = append(g.input.Pressed[:0], g.keys...)
	g.input.Repeated = g.input.Repeated[:0]
	for _, k := range repeatKeys {
		if repeatFires(inpututil.KeyPressDuration(k), repeatDelay, repeatRate) {
			g.input.Repeated = append(g.input.Repeated, k)
		}
	}

	g.driver.Once(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) triggered(mods hotkey.Event) bool {
	for _, k := range g.keys {
		if g.trigger.Observe(keyEvent(k, mods)) {
			return true
		}
	}
	for _, r := range g.chars {
		if g.trigger.Observe(hotkey.Event{Key: string(r)}) {
			return true
		}
	}
	return false
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.open {
		g.renderer.DrawGame(screen, g.driver.Engine().Snapshot())
	} else {
		g.renderer.DrawClosed(screen, g.trigger.String())
	}

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
