package main

import (
	"flag"
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/hotkey"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

const (
	windowTitle   = "Blockfall"
	windowWidth   = 560
	windowHeight  = 720
	historyFrames = 120
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML rules file. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Seed for the piece randomizer. 0 picks a random seed.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspector windows.")
	triggerSpec := flag.String("trigger", "combo:Ctrl+Shift+T", `Shortcut that opens the game: "combo:<keys>" or "sequence:<word>".`)
	startOpen := flag.Bool("open", false, "Start with the game already open.")
	flag.Parse()

	cfg := tetris.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = tetris.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("[blockfall] Failed to load config: %v", err)
		}
		log.Printf("[blockfall] Loaded rules from %s (%dx%d)", *configPath, cfg.Width, cfg.Height)
	}

	trigger, err := hotkey.ParseTrigger(*triggerSpec)
	if err != nil {
		log.Fatalf("[blockfall] Invalid trigger: %v", err)
	}

	var opts []tetris.Option
	if *seed != 0 {
		opts = append(opts, tetris.WithSeed(*seed))
	}
	engine, err := tetris.New(cfg, opts...)
	if err != nil {
		log.Fatalf("[blockfall] Failed to create engine: %v", err)
	}

	input := &InputSystem{Keys: DefaultKeyTable()}

	driver := loop.NewDriver(engine)
	driver.Register(input)
	driver.Register(&loop.GravitySystem{})
	driver.Register(&loop.StatusWatcher{Logger: log.Default()})

	game := &Game{
		driver:   driver,
		input:    input,
		trigger:  trigger,
		renderer: NewRenderer(),
	}

	if *debug {
		backend := ebitenbackend.NewEbitenBackend()
		backend.CreateWindow(windowTitle+" (debug)", windowWidth*2, windowHeight)
		imgui.CurrentIO().SetIniFilename("")

		overlay := debugui.NewSystem(driver, historyFrames)
		driver.Register(overlay)
		input.Blocked = func() bool { return overlay.Input.WantCaptureKeyboard }
		game.imgui = backend
	} else {
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if *startOpen {
		game.Open()
	} else {
		log.Printf("[blockfall] Waiting for trigger: %s", trigger)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("[blockfall] %v", err)
	}
}
