package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", 0, "seed for spawn jitter and weather (0 = clock)")
	configPath := flag.String("config", "", "sandbox tuning YAML overlaid on the bundled sandbox.yaml")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "hot reload prefabs/materials.yaml and weather scripts")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(GameConfig{
		Seed:       *seed,
		ConfigPath: *configPath,
		Debug:      *debug,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatal(err)
	}

	spec := game.sandbox.Spec()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(spec.Viewport.Width), int(spec.Viewport.Height))
	ebiten.SetWindowTitle("weatherbox")

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
