package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/ecs/render"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
	"github.com/milk9111/weatherbox/sandbox"
	"golang.design/x/clipboard"
)

const markerSize = 18

var backgroundColor = color.RGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}

type GameConfig struct {
	Seed       int64
	ConfigPath string
	Debug      bool
	Watch      bool
}

// Game adapts the sandbox to ebiten: pointer input spawns, the HUD picks
// materials and weather, and every Update advances one tick.
type Game struct {
	sandbox *sandbox.Sandbox
	markers *render.MarkerLayer
	hud     *HUD
	watcher *prefabs.Watcher

	selected      material.ID
	inputAttached bool
	debug         bool
	clipboard     bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	spec, err := loadSandboxSpec(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	reg, err := material.Load()
	if err != nil {
		return nil, err
	}

	markers := render.NewMarkerLayer(markerSize)
	sb, err := sandbox.New(spec, reg, markers, sandbox.WithSeed(cfg.Seed))
	if err != nil {
		return nil, err
	}

	g := &Game{
		sandbox:       sb,
		markers:       markers,
		selected:      material.Rubber,
		inputAttached: true,
		debug:         cfg.Debug,
	}
	g.hud = NewHUD(reg.Spawnable(), sb.Dispatcher().Kinds(), g.selectMaterial, sb.Post)
	g.hud.Select(g.selected)

	if err := clipboard.Init(); err != nil {
		log.Printf("Game: clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts/weather")
		if err != nil {
			log.Printf("Game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadSandboxSpec(path string) (*prefabs.SandboxSpec, error) {
	if path == "" {
		return prefabs.LoadSandboxSpec()
	}
	return prefabs.LoadSandboxSpecFile(path)
}

func (g *Game) selectMaterial(id material.ID) {
	g.selected = id
	g.hud.Select(id)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}

	g.drainWatcher()
	g.hud.UI.Update()
	g.handleInput()
	g.sandbox.Tick()
	return nil
}

func (g *Game) handleInput() {
	if !g.inputAttached || g.sandbox.Stopped() {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawnAt(x, y)
	}

	// Only single-finger taps spawn; multi-touch gestures are ignored.
	touches := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touches) == 1 && len(ebiten.AppendTouchIDs(nil)) == 1 {
		x, y := ebiten.TouchPosition(touches[0])
		g.spawnAt(x, y)
	}
}

func (g *Game) spawnAt(x, y int) {
	if y < common.HUDHeight {
		return
	}
	g.sandbox.Spawn(cp.Vector{X: float64(x), Y: float64(y)}, g.selected)
}

// copySnapshot puts the sandbox summary on the system clipboard as YAML.
func (g *Game) copySnapshot() {
	data, err := g.sandbox.Snapshot().YAML()
	if err != nil {
		log.Printf("Game: %v", err)
		return
	}
	if !g.clipboard {
		log.Printf("Game: snapshot\n%s", data)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("Game: snapshot copied to clipboard")
}

// drainWatcher applies file changes on the update goroutine.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: watcher error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case prefabs.IsMaterialsFile(name):
		if err := g.sandbox.Registry().Reload(); err != nil {
			log.Printf("Game: keeping previous materials: %v", err)
			return
		}
		log.Printf("Game: reloaded %s", name)
	default:
		if lib := g.sandbox.Dispatcher().Scripts(); lib != nil {
			lib.Reload()
			log.Printf("Game: reloaded weather scripts after %s changed", name)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	render.DrawBodies(screen, g.sandbox.World(), g.sandbox.Registry())
	g.markers.Draw(screen)
	if g.debug {
		render.DrawPhysicsDebug(g.sandbox.Space(), screen)
		stats := g.sandbox.Stats()
		render.DrawDebugStats(screen, render.DebugStats{
			Tick:      stats.Tick,
			Live:      stats.Live,
			Markers:   stats.Markers,
			MaxBodies: g.sandbox.Spec().MaxBodies,
			Saturated: stats.Saturated,
			Shattered: stats.Effects.Shattered,
			Pairs:     stats.Effects.Pairs,
			Culled:    stats.Culled,
			Selected:  fmt.Sprint(g.selected),
		}, 10, common.HUDHeight+8)
	}
	g.hud.UI.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	spec := g.sandbox.Spec()
	return spec.Viewport.Width, spec.Viewport.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close tears the sandbox down and detaches input and the file watcher.
func (g *Game) Close() {
	g.sandbox.Teardown(func() {
		g.inputAttached = false
		if g.watcher != nil {
			if err := g.watcher.Close(); err != nil {
				log.Printf("Game: close watcher: %v", err)
			}
			g.watcher = nil
		}
	})
}
