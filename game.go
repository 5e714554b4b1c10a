package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/CoolKrit/Ronin/arena"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/config"
	"github.com/CoolKrit/Ronin/input"
	"github.com/CoolKrit/Ronin/observability"
	"github.com/CoolKrit/Ronin/prefabs"
	"github.com/CoolKrit/Ronin/probe"
)

// GameOptions are the command-line toggles.
type GameOptions struct {
	Debug    bool
	Autoplay bool
}

type Game struct {
	cfg    config.Config
	opts   GameOptions
	log    *zap.Logger
	arena  *arena.Arena
	camera *Camera
	hud    *HUD
	menu   *Overlay

	keyboard *input.Keyboard
	watcher  *prefabs.Watcher
	paused   bool
}

func NewGame(cfg config.Config, log *zap.Logger, opts GameOptions) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:      cfg,
		opts:     opts,
		log:      log,
		camera:   NewCamera(cfg.Display.Width, cfg.Display.Height, cfg.Display.PixelsPerUnit),
		hud:      NewHUD(),
		keyboard: input.NewKeyboard(),
	}
	g.menu = NewOverlay(g, cfg.Display.Width, cfg.Display.Height)
	if err := g.load(); err != nil {
		return nil, err
	}
	if cfg.Simulation.Watch {
		w, err := prefabs.WatchDir(prefabs.Dir())
		if err != nil {
			log.Warn("prefab watch disabled", zap.String("dir", prefabs.Dir()), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a fresh arena. The current one is kept when loading fails.
func (g *Game) load() error {
	var in component.IntentSource = g.keyboard
	if g.opts.Autoplay {
		script, err := input.NewScript(g.cfg.Simulation.Script, g.observe, g.log)
		if err != nil {
			return err
		}
		in = script
	}
	a, err := arena.Load(g.cfg.Simulation.Level, arena.Options{
		Logger:     g.log,
		Input:      in,
		FixedDelta: g.cfg.Simulation.FixedDelta(),
	})
	if err != nil {
		return err
	}
	g.arena = a
	g.hud.Reset()
	g.camera.Snap(a.Player().Position())
	return nil
}

func (g *Game) observe() input.Observation {
	return g.arena.Observe()
}

func (g *Game) reload(reason string) {
	if err := g.load(); err != nil {
		g.log.Warn("arena reload failed", zap.String("reason", reason), zap.Error(err))
		g.hud.notice = "reload failed: " + err.Error()
		return
	}
	g.hud.notice = ""
	g.log.Info("arena reloaded", zap.String("reason", reason))
}

// pollWatcher drains pending prefab changes and reloads at most once.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := ""
drain:
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				break drain
			}
			changed = ch.Path
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			g.log.Error("prefab watcher", zap.Error(err))
		default:
			break drain
		}
	}
	if changed != "" {
		g.log.Info("prefab changed", zap.String("path", changed))
		g.reload("prefab changed")
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload("restart")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Debug = !g.opts.Debug
	}
	if g.menu.Sync(overlayTitle(g.paused, g.arena.Outcome())) {
		g.menu.Update()
		return nil
	}

	g.arena.Frame(g.cfg.Simulation.FixedDelta())
	for _, evt := range g.arena.Events() {
		observability.LogEvent(g.log, evt)
		g.hud.Push(evt)
	}
	g.camera.Update(g.arena.Player().Position())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, p := range g.arena.World().Platforms() {
		x, y, w, h := g.camera.RectToScreen(p)
		vector.FillRect(screen, x, y, w, h, colornames.Darkslategray, false)
		vector.StrokeRect(screen, x, y, w, h, 1, colornames.Slategray, false)
	}

	if g.opts.Debug {
		for _, b := range g.arena.Bounds() {
			for _, bound := range b {
				x, y := g.camera.ToScreen(bound.Position)
				vector.StrokeLine(screen, x, y-24, x, y, 1, colornames.Gold, false)
			}
		}
	}

	for _, e := range g.arena.Entries() {
		g.drawEntry(screen, e)
	}

	g.hud.Draw(screen, g.arena)
	g.menu.Draw(screen)
}

func (g *Game) drawEntry(screen *ebiten.Image, e arena.Entry) {
	a := e.Actor
	var clr color.Color = e.Color()
	if a.Dead() {
		clr = colornames.Dimgray
	}
	x, y, w, h := g.camera.RectToScreen(e.Body.Rect())
	vector.FillRect(screen, x, y, w, h, clr, false)
	if a.Dead() {
		return
	}

	cx, cy := g.camera.ToScreen(a.Position())
	dx := float32(a.Facing().Sign()) * w / 2
	vector.StrokeLine(screen, cx, cy, cx+dx, cy, 2, colornames.Black, false)

	if !g.opts.Debug && !a.Machine().Attacking() {
		return
	}
	cfg := a.Machine().Config()
	origin, angle := a.Machine().HitArea()
	box := probe.NewOBB(origin, cfg.HitBox.HalfExtents(), angle)
	hitColor := colornames.Orange
	if a.Machine().Attacking() && !a.Machine().Cooling() {
		hitColor = colornames.Red
	}
	g.strokePolygon(screen, box.Corners(), hitColor)
}

func (g *Game) strokePolygon(screen *ebiten.Image, pts [4]cp.Vector, clr color.Color) {
	for i := range pts {
		x0, y0 := g.camera.ToScreen(pts[i])
		x1, y1 := g.camera.ToScreen(pts[(i+1)%len(pts)])
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, false)
	}
}

// Close stops the prefab watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Display.Width), float64(g.cfg.Display.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
