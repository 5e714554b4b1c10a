// Package arena assembles a level into a running scene: physics, actors,
// their animators and the combat event log, stepped one frame at a time.
package arena

import (
	"fmt"
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/actor"
	"github.com/CoolKrit/Ronin/combat"
	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/input"
	"github.com/CoolKrit/Ronin/physics"
	"github.com/CoolKrit/Ronin/prefabs"
	"github.com/CoolKrit/Ronin/probe"
)

// Outcome summarizes the scene.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCleared
	OutcomePlayerDown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomePlayerDown:
		return "player_down"
	default:
		return "running"
	}
}

// Options configure a scene.
type Options struct {
	Logger *zap.Logger
	// Input drives the player. Nil means the player idles.
	Input component.IntentSource
	// FixedDelta is the physics step. Defaults to common.FixedDelta.
	FixedDelta float64
}

// Entry is one spawned actor with its body and prefab.
type Entry struct {
	Actor *actor.Actor
	Body  *physics.Body
	Spec  prefabs.ActorSpec
}

// Color is the prefab's draw color, or white.
func (e Entry) Color() color.Color {
	if e.Spec.Color == nil || e.Spec.Color.Color == nil {
		return color.White
	}
	return e.Spec.Color.Color
}

// Arena is a running level.
type Arena struct {
	level   prefabs.LevelSpec
	world   *physics.World
	probe   *probe.Probe
	entries []Entry
	player  *actor.Actor
	bounds  [][2]*combat.Bound
	events  EventLog
	fixed   float64
	tick    uint64
	log     *zap.Logger
}

// Load reads a level and the prefabs it references, then builds the scene.
func Load(levelName string, opts Options) (*Arena, error) {
	level, err := prefabs.LoadLevel(levelName)
	if err != nil {
		return nil, err
	}
	specs := make(map[string]prefabs.ActorSpec)
	names := []string{level.Player.Prefab}
	for _, e := range level.Enemies {
		names = append(names, e.Prefab)
	}
	for _, name := range names {
		if _, ok := specs[name]; ok {
			continue
		}
		spec, err := prefabs.LoadActor(name)
		if err != nil {
			return nil, err
		}
		specs[name] = spec
	}
	return New(level, specs, opts)
}

// New builds a scene from an already-loaded level and its prefabs.
func New(level prefabs.LevelSpec, specs map[string]prefabs.ActorSpec, opts Options) (*Arena, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fixed := opts.FixedDelta
	if fixed <= 0 {
		fixed = common.FixedDelta
	}
	gravity := level.Gravity
	if gravity == 0 {
		gravity = common.Gravity
	}

	a := &Arena{
		level: level,
		fixed: fixed,
		log:   log.With(zap.String("level", level.Name)),
	}
	a.world = physics.NewWorld(cp.Vector{Y: gravity}, physics.WithLogger(a.log))
	a.probe = probe.New(a.world)
	for _, p := range level.Platforms {
		a.world.AddPlatform(p.Rect())
	}

	emitter := &component.CombatEventEmitter{}
	emitter.Subscribe(func(evt component.CombatEvent) {
		evt.Tick = a.tick
		a.events.Push(evt)
	})

	player, err := a.spawn(level.Player, specs, "player", gravity, nil, nil, opts.Input, emitter)
	if err != nil {
		return nil, err
	}
	if player.Kind() != actor.KindPlayer {
		return nil, fmt.Errorf("arena: player prefab %q is not a player: %w", level.Player.Prefab, component.ErrConfiguration)
	}
	a.player = player

	for i, e := range level.Enemies {
		name := fmt.Sprintf("%s-%d", e.Prefab, i+1)
		left := &combat.Bound{Name: name + "/left", Position: e.Left.Vector()}
		right := &combat.Bound{Name: name + "/right", Position: e.Right.Vector()}
		enemy, err := a.spawn(e.SpawnSpec, specs, name, gravity, left, right, nil, emitter)
		if err != nil {
			return nil, err
		}
		if enemy.Kind() != actor.KindEnemy {
			return nil, fmt.Errorf("arena: enemy prefab %q is not an enemy: %w", e.Prefab, component.ErrConfiguration)
		}
		a.bounds = append(a.bounds, [2]*combat.Bound{left, right})
	}

	a.log.Info("arena ready",
		zap.Int("platforms", len(level.Platforms)),
		zap.Int("enemies", len(level.Enemies)),
	)
	return a, nil
}

func (a *Arena) spawn(s prefabs.SpawnSpec, specs map[string]prefabs.ActorSpec, name string, gravity float64,
	left, right *combat.Bound, in component.IntentSource, emitter *component.CombatEventEmitter) (*actor.Actor, error) {
	base, ok := specs[s.Prefab]
	if !ok {
		return nil, fmt.Errorf("arena: unknown prefab %q: %w", s.Prefab, component.ErrConfiguration)
	}
	spec, err := prefabs.ApplyOverrides(base, s.Overrides)
	if err != nil {
		return nil, err
	}
	animator, err := buildAnimator(spec.Animation)
	if err != nil {
		return nil, err
	}
	body := a.world.AddBody(physics.BodySpec{
		Position:   s.Position.Vector(),
		Size:       spec.Size.Vector(),
		Aggro:      spec.Aggro.Vector(),
		GroundCast: spec.GroundCast,
	})
	act, err := actor.New(
		actorConfig(spec, name, gravity, left, right),
		actor.Deps{Body: body, Animator: animator, Spatial: a.probe, Input: in},
		actor.WithLogger(a.log),
		actor.WithEmitter(emitter),
	)
	if err != nil {
		return nil, err
	}
	body.Bind(act)
	a.entries = append(a.entries, Entry{Actor: act, Body: body, Spec: spec})
	return act, nil
}

// Frame runs one frame: every actor's variable tick, animation, every fixed
// tick, then one physics step.
func (a *Arena) Frame(dt float64) {
	if a == nil {
		return
	}
	a.tick++
	for _, e := range a.entries {
		e.Actor.Update(dt)
	}
	for _, e := range a.entries {
		e.Actor.Animator().Advance(dt)
	}
	for _, e := range a.entries {
		e.Actor.FixedUpdate(a.fixed)
	}
	a.world.Step(a.fixed)
}

// Events drains the combat events collected since the last call.
func (a *Arena) Events() []component.CombatEvent {
	if a == nil {
		return nil
	}
	return a.events.Drain()
}

func (a *Arena) Level() prefabs.LevelSpec { return a.level }
func (a *Arena) World() *physics.World    { return a.world }
func (a *Arena) Player() *actor.Actor     { return a.player }
func (a *Arena) Entries() []Entry         { return a.entries }
func (a *Arena) Tick() uint64             { return a.tick }

// Bounds returns each enemy's patrol bounds, in spawn order.
func (a *Arena) Bounds() [][2]*combat.Bound { return a.bounds }

// Enemies returns every enemy actor, dead or alive.
func (a *Arena) Enemies() []*actor.Actor {
	var out []*actor.Actor
	for _, e := range a.entries {
		if e.Actor.Kind() == actor.KindEnemy {
			out = append(out, e.Actor)
		}
	}
	return out
}

// Outcome reports whether the player fell or every enemy did.
func (a *Arena) Outcome() Outcome {
	if a == nil || a.player == nil {
		return OutcomeRunning
	}
	if a.player.Dead() {
		return OutcomePlayerDown
	}
	for _, e := range a.Enemies() {
		if !e.Dead() {
			return OutcomeRunning
		}
	}
	return OutcomeCleared
}

// Observe describes the player for scripted input.
func (a *Arena) Observe() input.Observation {
	if a == nil || a.player == nil {
		return input.Observation{NearestEnemy: -1}
	}
	p := a.player
	pos, vel := p.Position(), p.Velocity()
	nearest := -1.0
	for _, e := range a.Enemies() {
		if e.Dead() {
			continue
		}
		if d := pos.Distance(e.Position()); nearest < 0 || d < nearest {
			nearest = d
		}
	}
	return input.Observation{
		X:            pos.X,
		Y:            pos.Y,
		VX:           vel.X,
		VY:           vel.Y,
		Grounded:     p.Grounded(),
		Dead:         p.Dead(),
		Blocked:      p.Intent().Axis != 0 && math.Abs(vel.X) < 0.1,
		Health:       p.Health().CurrentHP(),
		NearestEnemy: nearest,
	}
}
