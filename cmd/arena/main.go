// Command arena runs a level headless, with a tengo script driving the
// player, and logs the combat events and the outcome.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/arena"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/config"
	"github.com/CoolKrit/Ronin/input"
	"github.com/CoolKrit/Ronin/observability"
	"github.com/CoolKrit/Ronin/prefabs"
)

// unboundedMinutes caps a run with ticks = 0 in simulated minutes.
const unboundedMinutes = 10

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name in prefabs/levels (overrides config)")
	script := flag.String("script", "", "tengo script in prefabs/scripts, or \"none\" to idle (overrides config)")
	ticks := flag.Int("ticks", -1, "ticks to run, 0 runs until the level resolves (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Simulation.Level = *levelName
	}
	if *script != "" {
		cfg.Simulation.Script = *script
	}
	if *ticks >= 0 {
		cfg.Simulation.Ticks = *ticks
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.SetDir(cfg.Simulation.PrefabDir)

	summary, err := run(cfg, logger)
	if err != nil {
		logger.Error("arena run failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(summary)
}

type summary struct {
	Outcome  arena.Outcome
	Ticks    uint64
	PlayerHP int
	Alive    int
	Counts   map[component.CombatEventType]int
}

func (s summary) String() string {
	return fmt.Sprintf("%s after %d ticks: player hp %d, %d enemies standing, %d hits, %d deaths",
		s.Outcome, s.Ticks, s.PlayerHP, s.Alive, s.Counts[component.EventHit], s.Counts[component.EventDeath])
}

func run(cfg config.Config, logger *zap.Logger) (summary, error) {
	var a *arena.Arena
	var in component.IntentSource = input.Idle{}
	if cfg.Simulation.Script != "" && cfg.Simulation.Script != "none" {
		s, err := input.NewScript(cfg.Simulation.Script, func() input.Observation { return a.Observe() }, logger)
		if err != nil {
			return summary{}, err
		}
		in = s
	}

	dt := cfg.Simulation.FixedDelta()
	a, err := arena.Load(cfg.Simulation.Level, arena.Options{Logger: logger, Input: in, FixedDelta: dt})
	if err != nil {
		return summary{}, err
	}

	limit := cfg.Simulation.Ticks
	if limit == 0 {
		limit = unboundedMinutes * 60 * cfg.Simulation.TickRate
	}

	counts := make(map[component.CombatEventType]int)
	for i := 0; i < limit && a.Outcome() == arena.OutcomeRunning; i++ {
		a.Frame(dt)
		for _, evt := range a.Events() {
			counts[evt.Type]++
			observability.LogEvent(logger, evt)
		}
	}

	s := summary{
		Outcome:  a.Outcome(),
		Ticks:    a.Tick(),
		PlayerHP: a.Player().Health().CurrentHP(),
		Counts:   counts,
	}
	for _, e := range a.Enemies() {
		if !e.Dead() {
			s.Alive++
		}
	}
	logger.Info("arena run finished",
		zap.Stringer("outcome", s.Outcome),
		zap.Uint64("ticks", s.Ticks),
		zap.Int("player_hp", s.PlayerHP),
		zap.Int("enemies_standing", s.Alive),
	)
	return s, nil
}
