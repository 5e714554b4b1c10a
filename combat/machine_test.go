package combat

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/probe"
	"github.com/CoolKrit/Ronin/probe/probetest"
)

type fakeSelf struct {
	pos      cp.Vector
	grounded bool
	playing  bool
}

func (s *fakeSelf) Position() cp.Vector { return s.pos }
func (s *fakeSelf) Grounded() bool      { return s.grounded }
func (s *fakeSelf) AttackPlaying() bool { return s.playing }

type recordedSignals struct {
	bools map[component.Signal]bool
	sets  map[component.Signal]int
}

func newRecordedSignals() *recordedSignals {
	return &recordedSignals{bools: map[component.Signal]bool{}, sets: map[component.Signal]int{}}
}

func (r *recordedSignals) SetBool(s component.Signal, v bool) {
	r.bools[s] = v
	if v {
		r.sets[s]++
	}
}
func (r *recordedSignals) SetFloat(component.Signal, float64) {}
func (r *recordedSignals) Fire(s component.Signal)            { r.sets[s]++ }

var floor = common.Rect{X: -100, Y: -1, Width: 200, Height: 1}

func enemyConfig() Config {
	return Config{
		Layer:               component.LayerEnemy,
		AttackDistance:      2,
		CooldownDuration:    1,
		Damage:              5,
		HitBox:              HitBox{Offset: cp.Vector{X: 0.8}, Size: cp.Vector{X: 1, Y: 1}, Angle: 45},
		GroundProbe:         cp.Vector{X: 0.5},
		GroundCheckDistance: 2,
	}
}

type enemyRig struct {
	world   *probetest.World
	self    *fakeSelf
	signals *recordedSignals
	machine *Machine
	phases  [][2]Phase
}

func newEnemyRig(t *testing.T, x float64, ground ...common.Rect) *enemyRig {
	t.Helper()
	if len(ground) == 0 {
		ground = []common.Rect{floor}
	}
	r := &enemyRig{
		world:   probetest.NewWorld(ground...),
		self:    &fakeSelf{pos: cp.Vector{X: x, Y: 0.5}, grounded: true},
		signals: newRecordedSignals(),
	}
	profile := &EnemyProfile{
		Left:  &Bound{Name: "left", Position: cp.Vector{X: 0, Y: 0.5}},
		Right: &Bound{Name: "right", Position: cp.Vector{X: 10, Y: 0.5}},
	}
	m, err := NewMachine(enemyConfig(), profile, r.self, probe.New(r.world), r.signals,
		WithID("bandit"),
		WithTransitionHook(func(from, to Phase) { r.phases = append(r.phases, [2]Phase{from, to}) }),
	)
	require.NoError(t, err)
	r.machine = m
	return r
}

func (r *enemyRig) opponent(x float64, hp int) *probetest.Dummy {
	d := probetest.NewDummy("ronin", component.LayerPlayer, cp.Vector{X: x, Y: 0.5}, hp)
	r.world.AddActor(d, cp.Vector{X: 0.5, Y: 0.5})
	return d
}

func TestSelectTargetPicksFartherBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(0.01, 9.99).Draw(t, "x")
		self := &fakeSelf{pos: cp.Vector{X: x, Y: 0.5}, grounded: true}
		profile := &EnemyProfile{
			Left:  &Bound{Name: "left", Position: cp.Vector{X: 0, Y: 0.5}},
			Right: &Bound{Name: "right", Position: cp.Vector{X: 10, Y: 0.5}},
		}
		m, err := NewMachine(enemyConfig(), profile, self, probe.New(probetest.NewWorld(floor)), nil)
		if err != nil {
			t.Fatalf("new machine: %v", err)
		}

		want := profile.Right
		if x > 5 {
			want = profile.Left
		}
		if m.Target() != want {
			t.Fatalf("x=%v picked %s", x, m.Target().Name)
		}
		wantFacing := component.FacingRight
		if want.Position.X < x {
			wantFacing = component.FacingLeft
		}
		if m.Facing() != wantFacing {
			t.Fatalf("x=%v facing %v, want %v", x, m.Facing(), wantFacing)
		}
	})
}

func TestPatrolWalksTowardTarget(t *testing.T) {
	r := newEnemyRig(t, 3)
	d := r.machine.Update(common.FixedDelta, component.Intent{})

	assert.Equal(t, PhasePatrol, r.machine.Phase())
	assert.Equal(t, "right", r.machine.Target().Name)
	assert.False(t, d.Locked)
	assert.InDelta(t, 1.0, d.Direction, 1e-9)
	assert.True(t, r.signals.bools[component.SignalCanWalk])
}

func TestEngageAndAttackInOneTick(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(1.5, 100)

	r.machine.OpponentEntered(player)
	d := r.machine.Update(common.FixedDelta, component.Intent{})

	assert.Equal(t, [][2]Phase{
		{PhasePatrol, PhaseEngaging},
		{PhaseEngaging, PhaseAttacking},
	}, r.phases)
	assert.True(t, d.Locked)
	assert.Equal(t, component.FacingLeft, r.machine.Facing())
	assert.Equal(t, 1, player.Hits)
	assert.Equal(t, 95, player.Health.CurrentHP())
	assert.True(t, r.signals.bools[component.SignalAttack])
	assert.False(t, r.signals.bools[component.SignalCanWalk])

	r.machine.Update(common.FixedDelta, component.Intent{})
	assert.Equal(t, 1, player.Hits, "one hit per attack")
}

func TestOpponentOutOfReachIsChased(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(8, 100)

	r.machine.OpponentEntered(player)
	d := r.machine.Update(common.FixedDelta, component.Intent{})

	assert.Equal(t, PhaseEngaging, r.machine.Phase())
	assert.False(t, r.machine.Attacking())
	assert.Zero(t, player.Hits)
	assert.InDelta(t, 1.0, d.Direction, 1e-9)
	assert.Equal(t, component.FacingRight, r.machine.Facing())
}

func TestCooldownCountsDownAndResets(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(1.5, 100)
	r.machine.OpponentEntered(player)
	r.machine.Update(common.FixedDelta, component.Intent{})
	require.Equal(t, PhaseAttacking, r.machine.Phase())

	r.machine.TriggerCooling()
	require.Equal(t, PhaseCooling, r.machine.Phase())
	assert.Equal(t, 1.0, r.machine.Timer())

	ticks := 0
	for r.machine.Phase() == PhaseCooling {
		before := r.machine.Timer()
		d := r.machine.Update(0.1, component.Intent{})
		ticks++
		require.Less(t, ticks, 20)
		if r.machine.Phase() == PhaseCooling {
			assert.Less(t, r.machine.Timer(), before)
			assert.True(t, d.Locked)
		}
	}
	assert.Equal(t, 1.0, r.machine.Timer())
	assert.Equal(t, PhaseEngaging, r.machine.Phase())
	assert.Equal(t, 1, player.Hits)

	r.machine.Update(common.FixedDelta, component.Intent{})
	assert.Equal(t, PhaseAttacking, r.machine.Phase())
	assert.Equal(t, 2, player.Hits)
}

func TestTriggerCoolingOnlyFromAttacking(t *testing.T) {
	r := newEnemyRig(t, 3)
	r.machine.TriggerCooling()
	assert.Equal(t, PhasePatrol, r.machine.Phase())
	assert.False(t, r.machine.Cooling())
}

func TestStopAttackWhenOpponentBacksOff(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(1.5, 100)
	r.machine.OpponentEntered(player)
	r.machine.Update(common.FixedDelta, component.Intent{})
	require.True(t, r.machine.Attacking())

	player.Pos = cp.Vector{X: -1, Y: 0.5}
	r.machine.Update(common.FixedDelta, component.Intent{})

	assert.False(t, r.machine.Attacking())
	assert.False(t, r.machine.Cooling())
	assert.Equal(t, PhaseEngaging, r.machine.Phase())
	assert.False(t, r.signals.bools[component.SignalAttack])
}

func TestLethalHitReturnsToNeutral(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(1.5, 5)
	r.machine.OpponentEntered(player)

	r.machine.Update(common.FixedDelta, component.Intent{})

	assert.True(t, player.Dead())
	assert.Equal(t, PhasePatrol, r.machine.Phase())
	assert.Nil(t, r.machine.Opponent())
	assert.False(t, r.machine.InRange())
	assert.False(t, r.machine.Attacking())
	assert.False(t, r.signals.bools[component.SignalAttack])
	assert.Equal(t, [2]Phase{PhaseAttacking, PhasePatrol}, r.phases[len(r.phases)-1])
}

func TestDeadOpponentMakesMachineHold(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(8, 10)
	r.machine.OpponentEntered(player)
	r.machine.Update(common.FixedDelta, component.Intent{})
	require.Equal(t, PhaseEngaging, r.machine.Phase())

	_, _ = player.Health.ApplyDamage(10)
	d := r.machine.Update(common.FixedDelta, component.Intent{})

	assert.True(t, d.Hold)
	assert.True(t, d.Locked)
	assert.Equal(t, PhasePatrol, r.machine.Phase())

	d = r.machine.Update(common.FixedDelta, component.Intent{})
	assert.False(t, d.Hold)
}

func TestOpponentLeftDisengages(t *testing.T) {
	r := newEnemyRig(t, 3)
	player := r.opponent(8, 100)
	r.machine.OpponentEntered(player)
	r.machine.Update(common.FixedDelta, component.Intent{})

	r.machine.OpponentLeft(player)

	assert.Equal(t, PhasePatrol, r.machine.Phase())
	assert.False(t, r.machine.InRange())
	assert.Equal(t, "right", r.machine.Target().Name)
}

func TestOpponentEnteredIgnoresAllies(t *testing.T) {
	r := newEnemyRig(t, 3)
	ally := probetest.NewDummy("ally", component.LayerEnemy, cp.Vector{X: 2, Y: 0.5}, 10)
	r.machine.OpponentEntered(ally)
	assert.False(t, r.machine.InRange())
}

func TestLedgeTurnsEnemyAround(t *testing.T) {
	ledge := common.Rect{X: -5, Y: -1, Width: 11.3, Height: 1}
	r := newEnemyRig(t, 3, ledge)
	require.Equal(t, "right", r.machine.Target().Name)

	r.self.pos.X = 6
	r.machine.Update(common.FixedDelta, component.Intent{})

	assert.Equal(t, "left", r.machine.Target().Name)
	assert.Equal(t, component.FacingLeft, r.machine.Facing())
}

func TestDeadIsTerminal(t *testing.T) {
	r := newEnemyRig(t, 3)
	require.True(t, r.machine.Kill())
	assert.False(t, r.machine.Kill())

	player := r.opponent(1.5, 100)
	r.machine.OpponentEntered(player)
	d := r.machine.Update(common.FixedDelta, component.Intent{})
	r.machine.TriggerCooling()

	assert.Equal(t, PhaseDead, r.machine.Phase())
	assert.True(t, d.Locked)
	assert.False(t, r.machine.InRange())
	assert.Zero(t, player.Hits)
	assert.Equal(t, 1, r.signals.sets[component.SignalIsDead])
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no_layer", func(c *Config) { c.Layer = component.LayerNone }},
		{"zero_cooldown", func(c *Config) { c.CooldownDuration = 0 }},
		{"zero_damage", func(c *Config) { c.Damage = 0 }},
		{"flat_hitbox", func(c *Config) { c.HitBox.Size.Y = 0 }},
		{"negative_reach", func(c *Config) { c.AttackDistance = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := enemyConfig()
			c.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), component.ErrConfiguration)
		})
	}
	require.NoError(t, enemyConfig().Validate())
}

func TestEnemyProfileNeedsOrderedBounds(t *testing.T) {
	self := &fakeSelf{pos: cp.Vector{X: 3}}
	spatial := probe.New(probetest.NewWorld(floor))

	_, err := NewMachine(enemyConfig(), &EnemyProfile{Left: &Bound{}}, self, spatial, nil)
	require.ErrorIs(t, err, component.ErrConfiguration)

	swapped := &EnemyProfile{
		Left:  &Bound{Position: cp.Vector{X: 10}},
		Right: &Bound{Position: cp.Vector{X: 0}},
	}
	_, err = NewMachine(enemyConfig(), swapped, self, spatial, nil)
	require.ErrorIs(t, err, component.ErrConfiguration)
}

func TestSelectTargetWithoutBounds(t *testing.T) {
	m, err := NewMachine(playerConfig(), &PlayerProfile{}, &fakeSelf{}, probe.New(probetest.NewWorld()), nil)
	require.NoError(t, err)
	require.ErrorIs(t, m.SelectTarget(), component.ErrNullTarget)
}
