package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoolKrit/Ronin/component"
)

func enemyAnimator(t *testing.T) *Animator {
	t.Helper()
	clips := []*Clip{
		NewClip("idle", 4, 8, true),
		NewClip("run", 6, 12, true),
		NewClip("attack", 6, 12, false),
		NewClip("hurt", 3, 12, false),
		NewClip("death", 5, 10, false),
	}
	rules := []Rule{
		{Clip: "death", When: map[string]bool{"IsDead": true}},
		{Clip: "hurt", Trigger: "Hurt"},
		{Clip: "attack", When: map[string]bool{"Attack": true}},
		{Clip: "run", When: map[string]bool{"canWalk": true}},
		{Clip: "idle"},
	}
	a, err := NewAnimator(clips, rules)
	require.NoError(t, err)
	return a
}

func set(t *testing.T, a *Animator, name string, v bool) {
	t.Helper()
	h, ok := a.Params.index[name]
	require.True(t, ok, name)
	if a.Params.kinds[h] == KindTrigger {
		a.Params.Fire(h)
		return
	}
	a.Params.SetBool(h, v)
}

func TestAnimatorStartsIdle(t *testing.T) {
	a := enemyAnimator(t)
	assert.Equal(t, "idle", a.State())
	a.Advance(1.0 / 60)
	assert.Equal(t, "idle", a.State())
}

func TestAttackClipReportsCompletionOnce(t *testing.T) {
	a := enemyAnimator(t)
	var finished []string
	a.OnFinished = func(clip string) { finished = append(finished, clip) }

	set(t, a, "Attack", true)
	a.Advance(1.0 / 60)
	require.True(t, a.IsPlaying("attack"))

	for i := 0; i < 60; i++ {
		a.Advance(1.0 / 60)
	}
	assert.Equal(t, []string{"attack"}, finished)
	assert.False(t, a.IsPlaying("attack"))
	assert.Equal(t, 5, a.Frame())
}

func TestHurtHoldsUntilDone(t *testing.T) {
	a := enemyAnimator(t)
	set(t, a, "canWalk", true)
	a.Advance(1.0 / 60)
	require.Equal(t, "run", a.State())

	set(t, a, "Hurt", true)
	a.Advance(1.0 / 60)
	assert.Equal(t, "hurt", a.State())

	a.Advance(1.0 / 60)
	assert.Equal(t, "hurt", a.State(), "trigger consumed but clip still held")

	a.Advance(a.Clip("hurt").Duration())
	a.Advance(1.0 / 60)
	assert.Equal(t, "run", a.State())
}

func TestDeathOverridesHeldClip(t *testing.T) {
	a := enemyAnimator(t)
	set(t, a, "Hurt", true)
	a.Advance(1.0 / 60)
	require.Equal(t, "hurt", a.State())

	set(t, a, "IsDead", true)
	a.Advance(1.0 / 60)
	assert.Equal(t, "death", a.State())
}

func TestFloatRules(t *testing.T) {
	clips := []*Clip{NewClip("idle", 1, 1, true), NewClip("run", 1, 1, true), NewClip("fall", 1, 1, true)}
	a, err := NewAnimator(clips, []Rule{
		{Clip: "fall", When: map[string]bool{"IsGrounded": false}},
		{Clip: "run", Above: map[string]float64{"Speed": 0.01}},
		{Clip: "idle"},
	})
	require.NoError(t, err)

	grounded := a.Params.index["IsGrounded"]
	speed := a.Params.index["Speed"]
	a.Params.SetBool(grounded, true)
	a.Params.SetFloat(speed, 3)
	a.Advance(0.1)
	assert.Equal(t, "run", a.State())

	a.Params.SetBool(grounded, false)
	a.Advance(0.1)
	assert.Equal(t, "fall", a.State())
}

func TestNewAnimatorRejectsBadRules(t *testing.T) {
	_, err := NewAnimator([]*Clip{NewClip("idle", 1, 1, true)}, nil)
	require.ErrorIs(t, err, component.ErrConfiguration)

	_, err = NewAnimator([]*Clip{NewClip("idle", 1, 1, true)}, []Rule{{Clip: "missing"}})
	require.ErrorIs(t, err, component.ErrConfiguration)

	_, err = NewAnimator([]*Clip{NewClip("idle", 1, 1, true)}, []Rule{
		{Clip: "idle", When: map[string]bool{"x": true}},
		{Clip: "idle", Trigger: "x"},
	})
	require.ErrorIs(t, err, component.ErrConfiguration)
}

func TestClipLoops(t *testing.T) {
	c := NewClip("run", 4, 4, true)
	assert.Equal(t, 1.0, c.Duration())
	c.Advance(0.3)
	assert.Equal(t, 1, c.Frame())
	assert.False(t, c.Advance(1.0))
	assert.Equal(t, 1, c.Frame())
	assert.False(t, c.Done())
}
