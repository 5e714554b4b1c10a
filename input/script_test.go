package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoolKrit/Ronin/component"
)

func TestDuelistWalksThenAttacks(t *testing.T) {
	obs := Observation{Grounded: true, NearestEnemy: 5, Health: 100}
	s, err := NewScript("duelist", func() Observation { return obs }, nil)
	require.NoError(t, err)

	in := s.Poll()
	assert.Equal(t, 1.0, in.Axis)
	assert.False(t, in.AttackPressed)

	obs.NearestEnemy = 1
	var attacks int
	for i := 0; i < 40; i++ {
		in = s.Poll()
		assert.Zero(t, in.Axis)
		if in.AttackPressed {
			attacks++
		}
	}
	assert.Equal(t, 2, attacks)
}

func TestDuelistJumpsWhenBlocked(t *testing.T) {
	s, err := NewScript("duelist", func() Observation {
		return Observation{Grounded: true, Blocked: true, NearestEnemy: -1}
	}, nil)
	require.NoError(t, err)

	in := s.Poll()
	assert.True(t, in.JumpPressed)
	assert.True(t, in.JumpHeld)
	assert.Equal(t, 1.0, in.Axis)
}

func TestScriptErrorsGoIdle(t *testing.T) {
	s, err := compileScript("broken", []byte(`intent := func(tick, self) { return 1 / (tick - tick) }`), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, component.Intent{}, s.Poll())
	assert.True(t, s.failed)
	assert.Equal(t, component.Intent{}, s.Poll())
}

func TestCompileErrors(t *testing.T) {
	_, err := compileScript("bad", []byte(`intent := func(`), nil, nil)
	require.Error(t, err)

	_, err = NewScript("", nil, nil)
	require.ErrorIs(t, err, component.ErrConfiguration)

	_, err = NewScript("missing", nil, nil)
	require.Error(t, err)
}

func TestIdle(t *testing.T) {
	assert.Equal(t, component.Intent{}, Idle{}.Poll())
}
