package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewHealthRejectsNonPositiveMax(t *testing.T) {
	for _, max := range []int{0, -1, -100} {
		_, err := NewHealth(max)
		require.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestApplyDamageCountsDownToDeath(t *testing.T) {
	h, err := NewHealth(20)
	require.NoError(t, err)

	deaths := 0
	var damaged []int
	h.OnDamage = func(_ *Health, amount int) { damaged = append(damaged, amount) }
	h.OnDeath = func(*Health) { deaths++ }

	for _, want := range []int{15, 10, 5} {
		out, err := h.ApplyDamage(5)
		require.NoError(t, err)
		assert.Equal(t, Alive, out)
		assert.Equal(t, want, h.CurrentHP())
	}
	out, err := h.ApplyDamage(5)
	require.NoError(t, err)
	assert.Equal(t, Lethal, out)
	assert.Equal(t, 0, h.CurrentHP())
	assert.Equal(t, 1, deaths)

	out, err = h.ApplyDamage(5)
	require.NoError(t, err)
	assert.Equal(t, Lethal, out)
	assert.Equal(t, 0, h.CurrentHP())
	assert.Equal(t, 1, deaths)
	assert.Equal(t, []int{5, 5, 5, 5}, damaged)
}

func TestApplyDamageOverkillClampsAtZero(t *testing.T) {
	h, _ := NewHealth(10)
	out, err := h.ApplyDamage(25)
	require.NoError(t, err)
	assert.Equal(t, Lethal, out)
	assert.Equal(t, 0, h.CurrentHP())
	assert.False(t, h.IsAlive())
	assert.Zero(t, h.Fraction())
}

func TestApplyDamageNonPositive(t *testing.T) {
	h, _ := NewHealth(10)
	out, err := h.ApplyDamage(0)
	require.NoError(t, err)
	assert.Equal(t, Alive, out)
	assert.Equal(t, 10, h.CurrentHP())

	h.Strict = true
	_, err = h.ApplyDamage(-3)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 10, h.CurrentHP())
}

func TestNilHealthIsDead(t *testing.T) {
	var h *Health
	out, err := h.ApplyDamage(1)
	require.NoError(t, err)
	assert.Equal(t, Lethal, out)
	assert.False(t, h.IsAlive())
	assert.Zero(t, h.MaxHP())
}

func TestHealthNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 500).Draw(t, "max")
		h, err := NewHealth(max)
		if err != nil {
			t.Fatalf("new health: %v", err)
		}
		deaths := 0
		h.OnDeath = func(*Health) { deaths++ }

		hits := rapid.SliceOfN(rapid.IntRange(-10, 200), 1, 30).Draw(t, "hits")
		for _, amount := range hits {
			before := h.CurrentHP()
			out, _ := h.ApplyDamage(amount)
			if h.CurrentHP() < 0 || h.CurrentHP() > max {
				t.Fatalf("current %d out of [0,%d]", h.CurrentHP(), max)
			}
			if h.CurrentHP() > before {
				t.Fatalf("health rose from %d to %d", before, h.CurrentHP())
			}
			if (out == Lethal) != (h.CurrentHP() == 0) {
				t.Fatalf("outcome %v with current %d", out, h.CurrentHP())
			}
		}
		if deaths > 1 {
			t.Fatalf("OnDeath fired %d times", deaths)
		}
		if h.CurrentHP() == 0 && deaths != 1 {
			t.Fatalf("empty ledger but OnDeath fired %d times", deaths)
		}
	})
}
