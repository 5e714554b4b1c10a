package main

import (
	"testing"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/stretchr/testify/assert"

	"github.com/CoolKrit/Ronin/arena"
)

func TestOverlayTitle(t *testing.T) {
	assert.Equal(t, "", overlayTitle(false, arena.OutcomeRunning))
	assert.Equal(t, "Paused", overlayTitle(true, arena.OutcomeRunning))
	assert.Equal(t, "Cleared", overlayTitle(false, arena.OutcomeCleared))
	assert.Equal(t, "Defeated", overlayTitle(false, arena.OutcomePlayerDown))
	assert.Equal(t, "Paused", overlayTitle(true, arena.OutcomePlayerDown))
}

func TestOverlaySyncKeepsLastHeading(t *testing.T) {
	o := &Overlay{title: &widget.Text{}}

	assert.True(t, o.Sync("Defeated"))
	assert.Equal(t, "Defeated", o.title.Label)

	assert.False(t, o.Sync(""))
	assert.Equal(t, "Defeated", o.title.Label)
	assert.Equal(t, "", o.shown)
}
