package observability

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/config"
)

func TestNewLogger_JSON(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestLogEventLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	LogEvent(log, component.CombatEvent{Type: component.EventHit, AttackerID: "a", TargetID: "b", Damage: 5, Remaining: 15})
	LogEvent(log, component.CombatEvent{Type: component.EventDeath, TargetID: "b", Pos: cp.Vector{X: 2, Y: 1}})
	LogEvent(nil, component.CombatEvent{Type: component.EventDeath})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(5), entries[0].ContextMap()["damage"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "b", entries[1].ContextMap()["target"])
	assert.NotContains(t, entries[1].ContextMap(), "attacker")
}

func TestEventFieldsPhase(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zap.New(core).Debug("x", EventFields(component.CombatEvent{Type: component.EventPhase, From: "patrol", To: "engaging"})...)

	m := logs.All()[0].ContextMap()
	assert.Equal(t, "patrol", m["from"])
	assert.Equal(t, "engaging", m["to"])
	assert.NotContains(t, m, "damage")
}
