// Package observability provides logger construction and structured logging
// of combat events.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/config"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// EventFields flattens a combat event into log fields, skipping empty ones.
func EventFields(evt component.CombatEvent) []zap.Field {
	fields := []zap.Field{
		zap.String("event", string(evt.Type)),
		zap.Uint64("tick", evt.Tick),
	}
	if evt.AttackerID != "" {
		fields = append(fields, zap.String("attacker", evt.AttackerID))
	}
	if evt.TargetID != "" {
		fields = append(fields, zap.String("target", evt.TargetID))
	}
	if evt.Damage != 0 {
		fields = append(fields, zap.Int("damage", evt.Damage), zap.Int("remaining", evt.Remaining))
	}
	if evt.From != "" || evt.To != "" {
		fields = append(fields, zap.String("from", evt.From), zap.String("to", evt.To))
	}
	return append(fields, zap.Float64("x", evt.Pos.X), zap.Float64("y", evt.Pos.Y))
}

// LogEvent writes evt at Info for deaths and Debug for everything else.
func LogEvent(log *zap.Logger, evt component.CombatEvent) {
	if log == nil {
		return
	}
	if evt.Type == component.EventDeath {
		log.Info("combat event", EventFields(evt)...)
		return
	}
	log.Debug("combat event", EventFields(evt)...)
}
