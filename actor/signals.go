package actor

import (
	"fmt"

	"github.com/CoolKrit/Ronin/anim"
	"github.com/CoolKrit/Ronin/component"
)

// SignalTable maps symbolic signals to an animator's parameter names.
// Signals absent from the table are not driven.
type SignalTable map[component.Signal]string

// EnemySignals is the parameter naming used by enemy rigs.
var EnemySignals = SignalTable{
	component.SignalCanWalk: "canWalk",
	component.SignalAttack:  "Attack",
	component.SignalHurt:    "Hurt",
	component.SignalIsDead:  "IsDead",
}

// PlayerSignals is the parameter naming used by the player rig.
var PlayerSignals = SignalTable{
	component.SignalSpeed:       "Speed",
	component.SignalYVelocity:   "yVelocity",
	component.SignalIsGrounded:  "IsGrounded",
	component.SignalIsAttacking: "IsAttacking",
	component.SignalHurt:        "Hurt",
	component.SignalIsDead:      "IsDead",
}

func signalKind(s component.Signal) anim.Kind {
	switch s {
	case component.SignalSpeed, component.SignalYVelocity:
		return anim.KindFloat
	case component.SignalHurt:
		return anim.KindTrigger
	default:
		return anim.KindBool
	}
}

// signalSink writes symbolic signals through handles resolved once.
type signalSink struct {
	params  *anim.Params
	handles map[component.Signal]anim.Handle
}

func resolveSignals(table SignalTable, params *anim.Params) (*signalSink, error) {
	s := &signalSink{params: params, handles: make(map[component.Signal]anim.Handle, len(table))}
	if params == nil {
		return s, nil
	}
	for sig, name := range table {
		h, err := params.Declare(name, signalKind(sig))
		if err != nil {
			return nil, fmt.Errorf("actor: signal %s: %w", sig, err)
		}
		s.handles[sig] = h
	}
	return s, nil
}

func (s *signalSink) SetBool(sig component.Signal, v bool) {
	if h, ok := s.handles[sig]; ok {
		s.params.SetBool(h, v)
	}
}

func (s *signalSink) SetFloat(sig component.Signal, v float64) {
	if h, ok := s.handles[sig]; ok {
		s.params.SetFloat(h, v)
	}
}

func (s *signalSink) Fire(sig component.Signal) {
	if h, ok := s.handles[sig]; ok {
		s.params.Fire(h)
	}
}
