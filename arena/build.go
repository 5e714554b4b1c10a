package arena

import (
	"fmt"

	"github.com/CoolKrit/Ronin/actor"
	"github.com/CoolKrit/Ronin/anim"
	"github.com/CoolKrit/Ronin/combat"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/movement"
	"github.com/CoolKrit/Ronin/prefabs"
)

func actorConfig(spec prefabs.ActorSpec, name string, gravity float64, left, right *combat.Bound) actor.Config {
	kind := actor.KindEnemy
	if spec.Kind == "player" {
		kind = actor.KindPlayer
	}
	facing := component.FacingRight
	if spec.Facing == "left" {
		facing = component.FacingLeft
	}
	c := spec.Combat
	m := spec.Movement
	return actor.Config{
		Name:         name,
		Kind:         kind,
		MaxHealth:    spec.MaxHealth,
		StrictDamage: spec.StrictDamage,
		Combat: combat.Config{
			AttackDistance:   c.AttackDistance,
			CooldownDuration: c.Cooldown,
			Damage:           c.Damage,
			HitBox: combat.HitBox{
				Offset: c.HitBox.Offset.Vector(),
				Size:   c.HitBox.Size.Vector(),
				Angle:  c.HitBox.Angle,
			},
			GroundProbe:         c.GroundProbe.Vector(),
			GroundCheckDistance: c.GroundCheckDistance,
		},
		Movement: movement.Driver{
			Speed:             m.Speed,
			JumpForce:         m.JumpForce,
			GravityY:          gravity,
			FallMultiplier:    m.FallMultiplier,
			LowJumpMultiplier: m.LowJumpMultiplier,
			ShapeGravity:      m.ShapeGravity,
		},
		Signals:      signalTable(spec.Signals),
		AttackClip:   spec.Animation.AttackClip,
		Facing:       facing,
		Left:         left,
		Right:        right,
	}
}

func signalTable(raw map[string]string) actor.SignalTable {
	if len(raw) == 0 {
		return nil
	}
	out := make(actor.SignalTable, len(raw))
	for k, v := range raw {
		out[component.Signal(k)] = v
	}
	return out
}

func buildAnimator(spec prefabs.AnimationSpec) (*anim.Animator, error) {
	clips := make([]*anim.Clip, 0, len(spec.Clips))
	for _, c := range spec.Clips {
		clips = append(clips, anim.NewClip(c.Name, c.Frames, c.FPS, c.Loop))
	}
	rules := make([]anim.Rule, 0, len(spec.Rules))
	for _, r := range spec.Rules {
		rules = append(rules, anim.Rule{
			Clip:    r.Clip,
			When:    r.When,
			Above:   r.Above,
			Below:   r.Below,
			Trigger: r.Trigger,
		})
	}
	a, err := anim.NewAnimator(clips, rules)
	if err != nil {
		return nil, fmt.Errorf("arena: animator: %w", err)
	}
	return a, nil
}
