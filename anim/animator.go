// Package anim is a small parameter-driven animation state machine. Clips are
// selected each tick by the first matching Rule; non-looping clips report
// completion through OnFinished.
package anim

import (
	"fmt"

	"github.com/CoolKrit/Ronin/component"
)

// Rule selects Clip when every condition holds. An empty rule always
// matches. A Trigger rule consumes its trigger and then holds its clip until
// the clip finishes or an earlier rule matches.
type Rule struct {
	Clip    string
	When    map[string]bool
	Above   map[string]float64
	Below   map[string]float64
	Trigger string
}

type cond struct {
	h     Handle
	want  bool
	limit float64
}

type compiledRule struct {
	clip    string
	when    []cond
	above   []cond
	below   []cond
	trigger Handle
	hasTrig bool
}

// Animator picks and advances the clip that reflects the current parameters.
type Animator struct {
	Params *Params

	// OnFinished runs when a non-looping clip plays to its end.
	OnFinished func(clip string)

	clips   map[string]*Clip
	rules   []compiledRule
	state   string
	stateIx int
	held    bool
}

// NewAnimator compiles rules against clips. Parameters referenced by rules
// are declared on the fly: When as bool, Above/Below as float, Trigger as
// trigger. The last rule's clip is the entry state, so it is usually the
// unconditional idle.
func NewAnimator(clips []*Clip, rules []Rule) (*Animator, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("anim: no rules: %w", component.ErrConfiguration)
	}
	a := &Animator{Params: NewParams(), clips: make(map[string]*Clip, len(clips))}
	for _, c := range clips {
		if c == nil || c.Name == "" {
			return nil, fmt.Errorf("anim: unnamed clip: %w", component.ErrConfiguration)
		}
		a.clips[c.Name] = c
	}
	for i, r := range rules {
		if _, ok := a.clips[r.Clip]; !ok {
			return nil, fmt.Errorf("anim: rule %d names unknown clip %q: %w", i, r.Clip, component.ErrConfiguration)
		}
		cr := compiledRule{clip: r.Clip}
		for name, want := range r.When {
			h, err := a.Params.Declare(name, KindBool)
			if err != nil {
				return nil, err
			}
			cr.when = append(cr.when, cond{h: h, want: want})
		}
		for name, limit := range r.Above {
			h, err := a.Params.Declare(name, KindFloat)
			if err != nil {
				return nil, err
			}
			cr.above = append(cr.above, cond{h: h, limit: limit})
		}
		for name, limit := range r.Below {
			h, err := a.Params.Declare(name, KindFloat)
			if err != nil {
				return nil, err
			}
			cr.below = append(cr.below, cond{h: h, limit: limit})
		}
		if r.Trigger != "" {
			h, err := a.Params.Declare(r.Trigger, KindTrigger)
			if err != nil {
				return nil, err
			}
			cr.trigger, cr.hasTrig = h, true
		}
		a.rules = append(a.rules, cr)
	}
	a.state = a.rules[len(a.rules)-1].clip
	a.stateIx = len(a.rules) - 1
	return a, nil
}

func (a *Animator) matches(r compiledRule) bool {
	for _, c := range r.when {
		if a.Params.Bool(c.h) != c.want {
			return false
		}
	}
	for _, c := range r.above {
		if !(a.Params.Float(c.h) > c.limit) {
			return false
		}
	}
	for _, c := range r.below {
		if !(a.Params.Float(c.h) < c.limit) {
			return false
		}
	}
	if r.hasTrig {
		return a.Params.Bool(r.trigger)
	}
	return true
}

// Advance re-evaluates the rules and moves the active clip forward by dt.
func (a *Animator) Advance(dt float64) {
	if a == nil {
		return
	}
	for i, r := range a.rules {
		if !a.matches(r) {
			continue
		}
		if a.held && i > a.stateIx && !a.clips[a.state].Done() {
			break
		}
		if r.hasTrig {
			a.Params.Consume(r.trigger)
		}
		if r.clip != a.state || r.hasTrig {
			a.enter(r.clip, i, r.hasTrig)
		}
		break
	}
	clip := a.clips[a.state]
	if clip.Advance(dt) && a.OnFinished != nil {
		a.OnFinished(a.state)
	}
}

func (a *Animator) enter(clip string, ix int, held bool) {
	a.state = clip
	a.stateIx = ix
	a.held = held
	a.clips[clip].Reset()
}

// State is the active clip name.
func (a *Animator) State() string {
	if a == nil {
		return ""
	}
	return a.state
}

// Frame is the active clip's frame index.
func (a *Animator) Frame() int {
	if a == nil {
		return 0
	}
	return a.clips[a.state].Frame()
}

// IsPlaying reports whether clip is active and not finished.
func (a *Animator) IsPlaying(clip string) bool {
	if a == nil || a.state != clip {
		return false
	}
	c := a.clips[clip]
	return c.Loop || !c.Done()
}

// Clip returns a clip by name.
func (a *Animator) Clip(name string) *Clip {
	if a == nil {
		return nil
	}
	return a.clips[name]
}
