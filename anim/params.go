package anim

import (
	"fmt"

	"github.com/CoolKrit/Ronin/component"
)

// Kind is the type of an animation parameter.
type Kind int

const (
	KindBool Kind = iota
	KindFloat
	KindTrigger
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Handle addresses a declared parameter. Handles are resolved once, at
// construction, so per-tick writes never look names up.
type Handle int

// Params is the named parameter store an Animator reads its rules from.
type Params struct {
	names  []string
	kinds  []Kind
	bools  []bool
	floats []float64
	index  map[string]Handle
}

func NewParams() *Params {
	return &Params{index: make(map[string]Handle)}
}

// Declare registers name with kind and returns its handle. Declaring an
// existing name with the same kind returns the existing handle.
func (p *Params) Declare(name string, kind Kind) (Handle, error) {
	if name == "" {
		return 0, fmt.Errorf("anim: empty parameter name: %w", component.ErrConfiguration)
	}
	if h, ok := p.index[name]; ok {
		if p.kinds[h] != kind {
			return 0, fmt.Errorf("anim: parameter %q declared as %v and %v: %w", name, p.kinds[h], kind, component.ErrConfiguration)
		}
		return h, nil
	}
	h := Handle(len(p.names))
	p.names = append(p.names, name)
	p.kinds = append(p.kinds, kind)
	p.bools = append(p.bools, false)
	p.floats = append(p.floats, 0)
	p.index[name] = h
	return h, nil
}

func (p *Params) valid(h Handle) bool {
	return p != nil && h >= 0 && int(h) < len(p.names)
}

func (p *Params) SetBool(h Handle, v bool) {
	if p.valid(h) {
		p.bools[h] = v
	}
}

func (p *Params) Bool(h Handle) bool {
	return p.valid(h) && p.bools[h]
}

func (p *Params) SetFloat(h Handle, v float64) {
	if p.valid(h) {
		p.floats[h] = v
	}
}

func (p *Params) Float(h Handle) float64 {
	if !p.valid(h) {
		return 0
	}
	return p.floats[h]
}

// Fire sets a trigger until it is consumed.
func (p *Params) Fire(h Handle) {
	if p.valid(h) {
		p.bools[h] = true
	}
}

// Consume reads and clears a trigger.
func (p *Params) Consume(h Handle) bool {
	if !p.valid(h) || !p.bools[h] {
		return false
	}
	p.bools[h] = false
	return true
}
