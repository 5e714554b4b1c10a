package input

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/prefabs"
)

// Observation is what a script sees of the actor it drives.
type Observation struct {
	X, Y         float64
	VX, VY       float64
	Grounded     bool
	Dead         bool
	Blocked      bool
	Health       int
	// NearestEnemy is the distance to the closest live enemy, or -1.
	NearestEnemy float64
}

const intentDispatchScript = `
__out = intent(__tick, __self)
`

// Script asks a tengo script for intent once per tick. The script defines
// intent := func(tick, self) and returns a map with axis, jump, hold_jump and
// attack keys.
type Script struct {
	path     string
	compiled *tengo.Compiled
	observe  func() Observation
	log      *zap.Logger
	tick     int64
	failed   bool
}

// NewScript loads and compiles the named script. observe is called once per
// Poll; nil means the script sees a zero observation.
func NewScript(path string, observe func() Observation, log *zap.Logger) (*Script, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("input: empty script path: %w", component.ErrConfiguration)
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", path, err)
	}
	return compileScript(path, src, observe, log)
}

func compileScript(path string, src []byte, observe func() Observation, log *zap.Logger) (*Script, error) {
	if log == nil {
		log = zap.NewNop()
	}
	full := string(src) + "\n" + intentDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__tick", 0)
	_ = script.Add("__self", map[string]any{})
	_ = script.Add("__out", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", path, err)
	}
	return &Script{
		path:     path,
		compiled: compiled,
		observe:  observe,
		log:      log.With(zap.String("script", path)),
	}, nil
}

// Poll runs the script for the next tick. A runtime error logs once and
// yields an idle intent from then on.
func (s *Script) Poll() component.Intent {
	if s == nil || s.compiled == nil || s.failed {
		return component.Intent{}
	}
	var obs Observation
	if s.observe != nil {
		obs = s.observe()
	}
	if err := s.run(obs); err != nil {
		s.failed = true
		s.log.Error("script failed", zap.Int64("tick", s.tick), zap.Error(err))
		return component.Intent{}
	}
	s.tick++
	return toIntent(objectToAny(s.compiled.Get("__out").Object()))
}

func (s *Script) run(obs Observation) error {
	if err := s.compiled.Set("__tick", s.tick); err != nil {
		return err
	}
	if err := s.compiled.Set("__self", observationObject(obs)); err != nil {
		return err
	}
	return s.compiled.Run()
}

func observationObject(o Observation) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":             &tengo.Float{Value: o.X},
		"y":             &tengo.Float{Value: o.Y},
		"vx":            &tengo.Float{Value: o.VX},
		"vy":            &tengo.Float{Value: o.VY},
		"grounded":      boolObject(o.Grounded),
		"dead":          boolObject(o.Dead),
		"blocked":       boolObject(o.Blocked),
		"health":        &tengo.Int{Value: int64(o.Health)},
		"nearest_enemy": &tengo.Float{Value: o.NearestEnemy},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func toIntent(v any) component.Intent {
	m, ok := v.(map[string]any)
	if !ok {
		return component.Intent{}
	}
	return component.Intent{
		Axis:          number(m["axis"]),
		JumpPressed:   truthy(m["jump"]),
		JumpHeld:      truthy(m["hold_jump"]),
		AttackPressed: truthy(m["attack"]),
	}
}

func number(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
