package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecSpec) Vector() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r RectSpec) Rect() common.Rect {
	return common.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ActorSpec is a character prefab: body, tuning and animation rig.
type ActorSpec struct {
	Name         string            `yaml:"name"`
	Kind         string            `yaml:"kind"`
	MaxHealth    int               `yaml:"max_health"`
	StrictDamage bool              `yaml:"strict_damage"`
	Size         VecSpec           `yaml:"size"`
	Aggro        VecSpec           `yaml:"aggro"`
	GroundCast   float64           `yaml:"ground_cast"`
	Facing       string            `yaml:"facing"`
	Movement     MovementSpec      `yaml:"movement"`
	Combat       CombatSpec        `yaml:"combat"`
	Signals      map[string]string `yaml:"signals"`
	Animation    AnimationSpec     `yaml:"animation"`
	Color        *YAMLColor        `yaml:"color"`
}

type MovementSpec struct {
	Speed             float64 `yaml:"speed"`
	JumpForce         float64 `yaml:"jump_force"`
	FallMultiplier    float64 `yaml:"fall_multiplier"`
	LowJumpMultiplier float64 `yaml:"low_jump_multiplier"`
	ShapeGravity      bool    `yaml:"shape_gravity"`
}

type CombatSpec struct {
	AttackDistance      float64    `yaml:"attack_distance"`
	Cooldown            float64    `yaml:"cooldown"`
	Damage              int        `yaml:"damage"`
	HitBox              HitBoxSpec `yaml:"hit_box"`
	GroundProbe         VecSpec    `yaml:"ground_probe"`
	GroundCheckDistance float64    `yaml:"ground_check_distance"`
}

type HitBoxSpec struct {
	Offset VecSpec `yaml:"offset"`
	Size   VecSpec `yaml:"size"`
	Angle  float64 `yaml:"angle"`
}

type AnimationSpec struct {
	AttackClip string         `yaml:"attack_clip"`
	Clips      []ClipSpec     `yaml:"clips"`
	Rules      []AnimRuleSpec `yaml:"rules"`
}

type ClipSpec struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type AnimRuleSpec struct {
	Clip    string             `yaml:"clip"`
	When    map[string]bool    `yaml:"when"`
	Above   map[string]float64 `yaml:"above"`
	Below   map[string]float64 `yaml:"below"`
	Trigger string             `yaml:"trigger"`
}

// Validate checks the fields the loader cannot default.
func (s ActorSpec) Validate() error {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	switch s.Kind {
	case "enemy", "player":
	default:
		errs = append(errs, fmt.Sprintf("kind must be enemy or player, got %q", s.Kind))
	}
	if s.MaxHealth <= 0 {
		errs = append(errs, fmt.Sprintf("max_health must be positive, got %d", s.MaxHealth))
	}
	if s.Size.X <= 0 || s.Size.Y <= 0 {
		errs = append(errs, "size must be positive")
	}
	switch s.Facing {
	case "", "left", "right":
	default:
		errs = append(errs, fmt.Sprintf("facing must be left or right, got %q", s.Facing))
	}
	for key := range s.Signals {
		if !knownSignal(key) {
			errs = append(errs, fmt.Sprintf("unknown signal %q", key))
		}
	}
	if len(s.Animation.Rules) == 0 {
		errs = append(errs, "animation needs at least one rule")
	}
	if len(errs) > 0 {
		return fmt.Errorf("prefabs: actor %q: %s: %w", s.Name, strings.Join(errs, "; "), component.ErrConfiguration)
	}
	return nil
}

func knownSignal(key string) bool {
	for _, s := range component.Signals {
		if string(s) == key {
			return true
		}
	}
	return false
}

// LevelSpec lays out an arena: platforms, the player and patrolling enemies.
type LevelSpec struct {
	Name      string       `yaml:"name"`
	Gravity   float64      `yaml:"gravity"`
	Platforms []RectSpec   `yaml:"platforms"`
	Player    SpawnSpec    `yaml:"player"`
	Enemies   []EnemySpawn `yaml:"enemies"`
}

type SpawnSpec struct {
	Prefab    string         `yaml:"prefab"`
	Position  VecSpec        `yaml:"position"`
	Overrides map[string]any `yaml:"overrides"`
}

type EnemySpawn struct {
	SpawnSpec `yaml:",inline"`
	Left      VecSpec `yaml:"left_limit"`
	Right     VecSpec `yaml:"right_limit"`
}

func (s LevelSpec) Validate() error {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if len(s.Platforms) == 0 {
		errs = append(errs, "at least one platform is required")
	}
	if s.Player.Prefab == "" {
		errs = append(errs, "player prefab is required")
	}
	for i, e := range s.Enemies {
		if e.Prefab == "" {
			errs = append(errs, fmt.Sprintf("enemy %d: prefab is required", i))
		}
		if e.Left.X >= e.Right.X {
			errs = append(errs, fmt.Sprintf("enemy %d: left_limit must be left of right_limit", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("prefabs: level %q: %s: %w", s.Name, strings.Join(errs, "; "), component.ErrConfiguration)
	}
	return nil
}

func LoadLevel(name string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](levelFile(name))
	if err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}

func LoadActor(name string) (ActorSpec, error) {
	spec, err := LoadSpec[ActorSpec](prefabFile(name))
	if err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}

func levelFile(name string) string {
	if strings.HasSuffix(name, ".yaml") {
		return name
	}
	return "levels/" + name + ".yaml"
}

func prefabFile(name string) string {
	if strings.HasSuffix(name, ".yaml") {
		return name
	}
	return name + ".yaml"
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// MarshalYAML writes the color back as #rrggbbaa so overrides round-trip.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
