package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ApplyOverrides layers a level's per-instance overrides onto a prefab. Keys
// use the prefab's YAML names; absent keys keep the prefab value.
func ApplyOverrides(base ActorSpec, raw map[string]any) (ActorSpec, error) {
	if len(raw) == 0 {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, fmt.Errorf("prefabs: marshal overrides for %s: %w", base.Name, err)
	}
	out := base
	out.Signals = cloneMap(base.Signals)
	if base.Color != nil {
		c := *base.Color
		out.Color = &c
	}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, fmt.Errorf("prefabs: apply overrides to %s: %w", base.Name, err)
	}
	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
