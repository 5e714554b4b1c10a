// Package probe answers the spatial questions the combat core asks each tick:
// distances, patrol-range checks, ledge detection and hit-area overlap.
package probe

import (
	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/component"
)

// Backend is the world/physics collaborator behind a Probe.
type Backend interface {
	// CastDown reports whether a downward ray from origin of the given
	// length hits walkable ground.
	CastDown(origin cp.Vector, maxDistance float64) bool
	// Overlapping returns actors of layer whose colliders overlap box, in the
	// backend's natural order.
	Overlapping(box OBB, layer component.Layer) []component.Hittable
}

// Probe wraps distance, ground and hit-area queries against a Backend.
type Probe struct {
	backend Backend
}

func New(backend Backend) *Probe {
	return &Probe{backend: backend}
}

// DistanceTo is the Euclidean distance between a and b.
func (p *Probe) DistanceTo(a, b cp.Vector) float64 {
	return a.Distance(b)
}

// IsWithinBounds reports left.X < pos.X < right.X. Standing exactly on a
// bound counts as out of bounds so the caller re-targets.
func (p *Probe) IsWithinBounds(pos, left, right cp.Vector) bool {
	return pos.X > left.X && pos.X < right.X
}

// HasGroundBelow casts downward from origin against walkable surfaces.
func (p *Probe) HasGroundBelow(origin cp.Vector, maxDistance float64) bool {
	if p == nil || p.backend == nil || maxDistance <= 0 {
		return false
	}
	return p.backend.CastDown(origin, maxDistance)
}

// QueryHitArea returns every actor of layer overlapping the oriented box at
// origin. angle is in degrees. Dead actors are skipped.
func (p *Probe) QueryHitArea(origin, halfExtents cp.Vector, angle float64, layer component.Layer) []component.Hittable {
	if p == nil || p.backend == nil || halfExtents.X <= 0 || halfExtents.Y <= 0 {
		return nil
	}
	hits := p.backend.Overlapping(NewOBB(origin, halfExtents, angle), layer)
	out := make([]component.Hittable, 0, len(hits))
	for _, h := range hits {
		if h == nil || h.Dead() {
			continue
		}
		out = append(out, h)
	}
	return out
}
