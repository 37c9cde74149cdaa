// Package lod classifies forest instances into render tiers each frame:
// frustum cull, distance classification with hysteresis crossfade bands,
// and compaction into dense per-tier draw buffers.
package lod

import (
	"github.com/tibogot/greenwood/internal/engine/camera"
	"github.com/tibogot/greenwood/pkg/math"
)

// Tier identifies a level of detail.
type Tier int

const (
	// TierNear renders the real mesh.
	TierNear Tier = iota
	// TierMid renders the multi-sprite impostor.
	TierMid
	// TierFar renders the single-sprite impostor.
	TierFar

	// TierCount is the number of tiers.
	TierCount
)

// Instance is one placed object. The table is immutable after the forest is
// built: changing placement means rebuilding, not mutating.
type Instance struct {
	Position  math.Vec3
	RotationY float32
	Scale     float32

	// Center and Radius are the world-space bounding sphere, derived from
	// the bake sphere by the instance transform.
	Center math.Vec3
	Radius float32
}

// Params are the runtime-mutable LOD settings.
type Params struct {
	// MidDistance is the Near->Mid switch distance, FarDistance the
	// Mid->Far one. FadeRange is the hysteresis band half-width around each.
	MidDistance float32
	FarDistance float32
	FadeRange   float32

	// AlphaClamp is the impostor alpha cutout threshold.
	AlphaClamp float32

	// TierVisible toggles each tier without re-baking or re-placing.
	TierVisible [TierCount]bool
}

// DefaultParams returns viewer defaults.
func DefaultParams() Params {
	return Params{
		MidDistance: 60,
		FarDistance: 220,
		FadeRange:   8,
		AlphaClamp:  0.35,
		TierVisible: [TierCount]bool{true, true, true},
	}
}

// TierBuffer is the dense per-tier output of one Update. Slot order is
// unstable across frames: instances are fungible for rendering, so the
// buffer is an arena indexed per frame, never an identity mapping.
type TierBuffer struct {
	// Transforms holds 16 floats (column-major Mat4) per instance.
	Transforms []float32
	// Centers holds 3 floats (world bounding center) per instance.
	Centers []float32
	// Fades holds one signed coverage value per instance. s >= 0 keeps
	// pixels whose dither value is below s (fading out, 1 = fully shown);
	// s < 0 keeps pixels whose dither value is at or above 1+s (fading in).
	// The two sides of a crossfade band partition the dither domain, so no
	// pixel is ever covered by neither tier.
	Fades []float32

	count int
}

// Count returns the number of instances compacted into the buffer.
func (b *TierBuffer) Count() int {
	return b.count
}

func (b *TierBuffer) reset() {
	b.Transforms = b.Transforms[:0]
	b.Centers = b.Centers[:0]
	b.Fades = b.Fades[:0]
	b.count = 0
}

func (b *TierBuffer) push(inst *Instance, fade float32) {
	m := math.TRS(inst.Position, inst.RotationY, inst.Scale)
	b.Transforms = append(b.Transforms, m[:]...)
	b.Centers = append(b.Centers, inst.Center.X, inst.Center.Y, inst.Center.Z)
	b.Fades = append(b.Fades, fade)
	b.count++
}

// Manager owns the instance table and runs the per-frame classification.
// Update must complete before the frame's draws read the tier buffers; it
// is stateless across frames apart from the advancing dither phase.
type Manager struct {
	instances []Instance
	params    Params
	buffers   [TierCount]TierBuffer
	phase     float32
}

// NewManager creates a manager over an instance table.
func NewManager(instances []Instance, params Params) *Manager {
	return &Manager{
		instances: instances,
		params:    sanitize(params),
	}
}

// sanitize keeps the band edges ordered. A negative fade range would put
// nearOut below nearIn and open a distance gap belonging to no tier.
func sanitize(p Params) Params {
	if p.FadeRange < 0 {
		p.FadeRange = 0
	}
	return p
}

// Params returns the current LOD parameters.
func (m *Manager) Params() Params {
	return m.params
}

// SetParams replaces all LOD parameters.
func (m *Manager) SetParams(p Params) {
	m.params = sanitize(p)
}

// SetDistances updates the tier switch distances.
func (m *Manager) SetDistances(mid, far float32) {
	m.params.MidDistance = mid
	m.params.FarDistance = far
}

// SetFadeRange updates the crossfade band half-width. Negative values
// clamp to zero, which degrades to hard tier switches.
func (m *Manager) SetFadeRange(fade float32) {
	if fade < 0 {
		fade = 0
	}
	m.params.FadeRange = fade
}

// SetAlphaClamp updates the impostor alpha cutout threshold.
func (m *Manager) SetAlphaClamp(a float32) {
	m.params.AlphaClamp = a
}

// SetTierVisible toggles one tier.
func (m *Manager) SetTierVisible(t Tier, visible bool) {
	m.params.TierVisible[t] = visible
}

// InstanceCount returns the total table size.
func (m *Manager) InstanceCount() int {
	return len(m.instances)
}

// Tier returns the compacted buffer for a tier, valid until the next Update.
func (m *Manager) Tier(t Tier) *TierBuffer {
	return &m.buffers[t]
}

// Counts returns the per-tier visible instance counts from the last Update.
func (m *Manager) Counts() [TierCount]int {
	return [TierCount]int{
		m.buffers[TierNear].count,
		m.buffers[TierMid].count,
		m.buffers[TierFar].count,
	}
}

// DitherPhase returns the temporal dither offset for this frame, in [0,1).
func (m *Manager) DitherPhase() float32 {
	return m.phase
}

// Update reclassifies every instance against the camera. This is a full
// O(N) scan; a spatial partition would be a drop-in performance substitution
// with the same observable behavior if tables grow past tens of thousands.
func (m *Manager) Update(camPos math.Vec3, frustum *camera.Frustum) {
	for t := range m.buffers {
		m.buffers[t].reset()
	}

	p := m.params
	nearOut := p.MidDistance + p.FadeRange
	nearIn := p.MidDistance - p.FadeRange
	farOut := p.FarDistance + p.FadeRange
	farIn := p.FarDistance - p.FadeRange

	// Squared band edges for the cheap classification compare; the sqrt is
	// only paid inside a fade band.
	nearOutSq := nearOut * nearOut
	nearInSq := nearIn * nearIn
	farOutSq := farOut * farOut
	farInSq := farIn * farIn

	for i := range m.instances {
		inst := &m.instances[i]

		// Frustum cull first: cheapest rejection.
		if !frustum.IntersectsSphere(inst.Center, inst.Radius) {
			continue
		}

		distSq := camPos.DistanceSq(inst.Center)

		// Near tier: full mesh until the Near->Mid band, fading out inside it.
		if p.TierVisible[TierNear] && distSq < nearOutSq {
			fade := float32(1)
			if distSq > nearInSq {
				t := bandProgress(distSq, nearIn, p.FadeRange)
				fade = 1 - t
			}
			m.buffers[TierNear].push(inst, fade)
		}

		// Mid tier: fades in through the Near->Mid band, out through Mid->Far.
		if p.TierVisible[TierMid] && distSq >= nearInSq && distSq < farOutSq {
			fade := float32(1)
			if distSq < nearOutSq {
				t := bandProgress(distSq, nearIn, p.FadeRange)
				fade = -t // incoming side of the band
			} else if distSq > farInSq {
				t := bandProgress(distSq, farIn, p.FadeRange)
				fade = 1 - t
			}
			m.buffers[TierMid].push(inst, fade)
		}

		// Far tier: fades in through the Mid->Far band, never out.
		if p.TierVisible[TierFar] && distSq >= farInSq {
			fade := float32(1)
			if distSq < farOutSq {
				t := bandProgress(distSq, farIn, p.FadeRange)
				fade = -t
			}
			m.buffers[TierFar].push(inst, fade)
		}
	}

	m.phase = math.Fract(m.phase + goldenRatioConjugate)
}

// bandProgress maps a squared distance inside a fade band to [0,1] progress
// across the band starting at bandStart with width 2*fadeRange.
func bandProgress(distSq, bandStart, fadeRange float32) float32 {
	dist := math.Sqrt(distSq)
	return math.Clamp((dist-bandStart)/(2*fadeRange), 0, 1)
}
