package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

type Particle struct {
	Pos mgl64.Vec3
	Vel mgl64.Vec3
}

// Fire is the cosmetic burst shown on a mat landing. The particle slice is
// allocated once and never resized; deactivating only hides it, the next
// Ignite reinitializes every particle in place.
type Fire struct {
	Active    bool
	Origin    mgl64.Vec3
	Particles []Particle
	gravity   float64
}

func NewFire(tn Tuning) *Fire {
	return &Fire{
		Particles: make([]Particle, tn.FireParticles),
		gravity:   tn.FireGravity,
	}
}

// Ignite starts the burst at the given point, scattering particles in a
// small horizontal disc with upward randomized velocities.
func (f *Fire) Ignite(at mgl64.Vec3, rng *rand.Rand) {
	f.Active = true
	f.Origin = at
	for i := range f.Particles {
		p := &f.Particles[i]
		p.Pos = mgl64.Vec3{
			at.X() + rng.Float64()*0.5 - 0.25,
			at.Y(),
			at.Z() + rng.Float64()*0.5 - 0.25,
		}
		p.Vel = mgl64.Vec3{
			rng.Float64()*2 - 1,
			2 + rng.Float64()*3,
			rng.Float64()*2 - 1,
		}
	}
}

// Step integrates the particles while active. Particle gravity is heavier
// than the athlete's, purely for looks.
func (f *Fire) Step(dt float64) {
	if !f.Active {
		return
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Vel[1] -= f.gravity * dt
	}
}

func (f *Fire) Extinguish() { f.Active = false }
