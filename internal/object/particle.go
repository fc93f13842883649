package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool reuses Particle objects between bursts.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark drawn when a toy is collected.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity, units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime
	Drag        float64 // Velocity kept per 1/60 s (1.0 = no drag)
}

// NewParticle creates a particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.9,
	}
	return p
}

// Release returns the particle to the pool. It must not be used afterwards.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates count particles flying out of at in random directions.
// Speed and lifetime vary per particle.
func SpawnBurst(at Point, count int, speed, lifetime float64, rng *rand.Rand) []*Particle {
	burst := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		burst = append(burst, NewParticle(at.X, at.Y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
	return burst
}

// Update moves the particle by dt seconds. Returns true once it burned out.
func (p *Particle) Update(dt float64) (remove bool) {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	drag := math.Pow(p.Drag, dt*60)
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Visible reports whether the particle is still bright enough to draw.
func (p *Particle) Visible() bool {
	return p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime >= 0.25
}

// Position returns the particle's position.
func (p *Particle) Position() Point {
	return Point{X: p.X, Y: p.Y}
}
