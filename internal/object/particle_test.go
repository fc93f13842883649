package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnBurst(t *testing.T) {
	at := Point{X: 100, Y: 200}
	burst := SpawnBurst(at, 12, 100, 0.4, rand.New(rand.NewSource(5)))
	require.Len(t, burst, 12)

	for _, p := range burst {
		assert.Equal(t, at, p.Position())
		speed := math.Hypot(p.VX, p.VY)
		assert.GreaterOrEqual(t, speed, 50.0-1e-9)
		assert.LessOrEqual(t, speed, 150.0+1e-9)
		assert.GreaterOrEqual(t, p.Lifetime, 0.2)
		assert.LessOrEqual(t, p.Lifetime, 0.4)
		assert.True(t, p.Visible())
	}
}

func TestParticleUpdate(t *testing.T) {
	p := NewParticle(0, 0, 60, 0, 0.5)
	defer p.Release()

	assert.False(t, p.Update(1.0/60))
	assert.Greater(t, p.X, 0.0)
	assert.Less(t, p.VX, 60.0)

	assert.False(t, p.Update(0.4))
	assert.False(t, p.Visible())
	assert.True(t, p.Update(0.1))
}
