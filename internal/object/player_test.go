package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerMovesPerAxis(t *testing.T) {
	field := Bounds{Width: 800, Height: 600}
	p := NewPlayer(400, 300)

	p.Update(Intent{Up: true, Right: true}, field)
	assert.Equal(t, 405.0, p.X)
	assert.Equal(t, 295.0, p.Y)
	assert.Equal(t, NorthEast, p.Pose().Facing)
	assert.True(t, p.Pose().Moving)
}

func TestPlayerStaysInsideField(t *testing.T) {
	field := Bounds{Width: 800, Height: 600}
	p := NewPlayer(400, 300)
	halfW, halfH := p.Width/2, p.Height/2

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 5000; i++ {
		intent := Intent{
			Up:    rng.Intn(2) == 0,
			Down:  rng.Intn(3) == 0,
			Left:  rng.Intn(2) == 0,
			Right: rng.Intn(3) == 0,
		}
		p.Update(intent, field)
		assert.GreaterOrEqual(t, p.X, halfW)
		assert.LessOrEqual(t, p.X, field.Width-halfW)
		assert.GreaterOrEqual(t, p.Y, halfH)
		assert.LessOrEqual(t, p.Y, field.Height-halfH)
	}

	for i := 0; i < 200; i++ {
		p.Update(Intent{Left: true, Up: true}, field)
	}
	assert.Equal(t, halfW, p.X)
	assert.Equal(t, halfH, p.Y)
}

func TestPlayerSwimAnimation(t *testing.T) {
	field := Bounds{Width: 800, Height: 600}
	p := NewPlayer(400, 300)

	for i := 0; i < PlayerFrameDelay; i++ {
		p.Update(Intent{Left: true}, field)
	}
	assert.Equal(t, 1, p.Pose().Frame)
	assert.Equal(t, West, p.Pose().Facing)

	for i := 0; i < PlayerFrameDelay*PlayerSwimFrames; i++ {
		p.Update(Intent{Left: true}, field)
	}
	assert.Equal(t, 1, p.Pose().Frame, "frames cycle")

	p.Update(Intent{}, field)
	assert.False(t, p.Pose().Moving)
	assert.Equal(t, West, p.Pose().Facing, "idle keeps the last facing")
	assert.Zero(t, p.Pose().Frame)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "northwest", NorthWest.String())
	assert.Equal(t, "unknown", Direction(-1).String())
}
