package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestToyFallsUntilTarget(t *testing.T) {
	toy := NewToy(200, 100, ToyRadius, epoch)
	now := epoch

	for i := 1; i < 50; i++ {
		now = now.Add(time.Second / 60)
		require.False(t, toy.Update(now, 2))
		require.Equal(t, StageFalling, toy.Stage(), "call %d", i)
	}

	now = now.Add(time.Second / 60)
	require.False(t, toy.Update(now, 2))
	assert.Equal(t, StageSettled, toy.Stage())
	assert.Equal(t, 100.0, toy.Y)
	assert.Equal(t, now, toy.StageStart())
}

func TestSettledToyStartsFadingAfterDuration(t *testing.T) {
	toy := NewToy(200, 0, ToyRadius, epoch)
	toy.Update(epoch, 2)
	require.Equal(t, StageSettled, toy.Stage())

	// Exactly the duration is not enough.
	toy.Update(epoch.Add(SettledDuration), 2)
	assert.Equal(t, StageSettled, toy.Stage())

	at := epoch.Add(5001 * time.Millisecond)
	toy.Update(at, 2)
	assert.Equal(t, StageFading, toy.Stage())
	assert.Equal(t, at, toy.StageStart())
	assert.Equal(t, ToyRadius, toy.InitialRadius())
	assert.Equal(t, ToyRadius, toy.Radius)
}

func TestFadingShrinksAndExpires(t *testing.T) {
	toy := fadingToy(t, epoch)
	start := toy.StageStart()

	require.False(t, toy.Update(start.Add(FadingDuration/2), 2))
	assert.InDelta(t, ToyRadius/2, toy.Radius, 1e-9)
	assert.InDelta(t, 0.5, toy.Opacity, 1e-9)
	assert.Equal(t, ToyRadius, toy.InitialRadius(), "initial radius is fixed once fading")

	require.True(t, toy.Update(start.Add(FadingDuration), 2))
	assert.Equal(t, StageExpired, toy.Stage())
	assert.Zero(t, toy.Radius)
	assert.Zero(t, toy.Opacity)

	// An expired toy stays expired.
	assert.True(t, toy.Update(start.Add(2*FadingDuration), 2))
}

func TestFadingProgressIsClamped(t *testing.T) {
	toy := fadingToy(t, epoch)
	start := toy.StageStart()

	// A late tick jumps straight past the end without a negative radius.
	require.True(t, toy.Update(start.Add(3*FadingDuration), 2))
	assert.GreaterOrEqual(t, toy.Radius, 0.0)

	// A time before the stage start keeps the full radius.
	toy = fadingToy(t, epoch)
	require.False(t, toy.Update(toy.StageStart().Add(-time.Second), 2))
	assert.Equal(t, ToyRadius, toy.Radius)
}

func TestStageNeverGoesBackwards(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	field := Bounds{Width: 800, Height: 600}

	for n := 0; n < 20; n++ {
		toy := NewRandomToy(field, rng, epoch)
		now := epoch
		last := toy.Stage()
		var settledAt, fadingAt time.Time

		for i := 0; i < 5000 && toy.Stage() != StageExpired; i++ {
			now = now.Add(time.Duration(rng.Intn(40)) * time.Millisecond)
			toy.Update(now, 2)

			stage := toy.Stage()
			require.GreaterOrEqual(t, stage, last)
			if stage == StageSettled && last == StageFalling {
				settledAt = now
			}
			if stage == StageFading && last == StageSettled {
				fadingAt = now
				assert.GreaterOrEqual(t, fadingAt.Sub(settledAt), SettledDuration)
			}
			if stage == StageExpired {
				assert.GreaterOrEqual(t, now.Sub(fadingAt), FadingDuration)
			}
			assert.GreaterOrEqual(t, toy.Radius, 0.0)
			last = stage
		}
		assert.Equal(t, StageExpired, toy.Stage())
	}
}

func TestNewRandomToyPlacement(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	field := Bounds{Width: 800, Height: 600}

	for i := 0; i < 500; i++ {
		toy := NewRandomToy(field, rng, epoch)
		assert.GreaterOrEqual(t, toy.X, 50.0)
		assert.LessOrEqual(t, toy.X, 750.0)
		assert.GreaterOrEqual(t, toy.TargetY, 50.0)
		assert.LessOrEqual(t, toy.TargetY, 0.6*600+50)
		assert.Zero(t, toy.Y)
		assert.Equal(t, ToyRadius, toy.Radius)
		assert.Equal(t, StageFalling, toy.Stage())
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "settled", StageSettled.String())
	assert.Equal(t, "unknown", Stage(42).String())
	assert.False(t, StageFalling.Collectible())
	assert.True(t, StageSettled.Collectible())
	assert.True(t, StageFading.Collectible())
	assert.False(t, StageExpired.Collectible())
}

// fadingToy returns a toy that entered the fading stage after settling at start.
func fadingToy(t *testing.T, start time.Time) *Toy {
	t.Helper()
	toy := NewToy(100, 0, ToyRadius, start)
	toy.Update(start, 1)
	toy.Update(start.Add(SettledDuration+time.Millisecond), 1)
	require.Equal(t, StageFading, toy.Stage())
	return toy
}
