package loop

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomz197/toycatch/internal/loop/config"
	"github.com/tomz197/toycatch/internal/object"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newManager() *object.ToyManager {
	field := object.Bounds{Width: config.FieldWidth, Height: config.FieldHeight}
	return object.NewToyManager(field, rand.New(rand.NewSource(1)))
}

// settledToy returns a toy resting at (x, y) since now.
func settledToy(t *testing.T, x, y float64, now time.Time) *object.Toy {
	t.Helper()
	toy := object.NewToy(x, y, object.ToyRadius, now)
	toy.Y = y
	toy.Update(now, 0)
	require.Equal(t, object.StageSettled, toy.Stage())
	return toy
}

// fadingToy returns a toy at (x, y) that started fading at the returned time.
func fadingToy(t *testing.T, x, y float64, now time.Time) (*object.Toy, time.Time) {
	t.Helper()
	toy := settledToy(t, x, y, now)
	fadeStart := now.Add(object.SettledDuration + time.Millisecond)
	toy.Update(fadeStart, 0)
	require.Equal(t, object.StageFading, toy.Stage())
	return toy, fadeStart
}

// expiredToy returns a toy that finished fading but was never removed.
func expiredToy(t *testing.T, x, y float64, now time.Time) *object.Toy {
	t.Helper()
	toy, fadeStart := fadingToy(t, x, y, now)
	require.True(t, toy.Update(fadeStart.Add(object.FadingDuration), 0))
	require.Equal(t, object.StageExpired, toy.Stage())
	return toy
}
