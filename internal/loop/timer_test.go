package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/toycatch/internal/loop/config"
)

func TestTimerEndsOnExactTick(t *testing.T) {
	timer := NewTimer(60)

	fired := 0
	firedAt := 0
	for i := 1; i <= 4000; i++ {
		if timer.Tick(config.TickSeconds) {
			fired++
			firedAt = i
		}
	}

	assert.Equal(t, 1, fired)
	assert.Equal(t, 3600, firedAt)
	assert.True(t, timer.Ended())
	assert.Zero(t, timer.Remaining())
}

func TestTimerNotEndedBeforeLastTick(t *testing.T) {
	timer := NewTimer(1)
	for i := 0; i < config.TickRate-1; i++ {
		require.False(t, timer.Tick(config.TickSeconds))
	}
	assert.False(t, timer.Ended())
	assert.InDelta(t, config.TickSeconds, timer.Remaining(), 1e-9)

	assert.True(t, timer.Tick(config.TickSeconds))
}

func TestTimerRemainingNeverNegative(t *testing.T) {
	timer := NewTimer(0.5)
	assert.True(t, timer.Tick(2))
	assert.Zero(t, timer.Remaining())
	assert.False(t, timer.Tick(2))
	assert.Zero(t, timer.Remaining())
}

func TestTimerString(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{60, "01:00"},
		{59.99, "00:59"},
		{125, "02:05"},
		{0, "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTimer(tt.seconds).String())
		})
	}
}
