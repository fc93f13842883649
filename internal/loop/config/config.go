// Package config centralizes all tunable game parameters and the per-round
// settings surface.
package config

import "time"

// Playfield - the logical coordinate space of the game.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Tick rate of the game loop.
const (
	TickRate     = 60
	TickInterval = time.Second / TickRate
	TickSeconds  = 1.0 / TickRate
)

// Scoring
const (
	RewardSettled = 2
	RewardFading  = 1
	MissPenalty   = 1
)

// Round
const (
	DefaultRoundSeconds = 60
)

// RoundChoices are the round lengths offered on the title screen, in seconds.
var RoundChoices = []int{30, 60, 90, 120, 180}

// Feedback
const (
	FeedbackDuration = 500 * time.Millisecond
)

// Game over screen ignores input this long, so a late key press does not
// skip it.
const (
	GameOverDwell = time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
