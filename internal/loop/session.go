package loop

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/toycatch/internal/loop/config"
	"github.com/tomz197/toycatch/internal/object"
)

// GameSession holds all mutable state of one round.
type GameSession struct {
	ID       string
	Settings config.Settings
	Field    object.Bounds
	Toys     *object.ToyManager
	Scorer   *Scorer
	Timer    *Timer
	Player   *object.Player
	Spawner  *object.ToySpawner
	Started  time.Time
	tick     uint64
}

// NewGameSession creates a fresh round: no toys, zero score, a full timer,
// the player centered and the spawn cadence starting at now.
func NewGameSession(settings config.Settings, now time.Time, rng *rand.Rand) *GameSession {
	field := object.Bounds{Width: config.FieldWidth, Height: config.FieldHeight}
	center := field.Center()
	return &GameSession{
		ID:       uuid.NewString(),
		Settings: settings,
		Field:    field,
		Toys:     object.NewToyManager(field, rng),
		Scorer:   NewScorer(settings.MissPenalty),
		Timer:    NewTimer(float64(settings.RoundSeconds)),
		Player:   object.NewPlayer(center.X, center.Y),
		Spawner:  object.NewToySpawner(settings.Tuning().SpawnInterval, now),
		Started:  now,
	}
}

// HitRadius returns the player's collision radius under the round's policy.
func (s *GameSession) HitRadius() float64 {
	return s.Settings.HitRadius.Of(s.Player.Width, s.Player.Height)
}

// Tick returns the number of steps played.
func (s *GameSession) Tick() uint64 {
	return s.tick
}
