package object

import (
	"math/rand"
	"time"
)

// Toy lifecycle tuning.
const (
	ToyRadius       = 30.0
	SettledDuration = 5 * time.Second
	FadingDuration  = 5 * time.Second
)

// Spawn placement: toys keep spawnInset away from the side walls and settle
// somewhere in the upper targetBand of the playfield, below spawnInset.
const (
	spawnInset = 50.0
	targetBand = 0.6
)

// Toy is a falling collectible. Its stage data is only changed through the
// transition methods, so a Fading toy always carries the radius it started
// fading from.
type Toy struct {
	X, Y    float64 // Position (center)
	TargetY float64 // Height at which falling stops
	Radius  float64 // Current visual and hit radius
	Opacity float64 // 1 = opaque, drops to 0 while fading

	stage         Stage
	stageStart    time.Time
	initialRadius float64
}

// NewToy creates a falling toy at (x, 0).
func NewToy(x, targetY, radius float64, now time.Time) *Toy {
	return &Toy{
		X:          x,
		Y:          0,
		TargetY:    targetY,
		Radius:     radius,
		Opacity:    1,
		stage:      StageFalling,
		stageStart: now,
	}
}

// NewRandomToy creates a toy at a random position inside field.
func NewRandomToy(field Bounds, rng *rand.Rand, now time.Time) *Toy {
	x := spawnInset + rng.Float64()*(field.Width-2*spawnInset)
	targetY := spawnInset + rng.Float64()*(field.Height*targetBand)
	return NewToy(x, targetY, ToyRadius, now)
}

// Stage returns the current lifecycle stage.
func (t *Toy) Stage() Stage {
	return t.stage
}

// StageStart returns when the toy entered its current stage.
func (t *Toy) StageStart() time.Time {
	return t.stageStart
}

// InitialRadius returns the radius captured when the toy started fading.
// It is zero before that.
func (t *Toy) InitialRadius() float64 {
	return t.initialRadius
}

// Position returns the toy's center.
func (t *Toy) Position() Point {
	return Point{X: t.X, Y: t.Y}
}

// Update applies at most one stage step for the given time.
// Returns true once the toy has expired and must be removed.
func (t *Toy) Update(now time.Time, dropSpeed float64) (remove bool) {
	switch t.stage {
	case StageFalling:
		t.Y += dropSpeed
		if t.Y >= t.TargetY {
			t.settle(now)
		}
	case StageSettled:
		if now.Sub(t.stageStart) > SettledDuration {
			t.startFading(now)
		}
	case StageFading:
		progress := t.fadeProgress(now)
		if progress >= 1 {
			t.expire()
			return true
		}
		t.Radius = t.initialRadius * (1 - progress)
		t.Opacity = 1 - progress
	case StageExpired:
		return true
	}
	return false
}

func (t *Toy) settle(now time.Time) {
	t.stage = StageSettled
	t.stageStart = now
}

func (t *Toy) startFading(now time.Time) {
	t.stage = StageFading
	t.stageStart = now
	t.initialRadius = t.Radius
}

func (t *Toy) expire() {
	t.stage = StageExpired
	t.Radius = 0
	t.Opacity = 0
}

// fadeProgress returns the fraction of the fading stage elapsed, in [0, 1].
func (t *Toy) fadeProgress(now time.Time) float64 {
	p := float64(now.Sub(t.stageStart)) / float64(FadingDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
