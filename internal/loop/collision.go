package loop

import (
	"errors"
	"fmt"

	"github.com/tomz197/toycatch/internal/loop/config"
	"github.com/tomz197/toycatch/internal/object"
	"github.com/tomz197/toycatch/internal/physics"
)

// ErrInternalInvariant is returned when an expired toy is found where only
// live toys may exist.
var ErrInternalInvariant = errors.New("internal invariant violation")

// OutcomeKind tells whether a collect attempt hit a toy.
type OutcomeKind int

const (
	Missed OutcomeKind = iota
	Collected
)

// String returns "missed" or "collected".
func (k OutcomeKind) String() string {
	if k == Collected {
		return "collected"
	}
	return "missed"
}

// Outcome is the result of one collect attempt.
type Outcome struct {
	Kind   OutcomeKind
	Reward int          // Points earned, 0 on a miss
	Delta  int          // Signed score change requested by the attempt
	Stage  object.Stage // Stage of the collected toy
}

// Scorer resolves collect attempts and owns the score.
type Scorer struct {
	score       int
	missPenalty bool
}

// NewScorer creates a scorer. With missPenalty, a miss costs a point
// (never going below zero).
func NewScorer(missPenalty bool) *Scorer {
	return &Scorer{missPenalty: missPenalty}
}

// Score returns the current score.
func (s *Scorer) Score() int {
	return s.score
}


// AttemptCollect collects at most one toy touching the player. Newest toys
// are checked first and the first match wins.
func (s *Scorer) AttemptCollect(pos object.Point, hitRadius float64, toys *object.ToyManager) (Outcome, error) {
	live := toys.Toys()
	for i := len(live) - 1; i >= 0; i-- {
		toy := live[i]
		stage := toy.Stage()
		if stage == object.StageExpired {
			return Outcome{}, fmt.Errorf("%w: expired toy at index %d during collection", ErrInternalInvariant, i)
		}
		if !stage.Collectible() {
			continue
		}
		if !physics.CirclesOverlap(pos.X, pos.Y, hitRadius, toy.X, toy.Y, toy.Radius) {
			continue
		}

		reward := stageReward(stage)
		toys.RemoveAt(i)
		s.score += reward
		return Outcome{Kind: Collected, Reward: reward, Delta: reward, Stage: stage}, nil
	}

	if !s.missPenalty {
		return Outcome{Kind: Missed}, nil
	}
	s.score = max(0, s.score-config.MissPenalty)
	return Outcome{Kind: Missed, Delta: -config.MissPenalty}, nil
}

// stageReward returns the points for collecting a toy in the given stage.
func stageReward(stage object.Stage) int {
	switch stage {
	case object.StageSettled:
		return config.RewardSettled
	case object.StageFading:
		return config.RewardFading
	default:
		return 0
	}
}
