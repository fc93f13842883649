package loop

import (
	"fmt"

	"github.com/tomz197/toycatch/internal/loop/config"
	"github.com/tomz197/toycatch/internal/object"
)

// ToyView is what the renderer needs to draw one toy.
type ToyView struct {
	Position object.Point
	Radius   float64
	Stage    object.Stage
	Opacity  float64
}

// PlayerView is what the renderer needs to draw the swimmer.
type PlayerView struct {
	Position object.Point
	Width    float64
	Height   float64
	Pose     object.Pose
}

// Frame is an immutable view of a round after a step.
type Frame struct {
	Tick       uint64
	Toys       []ToyView // spawn order
	Player     PlayerView
	Score      int
	Remaining  float64
	Clock      string // MM:SS
	Difficulty config.Difficulty
	Ended      bool
}

// Renderer draws frames.
type Renderer interface {
	Render(f Frame) error
}

// FeedbackSink is told about every resolved collect attempt. It only observes.
type FeedbackSink interface {
	Feedback(delta int, at object.Point)
}

// Frame builds the render view of the session.
func (s *GameSession) Frame() (Frame, error) {
	live := s.Toys.Toys()
	toys := make([]ToyView, 0, len(live))
	for i, toy := range live {
		if toy.Stage() == object.StageExpired {
			return Frame{}, fmt.Errorf("%w: expired toy at index %d during render", ErrInternalInvariant, i)
		}
		toys = append(toys, ToyView{
			Position: toy.Position(),
			Radius:   toy.Radius,
			Stage:    toy.Stage(),
			Opacity:  toy.Opacity,
		})
	}

	return Frame{
		Tick: s.tick,
		Toys: toys,
		Player: PlayerView{
			Position: s.Player.Position(),
			Width:    s.Player.Width,
			Height:   s.Player.Height,
			Pose:     s.Player.Pose(),
		},
		Score:      s.Scorer.Score(),
		Remaining:  s.Timer.Remaining(),
		Clock:      s.Timer.String(),
		Difficulty: s.Settings.Difficulty,
		Ended:      s.Timer.Ended(),
	}, nil
}
