package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/toycatch/internal/loop/config"
)

// Screen is the phase a terminal session is in.
type Screen int

const (
	ScreenTitle    Screen = iota // Difficulty picker
	ScreenPlaying                // Round running
	ScreenGameOver               // Final score
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenPlaying:
		return "playing"
	case ScreenGameOver:
		return "game over"
	}
	return "unknown"
}

// RenderTitle draws the title screen with the difficulty and round length pickers.
func (r *TerminalRenderer) RenderTitle(s config.Settings) error {
	if err := r.fit(); err != nil {
		return err
	}
	centerX, centerY := r.cols/2, r.rows/2

	r.out.ClearScreen()
	r.out.WriteCentered(centerX, centerY-4, "T O Y   C A T C H")

	var picker strings.Builder
	for i, d := range config.Difficulties() {
		if i > 0 {
			picker.WriteString("   ")
		}
		if d == s.Difficulty {
			fmt.Fprintf(&picker, "[%d %s]", i+1, d)
		} else {
			fmt.Fprintf(&picker, " %d %s ", i+1, d)
		}
	}
	r.out.WriteCentered(centerX, centerY-1, picker.String())

	penalty := "off"
	if s.MissPenalty {
		penalty = "on"
	}
	r.out.WriteCentered(centerX, centerY+1, fmt.Sprintf("Round: %ds (+/- to change)   Miss penalty: %s", s.RoundSeconds, penalty))
	r.out.WriteCentered(centerX, centerY+3, "Press SPACE to Start")
	r.out.WriteCentered(centerX, centerY+6, "Controls: WASD/HJKL or Arrows to swim, SPACE to collect, ESC to give up, Q to quit")

	return r.out.Flush()
}

// RenderGameOver draws the final score of a round.
func (r *TerminalRenderer) RenderGameOver(score, best int, d config.Difficulty) error {
	if err := r.fit(); err != nil {
		return err
	}
	centerX, centerY := r.cols/2, r.rows/2

	r.out.ClearScreen()
	r.out.WriteCentered(centerX, centerY-3, "TIME UP")
	r.out.WriteCentered(centerX, centerY-1, fmt.Sprintf("Score: %d", score))
	r.out.WriteCentered(centerX, centerY, fmt.Sprintf("Best: %d (%s)", best, d))
	r.out.WriteCentered(centerX, centerY+2, "Press SPACE to Continue")

	return r.out.Flush()
}

// RenderInactive draws the idle warning over whatever is on screen.
func (r *TerminalRenderer) RenderInactive(secondsLeft int) error {
	if err := r.fit(); err != nil {
		return err
	}
	centerX, centerY := r.cols/2, r.rows/2
	r.out.WriteCentered(centerX, centerY, fmt.Sprintf(" Still there? Disconnecting in %ds ", secondsLeft))
	r.out.WriteCentered(centerX, centerY+1, " Press any key to stay ")
	return r.out.Flush()
}
