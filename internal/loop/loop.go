// Package loop runs rounds of the toy collecting game: the fixed-step driver,
// collection scoring, the round timer and the terminal frontend.
package loop

import (
	"bufio"
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/toycatch/internal/clock"
	"github.com/tomz197/toycatch/internal/draw"
	"github.com/tomz197/toycatch/internal/input"
	"github.com/tomz197/toycatch/internal/loop/config"
)

// TerminalOptions configures a terminal session.
type TerminalOptions struct {
	Settings     config.Settings   // Starting settings; the title screen may change the difficulty
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	Logger       *log.Logger       // Defaults to a discarding logger
	Clock        clock.Clock       // Defaults to the system clock
	NewTicker    TickerFunc        // Defaults to a wall clock ticker
	IdleTimeout  time.Duration     // Defaults to config.InactivityDisconnectUser
	IdleWarning  time.Duration     // Defaults to config.InactivityWarnUser
}

// terminalSession is one player at one terminal: title, rounds, game over.
type terminalSession struct {
	driver   *Driver
	renderer *TerminalRenderer
	stream   *input.Stream
	logger   *log.Logger
	clock    clock.Clock

	settings    config.Settings
	screen      Screen
	dirty       bool
	best        int
	endedAt     time.Time
	lastInput   time.Time
	idleTimeout time.Duration
	idleWarning time.Duration
	warned      bool
}

func newTerminalSession(r *bufio.Reader, w io.Writer, opts TerminalOptions) *terminalSession {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	idleTimeout := opts.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = config.InactivityDisconnectUser
	}
	idleWarning := opts.IdleWarning
	if idleWarning <= 0 || idleWarning >= idleTimeout {
		idleWarning = min(config.InactivityWarnUser, idleTimeout*3/4)
	}

	renderer := NewTerminalRenderer(w, opts.TermSizeFunc, clk)
	driver := NewDriver(Options{
		Clock:    clk,
		Renderer: renderer,
		Feedback: renderer,
		Logger:   logger,
	})

	return &terminalSession{
		driver:      driver,
		renderer:    renderer,
		stream:      input.StartStream(r),
		logger:      logger,
		clock:       clk,
		settings:    opts.Settings,
		screen:      ScreenTitle,
		dirty:       true,
		lastInput:   clk.Now(),
		idleTimeout: idleTimeout,
		idleWarning: idleWarning,
	}
}

// Run plays rounds on a terminal until the player quits, idles out, the input
// closes or ctx is cancelled. Round settings are validated before the title
// screen is shown.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts TerminalOptions) error {
	if err := opts.Settings.Validate(); err != nil {
		return err
	}

	s := newTerminalSession(r, w, opts)

	draw.HideCursor(w)
	draw.ClearScreen(w)
	defer func() {
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	scheduler := NewScheduler(config.TickInterval, opts.NewTicker)
	return scheduler.Run(ctx, s.step)
}

// step handles one tick of input and output. It reports true when the
// session is over.
func (s *terminalSession) step() (bool, error) {
	inp := input.ReadInput(s.stream)
	now := s.clock.Now()

	if inp.Quit {
		s.logger.Info("Player left", "screen", s.screen, "best", s.best)
		return true, nil
	}

	if len(inp.Pressed) > 0 {
		s.lastInput = now
		if s.warned {
			s.warned = false
			s.dirty = true
		}
	}
	idle := now.Sub(s.lastInput)
	if idle >= s.idleTimeout {
		s.logger.Info("Disconnecting inactive player", "idle", idle.Round(time.Second))
		return true, nil
	}

	var err error
	switch s.screen {
	case ScreenTitle:
		err = s.updateTitle(inp)
	case ScreenPlaying:
		err = s.updatePlaying(inp, now)
	case ScreenGameOver:
		err = s.updateGameOver(inp, now)
	}
	if err != nil {
		return false, err
	}

	if idle >= s.idleWarning {
		s.warned = true
		left := int(math.Ceil((s.idleTimeout - idle).Seconds()))
		if err := s.renderer.RenderInactive(left); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (s *terminalSession) updateTitle(inp input.Input) error {
	if levels := config.Difficulties(); inp.Number >= 1 && inp.Number <= len(levels) {
		if d := levels[inp.Number-1]; d != s.settings.Difficulty {
			s.settings.Difficulty = d
			s.dirty = true
		}
	}

	if inp.Adjust != 0 {
		if next := s.settings.StepRoundSeconds(inp.Adjust); next.RoundSeconds != s.settings.RoundSeconds {
			s.settings = next
			s.dirty = true
		}
	}

	if inp.Collect || inp.Enter {
		if err := s.driver.Start(s.settings); err != nil {
			return err
		}
		s.renderer.ClearFeedback()
		input.ResetKeyInput(s.stream)
		s.screen = ScreenPlaying
		return nil
	}

	if s.dirty {
		s.dirty = false
		return s.renderer.RenderTitle(s.settings)
	}
	return nil
}

func (s *terminalSession) updatePlaying(inp input.Input, now time.Time) error {
	if inp.Escape {
		s.driver.Stop()
		s.toTitle()
		return nil
	}

	s.driver.SetIntent(inp.Intent)
	if inp.Collect {
		s.driver.PressCollect()
	}

	ended, err := s.driver.Step()
	if err != nil {
		return err
	}
	if ended {
		s.best = max(s.best, s.driver.Session().Scorer.Score())
		s.endedAt = now
		s.screen = ScreenGameOver
		s.dirty = true
		input.ResetKeyInput(s.stream)
	}
	return nil
}

func (s *terminalSession) updateGameOver(inp input.Input, now time.Time) error {
	if now.Sub(s.endedAt) >= config.GameOverDwell && (inp.Collect || inp.Enter) {
		s.toTitle()
		return nil
	}
	if s.dirty {
		s.dirty = false
		round := s.driver.Session()
		return s.renderer.RenderGameOver(round.Scorer.Score(), s.best, round.Settings.Difficulty)
	}
	return nil
}

func (s *terminalSession) toTitle() {
	input.ResetKeyInput(s.stream)
	s.screen = ScreenTitle
	s.dirty = true
}
