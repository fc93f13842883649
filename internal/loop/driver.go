package loop

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/toycatch/internal/clock"
	"github.com/tomz197/toycatch/internal/loop/config"
	"github.com/tomz197/toycatch/internal/object"
)

// RunState is the lifecycle of a Driver.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateEnded
	StateStopped
)

// String returns the state name.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Options configures a Driver. Zero values are usable.
type Options struct {
	Clock      clock.Clock  // Defaults to the system clock
	Renderer   Renderer     // Optional
	Feedback   FeedbackSink // Optional
	Logger     *log.Logger  // Defaults to a discarding logger
	Rand       *rand.Rand   // Overrides the seed from the settings
	OnRoundEnd func(s *GameSession)
}

// intent bits packed into one atomic word.
const (
	intentUp uint32 = 1 << iota
	intentDown
	intentLeft
	intentRight
)

// Driver runs one round at a time: it advances the world a fixed step per
// call to Step and owns the input mailboxes written by the frontend.
//
// Step, Start and Stop must be called from one goroutine. SetIntent,
// PressCollect, State, Session and Frame may be called from any goroutine.
type Driver struct {
	clock      clock.Clock
	renderer   Renderer
	feedback   FeedbackSink
	logger     *log.Logger
	rand       *rand.Rand
	onRoundEnd func(s *GameSession)

	// stepMu serializes world mutation in Step against Frame. Lock it before mu.
	stepMu sync.Mutex

	mu      sync.Mutex // guards state and the session pointer
	state   RunState
	session *GameSession

	intent  atomic.Uint32
	collect atomic.Bool
}

// NewDriver creates an idle driver.
func NewDriver(opts Options) *Driver {
	d := &Driver{
		clock:      opts.Clock,
		renderer:   opts.Renderer,
		feedback:   opts.Feedback,
		logger:     opts.Logger,
		rand:       opts.Rand,
		onRoundEnd: opts.OnRoundEnd,
	}
	if d.clock == nil {
		d.clock = clock.System{}
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d
}

// Start validates settings and begins a fresh round, discarding any previous
// one. On error the driver is left untouched.
func (d *Driver) Start(settings config.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	now := d.clock.Now()
	rng := d.rand
	if rng == nil {
		seed := settings.Seed
		if seed == 0 {
			seed = now.UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	session := NewGameSession(settings, now, rng)

	d.mu.Lock()
	d.session = session
	d.state = StateRunning
	d.mu.Unlock()

	d.intent.Store(0)
	d.collect.Store(false)

	d.logger.Info("Round started",
		"session", session.ID,
		"difficulty", settings.Difficulty,
		"round", settings.RoundDuration(),
		"penalty", settings.MissPenalty,
	)
	return nil
}

// Stop abandons the running round. The final frame is not rendered again.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateRunning {
		return
	}
	d.state = StateStopped
	d.logger.Info("Round stopped", "session", d.session.ID, "score", d.session.Scorer.Score())
}

// SetIntent replaces the held movement intent used by the next step.
func (d *Driver) SetIntent(intent object.Intent) {
	var bits uint32
	if intent.Up {
		bits |= intentUp
	}
	if intent.Down {
		bits |= intentDown
	}
	if intent.Left {
		bits |= intentLeft
	}
	if intent.Right {
		bits |= intentRight
	}
	d.intent.Store(bits)
}

// Intent returns the held movement intent.
func (d *Driver) Intent() object.Intent {
	bits := d.intent.Load()
	return object.Intent{
		Up:    bits&intentUp != 0,
		Down:  bits&intentDown != 0,
		Left:  bits&intentLeft != 0,
		Right: bits&intentRight != 0,
	}
}

// PressCollect records a collect edge. Presses before the next step collapse
// into one attempt.
func (d *Driver) PressCollect() {
	d.collect.Store(true)
}

// Step advances the running round by one tick. It returns ended=true on the
// tick the timer runs out. Outside a running round it does nothing.
func (d *Driver) Step() (ended bool, err error) {
	d.mu.Lock()
	if d.state != StateRunning {
		d.mu.Unlock()
		return false, nil
	}
	s := d.session
	d.mu.Unlock()

	frame, ended, err := d.advance(s)
	if err != nil {
		d.fail(err)
		return false, err
	}

	if ended && d.onRoundEnd != nil {
		d.onRoundEnd(s)
	}

	if d.renderer != nil {
		if err := d.renderer.Render(frame); err != nil {
			return ended, fmt.Errorf("failed to render frame: %w", err)
		}
	}

	return ended, nil
}

// advance runs one tick of world updates under stepMu and returns the frame
// to render, if a renderer is set.
func (d *Driver) advance(s *GameSession) (frame Frame, ended bool, err error) {
	d.stepMu.Lock()
	defer d.stepMu.Unlock()

	now := d.clock.Now()
	tuning := s.Settings.Tuning()
	s.tick++

	s.Player.Update(d.Intent(), s.Field)

	if d.collect.Swap(false) {
		pos := s.Player.Position()
		outcome, err := s.Scorer.AttemptCollect(pos, s.HitRadius(), s.Toys)
		if err != nil {
			return Frame{}, false, err
		}
		d.logger.Debug("Collect attempt",
			"outcome", outcome.Kind,
			"stage", outcome.Stage,
			"delta", outcome.Delta,
			"score", s.Scorer.Score(),
		)
		if d.feedback != nil {
			d.feedback.Feedback(outcome.Delta, pos)
		}
	}

	if s.Spawner.Due(now) {
		toy := s.Toys.Spawn(now)
		d.logger.Debug("Toy spawned", "x", toy.X, "targetY", toy.TargetY, "live", s.Toys.Len())
	}

	s.Toys.Advance(now, tuning.DropSpeed)

	if s.Timer.Tick(config.TickSeconds) {
		ended = true
		d.mu.Lock()
		d.state = StateEnded
		d.mu.Unlock()
		d.logger.Info("Round ended",
			"session", s.ID,
			"score", s.Scorer.Score(),
			"ticks", s.tick,
			"duration", now.Sub(s.Started).Round(time.Millisecond),
		)
	}

	if d.renderer != nil {
		frame, err = s.Frame()
		if err != nil {
			return Frame{}, false, err
		}
	}
	return frame, ended, nil
}

// fail stops the round after an internal error.
func (d *Driver) fail(err error) {
	d.mu.Lock()
	d.state = StateStopped
	d.mu.Unlock()
	d.logger.Error("Round aborted", "err", err)
}

// State returns the driver's lifecycle state.
func (d *Driver) State() RunState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Session returns the current or most recent round, or nil before the first
// Start.
func (d *Driver) Session() *GameSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

// Frame returns the render view of the current round.
func (d *Driver) Frame() (Frame, error) {
	s := d.Session()
	if s == nil {
		return Frame{}, errors.New("no round has been started")
	}
	d.stepMu.Lock()
	defer d.stepMu.Unlock()
	return s.Frame()
}
