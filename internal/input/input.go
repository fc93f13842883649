// Package input turns raw terminal bytes into per-tick game input.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses, so held movement is the stream of key repeats.
const keyHoldDuration = 80 * time.Millisecond

// collectRepeatWindow separates a fresh collect press from key auto-repeat.
// A space seen within this window of the previous one belongs to the same hold.
// It covers the usual auto-repeat delay (X11 defaults to 660ms) so the first
// repeat of a held space is not taken as a second press.
const collectRepeatWindow = 700 * time.Millisecond

// escapeSequenceWait is how long a trailing ESC or ESC [ waits for the rest of
// an arrow key sequence before it counts as a lone Escape press.
const escapeSequenceWait = 50 * time.Millisecond

// Intent is the held movement direction. Opposite directions cancel out.
type Intent struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Vector returns the unit step implied by the intent on each axis.
func (i Intent) Vector() (dx, dy int) {
	if i.Up {
		dy--
	}
	if i.Down {
		dy++
	}
	if i.Left {
		dx--
	}
	if i.Right {
		dx++
	}
	return dx, dy
}

// Idle reports whether the intent results in no movement.
func (i Intent) Idle() bool {
	dx, dy := i.Vector()
	return dx == 0 && dy == 0
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Enter   bool
	Escape  bool
	Space   bool // held
	Collect bool // edge: a new space press arrived since the last read
	Intent  Intent
	Number  int
	Adjust  int // net +/- presses since the last read
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState

	// pending holds an escape prefix split across reads, waiting since pendingSince.
	pending      []byte
	pendingSince time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var fresh []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	buf := fresh
	resumed := len(s.pending) > 0
	if resumed {
		buf = append(append([]byte(nil), s.pending...), fresh...)
	}
	waitFrom := s.pendingSince
	s.pending = nil

	prevSpace := s.state.space
	sawSpace := false
	adjust := 0

scan:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			rest := buf[i+1:]

			// CSI sequence: ESC [ <code>
			if len(rest) >= 2 && rest[0] == '[' && applyArrowToState(&s.state, rest[1], now) {
				i += 2
				continue
			}

			// A trailing prefix may be the start of a sequence the terminal
			// has not finished sending.
			if len(rest) == 0 || (len(rest) == 1 && rest[0] == '[') {
				if !resumed || i != 0 {
					waitFrom = now
				}
				if !closed && now.Sub(waitFrom) < escapeSequenceWait {
					s.pending = append([]byte(nil), buf[i:]...)
					s.pendingSince = waitFrom
					break scan
				}
			}
		}

		switch b {
		case ' ':
			sawSpace = true
		case '+', '=':
			adjust++
		case '-', '_':
			adjust--
		}
		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }

	in := Input{
		Quit:   held(s.state.quit) || closed,
		Enter:  held(s.state.enter),
		Escape: held(s.state.escape),
		Space:  held(s.state.space),
		Intent: Intent{
			Up:    held(s.state.up),
			Down:  held(s.state.down),
			Left:  held(s.state.left),
			Right: held(s.state.right),
		},
		Collect: sawSpace && now.Sub(prevSpace) >= collectRepeatWindow,
		Number:  -1,
		Adjust:  adjust,
		Pressed: fresh,
	}

	if held(s.state.number) {
		in.Number = s.state.numberVal
	}

	return in
}

// ResetKeyInput forgets all held keys, so a key used to leave a screen
// does not leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{numberVal: -1}
	s.pending = nil
	s.pendingSince = time.Time{}
}

// applyArrowToState records the arrow named by a CSI final byte. It reports
// false for codes that are not arrows.
func applyArrowToState(state *keyState, code byte, now time.Time) bool {
	switch code {
	case 'A':
		state.up = now
	case 'B':
		state.down = now
	case 'C':
		state.right = now
	case 'D':
		state.left = now
	default:
		return false
	}
	return true
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
