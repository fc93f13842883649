package loop

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/toycatch/internal/clock"
	"github.com/tomz197/toycatch/internal/draw"
	"github.com/tomz197/toycatch/internal/loop/config"
	"github.com/tomz197/toycatch/internal/object"
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

// Toys at or above this opacity are drawn solid, fainter ones as outlines.
const solidOpacity = 0.5

// Collect sparks.
const (
	sparkCount    = 10
	sparkSpeed    = 240.0 // units per second
	sparkLifetime = 0.4   // seconds
)

// swimWiggle is the sideways tail offset per swim frame, in field units.
var swimWiggle = [object.PlayerSwimFrames]float64{0, 6, 0, -6}

// feedbackMark is a score change floating over the spot it happened.
type feedbackMark struct {
	text  string
	at    object.Point
	until time.Time
}

// TerminalRenderer draws frames and screens with half-block characters.
// It is also the FeedbackSink of its round.
type TerminalRenderer struct {
	out       *draw.ChunkWriter
	canvas    *draw.Canvas
	sizeFunc  draw.TermSizeFunc
	clock     clock.Clock
	cols      int
	rows      int
	marks     []feedbackMark
	particles []*object.Particle
	rng       *rand.Rand
}

var (
	_ Renderer     = (*TerminalRenderer)(nil)
	_ FeedbackSink = (*TerminalRenderer)(nil)
)

// NewTerminalRenderer creates a renderer writing to w. A nil sizeFunc reads
// the size of the local terminal.
func NewTerminalRenderer(w io.Writer, sizeFunc draw.TermSizeFunc, clk clock.Clock) *TerminalRenderer {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &TerminalRenderer{
		out:      draw.NewChunkWriter(w),
		canvas:   draw.NewCanvas(config.FieldWidth, config.FieldHeight, hudRows),
		sizeFunc: sizeFunc,
		clock:    clk,
		rng:      rand.New(rand.NewSource(clk.Now().UnixNano())),
	}
}

// fit refits the canvas when the terminal size changed.
func (r *TerminalRenderer) fit() error {
	cols, rows, err := r.sizeFunc()
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}
	if cols != r.cols || rows != r.rows {
		r.cols, r.rows = cols, rows
		r.canvas.Resize(cols, rows)
	}
	return nil
}

// Feedback shows a floating "+2" or "-1" for a while. Collections also throw
// sparks. Zero deltas show nothing.
func (r *TerminalRenderer) Feedback(delta int, at object.Point) {
	if delta == 0 {
		return
	}
	if delta > 0 {
		r.particles = append(r.particles, object.SpawnBurst(at, sparkCount, sparkSpeed, sparkLifetime, r.rng)...)
	}
	r.marks = append(r.marks, feedbackMark{
		text:  fmt.Sprintf("%+d", delta),
		at:    at,
		until: r.clock.Now().Add(config.FeedbackDuration),
	})
}

// Render draws one frame of a running round.
func (r *TerminalRenderer) Render(f Frame) error {
	if err := r.fit(); err != nil {
		return err
	}

	r.out.ClearScreen()
	r.canvas.Clear()

	for _, toy := range f.Toys {
		r.canvas.DrawCircle(draw.Point(toy.Position), toy.Radius, toy.Opacity >= solidOpacity)
	}
	r.drawPlayer(f.Player)
	r.drawParticles()

	if err := r.canvas.Render(r.out); err != nil {
		return err
	}
	if err := r.canvas.RenderBorder(r.out); err != nil {
		return err
	}

	r.drawHUD(f)
	r.drawMarks()

	return r.out.Flush()
}

// drawPlayer draws the swimmer as a triangle pointing along its facing.
// While swimming the tail swings from side to side.
func (r *TerminalRenderer) drawPlayer(p PlayerView) {
	dx, dy := p.Pose.Facing.Vector()
	length := math.Hypot(float64(dx), float64(dy))
	fx, fy := float64(dx)/length, float64(dy)/length // forward
	sx, sy := -fy, fx                                // side

	halfLen := p.Height / 2
	halfWidth := p.Width / 2
	wiggle := 0.0
	if p.Pose.Moving {
		wiggle = swimWiggle[p.Pose.Frame%object.PlayerSwimFrames]
	}

	c := p.Position
	tip := draw.Point{X: c.X + fx*halfLen, Y: c.Y + fy*halfLen}
	tailX := c.X - fx*halfLen + sx*wiggle
	tailY := c.Y - fy*halfLen + sy*wiggle
	left := draw.Point{X: tailX + sx*halfWidth, Y: tailY + sy*halfWidth}
	right := draw.Point{X: tailX - sx*halfWidth, Y: tailY - sy*halfWidth}

	r.canvas.DrawPolygon([]draw.Point{tip, left, right}, false)
	r.canvas.Set(draw.Point(c))
}

// drawHUD draws the score, the remaining time and the difficulty on the top row.
func (r *TerminalRenderer) drawHUD(f Frame) {
	r.out.WriteAt(2, 1, fmt.Sprintf("Score: %d", f.Score))
	r.out.WriteCentered(r.cols/2, 1, f.Clock)
	level := f.Difficulty.String()
	r.out.WriteAt(r.cols-len(level), 1, level)
}

// drawMarks draws live feedback marks above where they happened and drops
// the ones that ran out.
func (r *TerminalRenderer) drawMarks() {
	now := r.clock.Now()
	live := r.marks[:0]
	for _, m := range r.marks {
		if !now.Before(m.until) {
			continue
		}
		live = append(live, m)
		col, row := r.canvas.FieldToTerminal(draw.Point(m.at))
		r.out.WriteCentered(col, max(hudRows+1, row-2), m.text)
	}
	clear(r.marks[len(live):])
	r.marks = live
}

// drawParticles advances the sparks by one tick and draws the bright ones.
func (r *TerminalRenderer) drawParticles() {
	live := r.particles[:0]
	for _, p := range r.particles {
		if p.Update(config.TickSeconds) {
			p.Release()
			continue
		}
		live = append(live, p)
		if p.Visible() {
			r.canvas.Set(draw.Point(p.Position()))
		}
	}
	clear(r.particles[len(live):])
	r.particles = live
}

// ClearFeedback forgets all feedback marks and sparks.
func (r *TerminalRenderer) ClearFeedback() {
	r.marks = r.marks[:0]
	for _, p := range r.particles {
		p.Release()
	}
	r.particles = r.particles[:0]
}
