package object

import "github.com/tomz197/toycatch/internal/physics"

// Swimmer sprite geometry and movement.
const (
	PlayerFrameWidth  = 27
	PlayerFrameHeight = 33
	PlayerScale       = 2
	PlayerSpeed       = 5.0 // units per tick, per axis
	PlayerFrameDelay  = 6   // ticks per swim animation frame
	PlayerSwimFrames  = 4
)

// Direction is one of the eight facings of the swimmer.
type Direction int

const (
	South Direction = iota
	SouthWest
	West
	NorthWest
	North
	NorthEast
	East
	SouthEast
)

var directionNames = [...]string{"south", "southwest", "west", "northwest", "north", "northeast", "east", "southeast"}

// String returns the compass name of the direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Vector returns the unit step of the direction (y grows downwards).
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	}
	return 0, 0
}

// directionOf maps a non-zero step to its facing.
func directionOf(dx, dy int) Direction {
	for d := South; d <= SouthEast; d++ {
		if x, y := d.Vector(); x == dx && y == dy {
			return d
		}
	}
	return South
}

// Pose is the swimmer's animation state.
type Pose struct {
	Facing Direction
	Moving bool
	Frame  int // swim frame, 0..PlayerSwimFrames-1; 0 while idle
}

// Player is the swimmer steered by the held movement intent.
type Player struct {
	X, Y          float64 // Position (center)
	Width, Height float64 // Bounding box
	Speed         float64

	pose        Pose
	frameTicker int
}

// NewPlayer creates a swimmer centered at (x, y) facing south.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Width:  PlayerFrameWidth * PlayerScale,
		Height: PlayerFrameHeight * PlayerScale,
		Speed:  PlayerSpeed,
		pose:   Pose{Facing: South},
	}
}

// Update moves the swimmer one tick along intent, keeping its whole bounding
// box inside field, and advances the swim animation.
func (p *Player) Update(intent Intent, field Bounds) {
	dx, dy := intent.Vector()

	halfW := p.Width / 2
	halfH := p.Height / 2
	p.X = physics.Clamp(p.X+float64(dx)*p.Speed, halfW, field.Width-halfW)
	p.Y = physics.Clamp(p.Y+float64(dy)*p.Speed, halfH, field.Height-halfH)

	if dx == 0 && dy == 0 {
		// Idle keeps the last facing.
		p.pose.Moving = false
		p.pose.Frame = 0
		p.frameTicker = 0
		return
	}

	p.pose.Facing = directionOf(dx, dy)
	p.pose.Moving = true
	p.frameTicker++
	if p.frameTicker >= PlayerFrameDelay {
		p.frameTicker = 0
		p.pose.Frame = (p.pose.Frame + 1) % PlayerSwimFrames
	}
}

// Pose returns the current animation state.
func (p *Player) Pose() Pose {
	return p.pose
}

// Position returns the swimmer's center.
func (p *Player) Position() Point {
	return Point{X: p.X, Y: p.Y}
}
