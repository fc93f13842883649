package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Point is a position in field coordinates.
type Point struct {
	X, Y float64
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Shapes are given in field coordinates and scaled uniformly so
// the whole field fits the terminal with its aspect ratio kept.
type Canvas struct {
	fieldWidth  float64
	fieldHeight float64
	topRows     int // terminal rows reserved above the canvas (HUD)

	cols   int     // canvas columns
	rows   int     // canvas rows
	subH   int     // rows * 2
	scale  float64 // sub-pixels per field unit, both axes
	pixels []bool  // [y * cols + x]

	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
	scanBuf   []float64
	polyBuf   []Point
}

// NewCanvas creates a canvas for a field of the given size. topRows terminal
// rows are left free above it. Call Resize before drawing.
func NewCanvas(fieldWidth, fieldHeight float64, topRows int) *Canvas {
	return &Canvas{
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
		topRows:     topRows,
	}
}

// Resize fits the field into a terminal of termCols x termRows cells,
// centering it in the space left over.
func (c *Canvas) Resize(termCols, termRows int) {
	availRows := max(0, termRows-c.topRows)
	termCols = max(0, termCols)

	scale := math.Min(float64(termCols)/c.fieldWidth, float64(availRows*2)/c.fieldHeight)
	cols := min(termCols, int(math.Ceil(c.fieldWidth*scale)))
	rows := min(availRows, int(math.Ceil(c.fieldHeight*scale/2)))

	if cols != c.cols || rows != c.rows {
		c.pixels = make([]bool, cols*rows*2)
	}
	c.cols = cols
	c.rows = rows
	c.subH = rows * 2
	c.scale = scale
	c.offsetCol = (termCols - cols) / 2
	c.offsetRow = c.topRows + (availRows-rows)/2
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a sub-pixel; out of range is ignored.
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subH {
		c.pixels[y*c.cols+x] = true
	}
}

// pixel reports whether a sub-pixel is set.
func (c *Canvas) pixel(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.subH {
		return false
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scale)), int(math.Round(p.Y * c.scale))
}

// Set sets the sub-pixel under a field position.
func (c *Canvas) Set(p Point) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawCircle draws a circle. Radii that scale below one sub-pixel draw a dot.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool) {
	cx := center.X * c.scale
	cy := center.Y * c.scale
	r := radius * c.scale

	if r < 0.5 {
		c.Set(center)
		return
	}

	if filled {
		yStart := int(math.Floor(cy - r))
		yEnd := int(math.Ceil(cy + r))
		for y := yStart; y <= yEnd; y++ {
			dy := float64(y) - cy
			if dy*dy > r*r {
				continue
			}
			half := math.Sqrt(r*r - dy*dy)
			for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx+half)); x++ {
				c.setPixel(x, y)
			}
		}
		return
	}

	steps := max(12, int(2*math.Pi*r*2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.setPixel(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))))
	}
}

// DrawPolygon draws a polygon outline, filling the interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.polyBuf) < len(points) {
		c.polyBuf = make([]Point, len(points))
	}
	scaled := c.polyBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scale, Y: p.Y * c.scale}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	n := len(scaled)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.scanBuf[:0]
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.scanBuf = xs

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the set cells to w as positioned half-block characters.
// Empty cells are skipped; callers clear the screen first.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.rows; row++ {
		top := row * 2 * c.cols
		bottom := top + c.cols
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch upper, lower := c.pixels[top+col], c.pixels[bottom+col]; {
			case upper && lower:
				ch = BlockFull
			case upper:
				ch = BlockUpperHalf
			case lower:
				ch = BlockLowerHalf
			default:
				continue
			}
			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			c.renderBuf.WriteRune(ch)
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a frame around the canvas on the sides that have room.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.cols == 0 || c.rows == 0 {
		return nil
	}
	hasSides := c.offsetCol >= 1
	hasEnds := c.offsetRow-c.topRows >= 1

	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1

	c.renderBuf.Reset()
	if hasEnds {
		bar := strings.Repeat("─", c.cols)
		if hasSides {
			c.moveTo(left, top)
			c.renderBuf.WriteString("┌" + bar + "┐")
			c.moveTo(left, bottom)
			c.renderBuf.WriteString("└" + bar + "┘")
		} else {
			c.moveTo(left+1, top)
			c.renderBuf.WriteString(bar)
			c.moveTo(left+1, bottom)
			c.renderBuf.WriteString(bar)
		}
	}
	if hasSides {
		for row := top + 1; row < bottom; row++ {
			c.moveTo(left, row)
			c.renderBuf.WriteString("│")
			c.moveTo(right, row)
			c.renderBuf.WriteString("│")
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// FieldToTerminal converts a field position to a 1-based terminal cell.
func (c *Canvas) FieldToTerminal(p Point) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// Cols returns the canvas width in terminal columns.
func (c *Canvas) Cols() int {
	return c.cols
}

// Rows returns the canvas height in terminal rows.
func (c *Canvas) Rows() int {
	return c.rows
}

// Offset returns the 0-based terminal column and row the canvas starts after.
func (c *Canvas) Offset() (col, row int) {
	return c.offsetCol, c.offsetRow
}

// Scale returns the number of sub-pixels per field unit.
func (c *Canvas) Scale() float64 {
	return c.scale
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
