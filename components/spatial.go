package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per tick.
type Velocity struct {
	X, Y float32
}

// Bounds is the axis-aligned rectangle of the live simulation area.
// The y axis points up: Bottom < Top.
type Bounds struct {
	Left, Right, Bottom, Top float32
}

// CenteredBounds returns a width x height rectangle centered on the origin.
func CenteredBounds(width, height float32) Bounds {
	return Bounds{
		Left:   -width / 2,
		Right:  width / 2,
		Bottom: -height / 2,
		Top:    height / 2,
	}
}

// Contains reports whether (x, y) lies inside the bounds, edges included.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.Left && x <= b.Right && y >= b.Bottom && y <= b.Top
}

// Width returns Right - Left.
func (b Bounds) Width() float32 {
	return b.Right - b.Left
}

// Height returns Top - Bottom.
func (b Bounds) Height() float32 {
	return b.Top - b.Bottom
}

// Rand is the subset of *math/rand.Rand the simulation draws from.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// RandomPoint draws a point uniformly inside the bounds, independently per axis.
func (b Bounds) RandomPoint(rng Rand) (x, y float32) {
	x = b.Left + rng.Float32()*b.Width()
	y = b.Bottom + rng.Float32()*b.Height()
	return x, y
}
