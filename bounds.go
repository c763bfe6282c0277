package purfecfont

// Bounds is an axis-aligned rectangle accumulated from font operations.
// The zero value is the empty bound, which is the identity of union: the
// first extension adopts the operand outright.
type Bounds struct {
	Valid          bool
	X0, Y0, X1, Y1 float64
}

// NewBounds returns a non-empty bound covering the given rectangle.
func NewBounds(x0, y0, x1, y1 float64) Bounds {
	return Bounds{Valid: true, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Empty reports whether the bound covers nothing.
func (b Bounds) Empty() bool {
	return !b.Valid
}

// ExtendPoint grows the bound to include the point (x, y).
func (b *Bounds) ExtendPoint(x, y float64) {
	b.ExtendRect(x, y, x, y)
}

// ExtendRect grows the bound to include the rectangle (x0, y0)-(x1, y1).
func (b *Bounds) ExtendRect(x0, y0, x1, y1 float64) {
	if !b.Valid {
		*b = NewBounds(x0, y0, x1, y1)
		return
	}
	b.X0 = min(b.X0, x0)
	b.Y0 = min(b.Y0, y0)
	b.X1 = max(b.X1, x1)
	b.Y1 = max(b.Y1, y1)
}

// ExtendBounds grows the bound to include another bound. Extending by an
// empty bound is a no-op.
func (b *Bounds) ExtendBounds(o Bounds) {
	if o.Empty() {
		return
	}
	b.ExtendRect(o.X0, o.Y0, o.X1, o.Y1)
}

// Equal reports whether two bounds cover the same region. All empty bounds
// are equal regardless of their coordinate fields.
func (b Bounds) Equal(o Bounds) bool {
	if b.Empty() || o.Empty() {
		return b.Empty() == o.Empty()
	}
	return b.X0 == o.X0 && b.Y0 == o.Y0 && b.X1 == o.X1 && b.Y1 == o.Y1
}
