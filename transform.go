package purfecfont

// Transform is a 2x3 affine matrix with entries (A, B, C, D, E, F) where
// (A B / C D) scales and shears and (E, F) translates. Matrix control records
// replace the context transform wholesale; there is no transform stack.
type Transform struct {
	A, B float64
	C, D float64
	E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// IsIdentity reports whether the transform leaves coordinates unchanged.
func (t Transform) IsIdentity() bool {
	return t.A == 1 && t.B == 0 && t.C == 0 && t.D == 1 && t.E == 0 && t.F == 0
}

// Apply returns the affine image of the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// BBox transforms the four corners of the rectangle (x0, y0)-(x1, y1) and
// returns their axis-aligned envelope as (minx, miny, maxx, maxy).
func (t Transform) BBox(x0, y0, x1, y1 float64) (float64, float64, float64, float64) {
	ax, ay := t.Apply(x0, y0)
	bx, by := t.Apply(x1, y0)
	cx, cy := t.Apply(x0, y1)
	dx, dy := t.Apply(x1, y1)

	minx := min(min(ax, bx), min(cx, dx))
	miny := min(min(ay, by), min(cy, dy))
	maxx := max(max(ax, bx), max(cx, dx))
	maxy := max(max(ay, by), max(cy, dy))
	return minx, miny, maxx, maxy
}

// Equal reports component-wise equality.
func (t Transform) Equal(o Transform) bool {
	return t == o
}
