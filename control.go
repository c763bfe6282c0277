package purfecfont

// Control is one decoded font control record. Every record carries the byte
// span of the source buffer it was parsed from: start inclusive, end
// exclusive (the cursor position immediately after decoding). The synthetic
// records injected by spacing expansion carry zero-width spans.
//
// SizeIn reports the record's metric tuple for the given context. Apply
// performs the record's state changes and the shared bookkeeping: the metric
// rectangle is unioned into the context bounds at the cursor and the cursor
// advances by the metric offsets. Paint is Apply plus any drawing through
// the renderer hooks.
type Control interface {
	Span() (start, end int)
	SizeIn(ctx *Context) Metrics
	Apply(ctx *Context) error
	Paint(ctx *Context) error
}

// span is the byte-span bookkeeping shared by all records.
type span struct {
	start, end int
}

func (s span) Span() (int, int) {
	return s.start, s.end
}

// StringControl is a printable run. Consecutive printable bytes always
// collapse into a single StringControl during parsing.
type StringControl struct {
	span
	Text []byte
}

func (c *StringControl) SizeIn(ctx *Context) Metrics {
	m := ctx.fontBounds(c.Text)
	if !ctx.Transform.IsIdentity() {
		m.XLeft, m.YBottom, m.XRight, m.YTop = ctx.Transform.BBox(m.XLeft, m.YBottom, m.XRight, m.YTop)
		// The cursor advance is the transformed offset, not the envelope:
		// a glyph plotted shifted must not shift every following glyph.
		m.XOffset, m.YOffset = ctx.Transform.Apply(m.XOffset, m.YOffset)
	}
	return m
}

func (c *StringControl) Apply(ctx *Context) error {
	ctx.advance(c.SizeIn(ctx))
	return nil
}

func (c *StringControl) Paint(ctx *Context) error {
	m := c.SizeIn(ctx)
	ctx.underlineGap(m)
	ctx.renderer().FontPaint(ctx, c.Text)
	ctx.advance(m)
	return nil
}

// MoveControl advances the cursor without painting (opcodes 9 and 11).
type MoveControl struct {
	span
	DX, DY int
}

func (c *MoveControl) SizeIn(ctx *Context) Metrics {
	return Metrics{XOffset: float64(c.DX), YOffset: float64(c.DY)}
}

func (c *MoveControl) Apply(ctx *Context) error {
	ctx.advance(c.SizeIn(ctx))
	return nil
}

func (c *MoveControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}

// MoveCharControl is the synthetic per-character move injected by spacing
// expansion. Unlike a plain move it underlines the gap it advances over.
type MoveCharControl struct {
	MoveControl
}

func (c *MoveCharControl) Paint(ctx *Context) error {
	m := c.SizeIn(ctx)
	ctx.underlineGap(m)
	ctx.advance(m)
	return nil
}

// MoveSpaceControl is the synthetic per-word move injected by spacing
// expansion, underlining the gap it advances over.
type MoveSpaceControl struct {
	MoveControl
}

func (c *MoveSpaceControl) Paint(ctx *Context) error {
	m := c.SizeIn(ctx)
	ctx.underlineGap(m)
	ctx.advance(m)
	return nil
}

// GCOLControl changes the palette-indexed colours (opcodes 17 and 18).
// Fields are -1 when the record does not carry them.
type GCOLControl struct {
	span
	FG, BG int
	Offset int
}

func (c *GCOLControl) SizeIn(ctx *Context) Metrics {
	return Metrics{}
}

func (c *GCOLControl) Apply(ctx *Context) error {
	var sel ColourSelection
	if c.FG >= 0 {
		sel.HasFG, sel.FG = true, c.FG
	}
	if c.BG >= 0 {
		sel.HasBG, sel.BG = true, c.BG
	}
	if c.Offset >= 0 {
		sel.HasOffset, sel.Offset = true, c.Offset
	}
	ctx.SelectColour(sel)
	ctx.advance(Metrics{})
	return nil
}

func (c *GCOLControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}

// RGBControl changes the colours to packed RGB values (opcode 19).
type RGBControl struct {
	span
	FG, BG uint32
	Offset int
}

func (c *RGBControl) SizeIn(ctx *Context) Metrics {
	return Metrics{}
}

func (c *RGBControl) Apply(ctx *Context) error {
	ctx.SelectColour(ColourSelection{
		HasFGPal: true, FGPal: c.FG,
		HasBGPal: true, BGPal: c.BG,
		HasOffset: true, Offset: c.Offset,
	})
	ctx.advance(Metrics{})
	return nil
}

func (c *RGBControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}

// UnderlineControl changes the underline position and thickness (opcode 25).
// Pos and Thickness are in 1/256ths of the font cell height; both zero
// disables underlining.
type UnderlineControl struct {
	span
	Pos       int
	Thickness int
}

func (c *UnderlineControl) SizeIn(ctx *Context) Metrics {
	return Metrics{}
}

func (c *UnderlineControl) Apply(ctx *Context) error {
	m := ctx.fontBounds(nil)
	multiplier := m.YTop / 256
	ctx.UnderlinePos = float64(c.Pos) * multiplier
	ctx.UnderlineThickness = float64(c.Thickness) * multiplier
	ctx.advance(Metrics{})
	return nil
}

func (c *UnderlineControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}

// FontControl switches the active font (opcode 26).
type FontControl struct {
	span
	Handle int
}

func (c *FontControl) SizeIn(ctx *Context) Metrics {
	return Metrics{}
}

func (c *FontControl) Apply(ctx *Context) error {
	if err := ctx.SelectFont(c.Handle); err != nil {
		return err
	}
	ctx.advance(Metrics{})
	return nil
}

func (c *FontControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}

// MatrixControl replaces the rendering transform (opcodes 27 and 28). The
// matrix replaces the existing transform; it is not composed with it.
type MatrixControl struct {
	span
	Matrix Transform
}

func (c *MatrixControl) SizeIn(ctx *Context) Metrics {
	return Metrics{}
}

func (c *MatrixControl) Apply(ctx *Context) error {
	ctx.Transform = c.Matrix
	ctx.advance(Metrics{})
	return nil
}

func (c *MatrixControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}

// CommentControl is an inline hidden comment (opcode 21). It changes no
// state and paints nothing.
type CommentControl struct {
	span
	Comment []byte
}

func (c *CommentControl) SizeIn(ctx *Context) Metrics {
	return Metrics{}
}

func (c *CommentControl) Apply(ctx *Context) error {
	ctx.advance(Metrics{})
	return nil
}

func (c *CommentControl) Paint(ctx *Context) error {
	return c.Apply(ctx)
}
