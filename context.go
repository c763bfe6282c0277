package purfecfont

// unboundedLimit is the sizing limit used when the caller sets none.
const unboundedLimit = float64(0x7FFFFFFF)

// Limits bounds a sizing walk. A coordinate beyond its limit triggers the
// wrap/split search.
type Limits struct {
	X, Y float64
}

// ColourSelection names the colour parameters a SelectColour call changes.
// The zero value changes nothing. Palette parameters are processed before
// RGB parameters; when both appear the RGB values win and the palette side
// is re-derived from them.
type ColourSelection struct {
	HasFG bool
	FG    int
	HasBG bool
	BG    int

	HasOffset bool
	Offset    int

	HasFGPal bool
	FGPal    uint32
	HasBGPal bool
	BGPal    uint32
}

// SizeOptions controls how Size walks a sequence. The zero value sizes with
// no spacing, no limits and no splitting.
type SizeOptions struct {
	Spacing   Spacing
	Limits    *Limits // nil: effectively unbounded
	SplitChar int     // SplitNone, SplitEvery, or a byte value
}

// Context holds the rendering state between font operations: the active
// font, the two mutually consistent colour models, underline metrics, the
// transform, the cursor and the accumulated bounds. State updates come from
// applying control records or from the Select* methods; drawing goes through
// the Renderer hooks.
//
// A context is exclusively owned during a Paint or Size call and is not
// re-entrant. Independent measurements want independent contexts; Copy
// produces a snapshot cheaply.
type Context struct {
	// MaxCol is the maximum colour number used for GCOL bounding.
	MaxCol int

	// Palette colour state. After any SelectColour call
	// FG == Saturate(FGBase+FGOffset, 0, MaxCol).
	BG, FG           int
	FGBase, FGOffset int

	// Packed colour values for the logical colours.
	FGPal, BGPal uint32

	// The current font.
	FontHandle int
	Font       Font

	// Underline position and thickness in millipoints; both zero disables
	// underlining.
	UnderlinePos       float64
	UnderlineThickness float64

	// Rendering transform. Matrix records replace it wholesale.
	Transform Transform

	// Rendering location.
	X, Y float64

	// Sizing limits.
	LimitX, LimitY float64

	// Bounds accumulated by apply and paint operations.
	Bounds Bounds

	// Renderer supplies the host hooks; nil behaves as NullRenderer.
	Renderer Renderer

	// GCOLToRGB and RGBToGCOL convert between the colour models. When nil
	// the 1-bit-per-channel defaults are used.
	GCOLToRGB func(gcol int) uint32
	RGBToGCOL func(rgb uint32) int
}

// NewContext returns a context with default colours, the identity transform
// and no limits, drawing through r.
func NewContext(r Renderer) *Context {
	return &Context{
		MaxCol:    7,
		FGPal:     PackedColourFlag,
		BGPal:     PackedColourFlag,
		Transform: Identity(),
		LimitX:    unboundedLimit,
		LimitY:    unboundedLimit,
		Renderer:  r,
	}
}

func (c *Context) renderer() Renderer {
	if c.Renderer == nil {
		return NullRenderer{}
	}
	return c.Renderer
}

func (c *Context) gcolToRGB(gcol int) uint32 {
	if c.GCOLToRGB != nil {
		return c.GCOLToRGB(gcol)
	}
	return DefaultGCOLToRGB(gcol)
}

func (c *Context) rgbToGCOL(rgb uint32) int {
	if c.RGBToGCOL != nil {
		return c.RGBToGCOL(rgb)
	}
	return DefaultRGBToGCOL(rgb)
}

// ClearBounds resets the accumulated bounds to empty.
func (c *Context) ClearBounds() {
	c.Bounds = Bounds{}
}

// ClearTransform resets the transform to the identity matrix.
func (c *Context) ClearTransform() {
	c.Transform = Identity()
}

// ClearUnderline disables underlining.
func (c *Context) ClearUnderline() {
	c.UnderlinePos = 0
	c.UnderlineThickness = 0
}

// Copy snapshots the context into to, allocating one when to is nil, and
// returns it. The snapshot is independent: bounds are value-copied and the
// transform is shared as an immutable value.
func (c *Context) Copy(to *Context) *Context {
	if to == nil {
		to = &Context{}
	}
	*to = *c
	return to
}

// SelectFont resolves handle through the renderer's font lookup and makes it
// the current font. The lookup error, if any, is returned unchanged.
func (c *Context) SelectFont(handle int) error {
	f, err := c.renderer().FontLookup(handle)
	if err != nil {
		return err
	}
	c.Font = f
	c.FontHandle = handle
	return nil
}

// SelectColour changes the colour state. Palette parameters are applied
// first and re-establish the palette invariant and the packed values; RGB
// parameters are applied second and re-derive the palette side from the new
// packed values.
func (c *Context) SelectColour(sel ColourSelection) {
	gcolChanged := false
	if sel.HasFG {
		c.FGBase = sel.FG
		gcolChanged = true
	}
	if sel.HasBG {
		c.BG = sel.BG
		gcolChanged = true
	}
	if sel.HasOffset {
		c.FGOffset = sel.Offset
	}
	if gcolChanged || sel.HasOffset {
		c.FG = c.FGBase + c.FGOffset
	}
	if gcolChanged || sel.HasOffset {
		c.gcolUpdated()
	}

	rgbChanged := false
	if sel.HasFGPal {
		c.FGPal = sel.FGPal
		rgbChanged = true
	}
	if sel.HasBGPal {
		c.BGPal = sel.BGPal
		rgbChanged = true
	}
	if rgbChanged {
		c.rgbUpdated()
	}
}

// gcolUpdated re-establishes the palette invariant after a palette-side
// change and recomputes the packed values.
func (c *Context) gcolUpdated() {
	c.BG = Saturate(c.BG, 0, c.MaxCol)
	c.FG = Saturate(c.FG, 0, c.MaxCol)
	c.FGBase = Saturate(c.FG-c.FGOffset, 0, c.MaxCol)
	c.FGOffset = c.FG - c.FGBase

	c.FGPal = c.gcolToRGB(c.FG)
	c.BGPal = c.gcolToRGB(c.BG)
}

// rgbUpdated re-derives the palette side from the packed values, then runs
// the palette update to settle everything.
func (c *Context) rgbUpdated() {
	c.BG = c.rgbToGCOL(c.BGPal)
	c.FG = c.rgbToGCOL(c.FGPal)
	c.FGBase = c.FG - c.FGOffset
	c.gcolUpdated()
}

// fontBounds reports the extent of s, or the font cell metrics when s is
// nil, through the renderer.
func (c *Context) fontBounds(s []byte) Metrics {
	return c.renderer().FontBounds(c, s)
}

// advance is the shared record behaviour: union the metric rectangle at the
// cursor into the bounds and move the cursor by the offsets.
func (c *Context) advance(m Metrics) {
	c.Bounds.ExtendRect(c.X+m.XLeft, c.Y+m.YBottom, c.X+m.XRight, c.Y+m.YTop)
	c.X += m.XOffset
	c.Y += m.YOffset
}

// underlineGap draws the underline bar for a record advancing by m, when
// underlining is enabled, and unions it into the bounds. The bar is
// axis-aligned even under a sheared or rotated transform.
func (c *Context) underlineGap(m Metrics) {
	if c.UnderlineThickness == 0 {
		return
	}
	rect := NewBounds(
		c.X, c.Y+c.UnderlinePos-c.UnderlineThickness,
		c.X+m.XOffset, c.Y+c.UnderlinePos,
	)
	c.renderer().DrawUnderline(c, rect)
	c.Bounds.ExtendBounds(rect)
}

// Paint clears the bounds and underline state, then paints every record of
// the spacing-expanded sequence through the renderer hooks.
func (c *Context) Paint(seq *Sequence, spacing Spacing) error {
	c.ClearBounds()
	c.ClearUnderline()
	for _, ctrl := range seq.ApplySpacing(spacing, SplitNone) {
		if err := ctrl.Paint(c); err != nil {
			return err
		}
	}
	return nil
}

// Size finds the extent of the sequence, returning the terminating byte
// index and the count of split points seen. The walk starts from (0, 0) with
// cleared bounds and underline; afterwards the context holds the cursor and
// bounds of everything that fit.
//
// When a record pushes the cursor beyond the limits, the walk backtracks: to
// the last accepted split boundary when a split character is set, otherwise
// to the last applied record, re-scanning an overlong string per character
// to find the exact index at which the limit was exceeded. The context is
// restored precisely, so multi-pass callers can resume.
func (c *Context) Size(seq *Sequence, opts SizeOptions) (endIndex, splitsSeen int, err error) {
	return c.size(seq, opts, false)
}

func (c *Context) size(seq *Sequence, opts SizeOptions, continued bool) (int, int, error) {
	if !continued {
		c.X = 0
		c.Y = 0
		c.ClearBounds()
		c.ClearUnderline()
		if opts.Limits == nil {
			c.LimitX = unboundedLimit
			c.LimitY = unboundedLimit
		} else {
			c.LimitX = opts.Limits.X
			c.LimitY = opts.Limits.Y
		}
	}

	lastContext := c.Copy(nil)
	lastSplitPoint := c.Copy(nil)
	lastSplitIndex := 0
	lastIndex := 0
	lastSplitsSeen := 0

	for _, ctrl := range seq.ApplySpacing(opts.Spacing, opts.SplitChar) {
		c.Copy(lastContext)
		if err := ctrl.Apply(c); err != nil {
			return 0, 0, err
		}

		splitsSeen := 0
		var text []byte
		if sc, ok := ctrl.(*StringControl); ok {
			text = sc.Text
			switch {
			case opts.SplitChar == SplitNone:
				splitsSeen = len(text)
			case opts.SplitChar == SplitEvery:
				splitsSeen = 1
			case len(text) == 1 && int(text[0]) == opts.SplitChar:
				splitsSeen = 1
			}
		}

		if c.X > c.LimitX || c.Y > c.LimitY {
			// This record did not fit; report from an earlier state.
			if opts.SplitChar > 0 {
				lastSplitPoint.Copy(c)
				return lastSplitIndex, lastSplitsSeen, nil
			}
			if len(text) > 1 {
				// Find the exact character the limit was exceeded at by
				// re-running this record split per byte.
				sub := &Sequence{}
				sub.Append(ctrl)
				idx, splits, err := lastContext.size(sub, SizeOptions{SplitChar: SplitEvery}, true)
				if err != nil {
					return 0, 0, err
				}
				lastIndex = idx
				lastSplitsSeen += splits
			}
			lastContext.Copy(c)
			return lastIndex, lastSplitsSeen, nil
		}

		if splitsSeen > 0 && opts.SplitChar != SplitNone {
			// A split point we passed; remember it so we can return to it.
			c.Copy(lastSplitPoint)
			_, lastSplitIndex = ctrl.Span()
		}
		_, lastIndex = ctrl.Span()
		lastSplitsSeen += splitsSeen
	}
	return lastIndex, lastSplitsSeen, nil
}
