package purfecfont

// Font holds information about a selected font. Implementations may carry
// whatever the host needs for metrics and painting; the core only stores the
// value and hands it back through Renderer calls.
type Font interface {
	FontHandle() int
}

// BaseFont is a minimal Font carrying only the handle.
type BaseFont struct {
	Handle int
}

// FontHandle returns the font handle.
func (f BaseFont) FontHandle() int {
	return f.Handle
}

// Metrics is the size tuple reported for a record, in millipoints. The first
// four fields bound the painted ink relative to the cursor; the offsets say
// how far the cursor advances.
type Metrics struct {
	XLeft, YBottom float64
	XRight, YTop   float64
	XOffset        float64
	YOffset        float64
}

// Renderer supplies the host hooks the context calls out to. Sizing-only
// hosts can embed NullRenderer and provide just FontLookup and FontBounds.
type Renderer interface {
	// FontLookup resolves a font handle to a Font, performing any necessary
	// validation. The error propagates out of SelectFont, Paint and Size.
	FontLookup(handle int) (Font, error)

	// FontBounds reports the extent of s for the current context, or the
	// font cell metrics when s is nil.
	FontBounds(ctx *Context, s []byte) Metrics

	// FontPaint paints s at the current context position.
	FontPaint(ctx *Context, s []byte)

	// DrawUnderline draws an underline bar covering rect.
	DrawUnderline(ctx *Context, rect Bounds)
}

// NullRenderer is a Renderer that resolves every handle to a BaseFont and
// reports zero metrics. Embed it to implement only part of the interface.
type NullRenderer struct{}

func (NullRenderer) FontLookup(handle int) (Font, error) {
	return BaseFont{Handle: handle}, nil
}

func (NullRenderer) FontBounds(ctx *Context, s []byte) Metrics {
	return Metrics{}
}

func (NullRenderer) FontPaint(ctx *Context, s []byte) {}

func (NullRenderer) DrawUnderline(ctx *Context, rect Bounds) {}
