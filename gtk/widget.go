// Package purfecfontgtk provides a GTK3 paint sink for PurfecFont: a
// DrawingArea widget that paints a parsed control sequence through cairo.
//
// The sink is demonstration quality: it assumes a monospace font of one
// logical cell (8000x16000 millipoints) per character and draws simple
// Latin-1 runs; complex-script shaping is out of scope for the core format.
package purfecfontgtk

import (
	"sync"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/purfecfont"
)

// Millipoints per logical character cell, matching the cli sink defaults.
const (
	cellXSize = 8000
	cellYSize = 16000
)

// Options configures widget creation.
type Options struct {
	FontFamily string  // font family (default: "Monospace")
	FontSize   int     // font size in pixels (default: 14)
	MarginX    float64 // left margin of the baseline origin in pixels (default: 8)
	MarginY    float64 // bottom margin of the baseline origin in pixels (default: 8)
}

// Widget hosts a control sequence inside a GTK drawing area and repaints it
// on every draw signal.
type Widget struct {
	mu sync.Mutex

	area    *gtk.DrawingArea
	options Options

	sequence *purfecfont.Sequence
	spacing  purfecfont.Spacing
}

// New creates the widget.
func New(opts Options) (*Widget, error) {
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	if opts.MarginX == 0 {
		opts.MarginX = 8
	}
	if opts.MarginY == 0 {
		opts.MarginY = 8
	}

	area, err := gtk.DrawingAreaNew()
	if err != nil {
		return nil, err
	}

	w := &Widget{area: area, options: opts}
	area.Connect("draw", w.onDraw)
	return w, nil
}

// Area returns the underlying drawing area for packing into containers.
func (w *Widget) Area() *gtk.DrawingArea {
	return w.area
}

// SetSequence replaces the displayed sequence and queues a redraw.
func (w *Widget) SetSequence(seq *purfecfont.Sequence, spacing purfecfont.Spacing) {
	w.mu.Lock()
	w.sequence = seq
	w.spacing = spacing
	w.mu.Unlock()
	w.area.QueueDraw()
}

func (w *Widget) onDraw(area *gtk.DrawingArea, cr *cairo.Context) bool {
	w.mu.Lock()
	seq := w.sequence
	spacing := w.spacing
	w.mu.Unlock()

	width := float64(area.GetAllocatedWidth())
	height := float64(area.GetAllocatedHeight())

	cr.SetSourceRGB(1, 1, 1)
	cr.Rectangle(0, 0, width, height)
	cr.Fill()

	if seq == nil {
		return false
	}

	cr.SelectFontFace(w.options.FontFamily, cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	cr.SetFontSize(float64(w.options.FontSize))

	sink := &cairoSink{
		cr:      cr,
		scale:   float64(w.options.FontSize) / cellYSize,
		originX: w.options.MarginX,
		originY: height - w.options.MarginY,
	}
	ctx := purfecfont.NewContext(sink)
	if err := ctx.SelectFont(0); err != nil {
		return false
	}
	// Painting into a widget is best effort; a bad font handle in the
	// stream just truncates the drawing.
	_ = ctx.Paint(seq, spacing)
	return false
}

// cairoSink adapts a cairo context to the purfecfont.Renderer hooks for the
// duration of one draw signal.
type cairoSink struct {
	cr      *cairo.Context
	scale   float64 // pixels per millipoint
	originX float64
	originY float64
}

type cellFont struct {
	handle int
}

func (f *cellFont) FontHandle() int {
	return f.handle
}

func (s *cairoSink) FontLookup(handle int) (purfecfont.Font, error) {
	return &cellFont{handle: handle}, nil
}

func (s *cairoSink) FontBounds(ctx *purfecfont.Context, text []byte) purfecfont.Metrics {
	if text == nil {
		return purfecfont.Metrics{XRight: cellXSize, YTop: cellYSize, XOffset: cellXSize}
	}
	w := float64(len(text)) * cellXSize
	return purfecfont.Metrics{XRight: w, YTop: cellYSize, XOffset: w}
}

func (s *cairoSink) FontPaint(ctx *purfecfont.Context, text []byte) {
	m := s.FontBounds(ctx, text)

	// Background box behind the run, then the glyphs.
	br, bg, bb := purfecfont.UnpackRGB(ctx.BGPal)
	s.cr.SetSourceRGB(float64(br)/255, float64(bg)/255, float64(bb)/255)
	s.cr.Rectangle(s.px(ctx.X), s.py(ctx.Y+m.YTop), m.XOffset*s.scale, m.YTop*s.scale)
	s.cr.Fill()

	fr, fg, fb := purfecfont.UnpackRGB(ctx.FGPal)
	s.cr.SetSourceRGB(float64(fr)/255, float64(fg)/255, float64(fb)/255)
	s.cr.MoveTo(s.px(ctx.X), s.py(ctx.Y))
	s.cr.ShowText(latin1String(text))
}

func (s *cairoSink) DrawUnderline(ctx *purfecfont.Context, rect purfecfont.Bounds) {
	if rect.Empty() {
		return
	}
	fr, fg, fb := purfecfont.UnpackRGB(ctx.FGPal)
	s.cr.SetSourceRGB(float64(fr)/255, float64(fg)/255, float64(fb)/255)
	s.cr.Rectangle(s.px(rect.X0), s.py(rect.Y1),
		(rect.X1-rect.X0)*s.scale, (rect.Y1-rect.Y0)*s.scale)
	s.cr.Fill()
}

func (s *cairoSink) px(x float64) float64 {
	return s.originX + x*s.scale
}

func (s *cairoSink) py(y float64) float64 {
	return s.originY - y*s.scale
}

// latin1String decodes a printable run byte-for-byte; the format is
// byte-oriented with Latin-1 semantics for bytes above 127.
func latin1String(text []byte) string {
	runes := make([]rune, len(text))
	for i, b := range text {
		runes[i] = rune(b)
	}
	return string(runes)
}
