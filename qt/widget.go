// Package purfecfontqt provides a Qt paint sink for PurfecFont: a QWidget
// that paints a parsed control sequence through QPainter.
//
// Measurement uses QFontMetrics, so unlike the cli and gtk sinks this one
// reports real per-string advances; the millipoint scale maps the configured
// font size onto one logical cell height (16000 millipoints).
package purfecfontqt

import (
	"sync"

	"github.com/mappu/miqt/qt"
	"github.com/phroun/purfecfont"
)

// Millipoints per logical character cell height.
const cellYSize = 16000

// Options configures widget creation.
type Options struct {
	FontFamily string // font family (default: "Monospace")
	FontSize   int    // font size in points (default: 14)
	MarginX    int    // left margin of the baseline origin in pixels (default: 8)
	MarginY    int    // bottom margin of the baseline origin in pixels (default: 8)
}

// Widget hosts a control sequence inside a QWidget and repaints it on every
// paint event.
type Widget struct {
	mu sync.Mutex

	widget  *qt.QWidget
	options Options

	sequence *purfecfont.Sequence
	spacing  purfecfont.Spacing
}

// New creates the widget.
func New(opts Options) *Widget {
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

	w := &Widget{
		widget:  qt.NewQWidget2(),
		options: opts,
	}
	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paint()
	})
	return w
}

// QWidget returns the underlying widget for embedding in layouts.
func (w *Widget) QWidget() *qt.QWidget {
	return w.widget
}

// SetSequence replaces the displayed sequence and schedules a repaint.
func (w *Widget) SetSequence(seq *purfecfont.Sequence, spacing purfecfont.Spacing) {
	w.mu.Lock()
	w.sequence = seq
	w.spacing = spacing
	w.mu.Unlock()
	w.widget.Update()
}

func (w *Widget) paint() {
	w.mu.Lock()
	seq := w.sequence
	spacing := w.spacing
	w.mu.Unlock()

	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()

	painter.FillRect5(0, 0, w.widget.Width(), w.widget.Height(),
		qt.NewQColor3(255, 255, 255))

	if seq == nil {
		return
	}

	font := qt.NewQFont6(w.options.FontFamily, w.options.FontSize)
	metrics := qt.NewQFontMetrics(font)
	painter.SetFont(font)

	sink := &qtSink{
		painter: painter,
		metrics: metrics,
		scale:   float64(metrics.Height()) / cellYSize,
		originX: float64(w.options.MarginX),
		originY: float64(w.widget.Height() - w.options.MarginY),
	}
	ctx := purfecfont.NewContext(sink)
	if err := ctx.SelectFont(0); err != nil {
		return
	}
	_ = ctx.Paint(seq, spacing)
}

// qtSink adapts a QPainter to the purfecfont.Renderer hooks for the duration
// of one paint event.
type qtSink struct {
	painter *qt.QPainter
	metrics *qt.QFontMetrics
	scale   float64 // pixels per millipoint
	originX float64
	originY float64
}

type qtFont struct {
	handle int
}

func (f *qtFont) FontHandle() int {
	return f.handle
}

func (s *qtSink) FontLookup(handle int) (purfecfont.Font, error) {
	return &qtFont{handle: handle}, nil
}

func (s *qtSink) FontBounds(ctx *purfecfont.Context, text []byte) purfecfont.Metrics {
	if text == nil {
		advance := float64(s.metrics.AverageCharWidth()) / s.scale
		return purfecfont.Metrics{XRight: advance, YTop: cellYSize, XOffset: advance}
	}
	w := float64(s.metrics.HorizontalAdvance(latin1String(text))) / s.scale
	return purfecfont.Metrics{XRight: w, YTop: cellYSize, XOffset: w}
}

func (s *qtSink) FontPaint(ctx *purfecfont.Context, text []byte) {
	m := s.FontBounds(ctx, text)

	br, bg, bb := purfecfont.UnpackRGB(ctx.BGPal)
	s.painter.FillRect5(s.px(ctx.X), s.py(ctx.Y+m.YTop),
		int(m.XOffset*s.scale+0.5), int(m.YTop*s.scale+0.5),
		qt.NewQColor3(int(br), int(bg), int(bb)))

	fr, fg, fb := purfecfont.UnpackRGB(ctx.FGPal)
	s.painter.SetPen(qt.NewQColor3(int(fr), int(fg), int(fb)))
	s.painter.DrawText3(s.px(ctx.X), s.py(ctx.Y), latin1String(text))
}

func (s *qtSink) DrawUnderline(ctx *purfecfont.Context, rect purfecfont.Bounds) {
	if rect.Empty() {
		return
	}
	fr, fg, fb := purfecfont.UnpackRGB(ctx.FGPal)
	s.painter.FillRect5(s.px(rect.X0), s.py(rect.Y1),
		int((rect.X1-rect.X0)*s.scale+0.5), int((rect.Y1-rect.Y0)*s.scale+0.5),
		qt.NewQColor3(int(fr), int(fg), int(fb)))
}

func (s *qtSink) px(x float64) int {
	return int(s.originX + x*s.scale)
}

func (s *qtSink) py(y float64) int {
	return int(s.originY - y*s.scale)
}

func latin1String(text []byte) string {
	runes := make([]rune, len(text))
	for i, b := range text {
		runes[i] = rune(b)
	}
	return string(runes)
}
