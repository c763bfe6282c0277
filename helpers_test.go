package purfecfont_test

import (
	"fmt"

	"github.com/phroun/purfecfont"
)

// testFont is a fake font with fixed cell metrics, in the style of a
// three-entry font table: Homerton 8x16, Trinity 32x32, Corpus 8x8.
type testFont struct {
	handle       int
	name         string
	xsize, ysize float64
}

func (f *testFont) FontHandle() int {
	return f.handle
}

// paintOp records one call through the paint hooks. Underline ops have an
// empty text and carry the rect.
type paintOp struct {
	text      string
	font      string
	x, y      float64
	bg, fg    int
	rect      purfecfont.Bounds
	underline bool
}

func textOp(text, font string, x, y float64, bg, fg int) paintOp {
	return paintOp{text: text, font: font, x: x, y: y, bg: bg, fg: fg}
}

func underlineOp(x0, y0, x1, y1 float64, fg int) paintOp {
	return paintOp{underline: true, rect: purfecfont.NewBounds(x0, y0, x1, y1), fg: fg}
}

// testRenderer implements the host hooks with the fake font table and
// captures every paint call.
type testRenderer struct {
	fonts map[int]*testFont
	ops   []paintOp
}

func newTestRenderer() *testRenderer {
	return &testRenderer{
		fonts: map[int]*testFont{
			1: {handle: 1, name: "Homerton", xsize: 8, ysize: 16},
			2: {handle: 2, name: "Trinity", xsize: 32, ysize: 32},
			3: {handle: 3, name: "Corpus", xsize: 8, ysize: 8},
		},
	}
}

func (r *testRenderer) FontLookup(handle int) (purfecfont.Font, error) {
	f, ok := r.fonts[handle]
	if !ok {
		return nil, fmt.Errorf("unknown font handle %d", handle)
	}
	return f, nil
}

func (r *testRenderer) FontBounds(ctx *purfecfont.Context, s []byte) purfecfont.Metrics {
	f := ctx.Font.(*testFont)
	if s == nil {
		return purfecfont.Metrics{XRight: f.xsize, YTop: f.ysize, XOffset: f.xsize}
	}
	w := float64(len(s)) * f.xsize
	return purfecfont.Metrics{XRight: w, YTop: f.ysize, XOffset: w}
}

func (r *testRenderer) FontPaint(ctx *purfecfont.Context, s []byte) {
	f := ctx.Font.(*testFont)
	r.ops = append(r.ops, textOp(string(s), f.name, ctx.X, ctx.Y, ctx.BG, ctx.FG))
}

func (r *testRenderer) DrawUnderline(ctx *purfecfont.Context, rect purfecfont.Bounds) {
	r.ops = append(r.ops, paintOp{underline: true, rect: rect, fg: ctx.FG})
}

// newTestContext pairs a fresh renderer with a context using it.
func newTestContext() (*purfecfont.Context, *testRenderer) {
	r := newTestRenderer()
	return purfecfont.NewContext(r), r
}

// kinds renders the record types of a sequence for shape assertions.
func kinds(seq *purfecfont.Sequence) []string {
	out := make([]string, 0, seq.Len())
	for _, ctrl := range seq.Controls() {
		out = append(out, fmt.Sprintf("%T", ctrl))
	}
	return out
}

func selectColours(ctx *purfecfont.Context, bg, fg int) {
	ctx.SelectColour(purfecfont.ColourSelection{
		HasBG: true, BG: bg,
		HasFG: true, FG: fg,
	})
}
