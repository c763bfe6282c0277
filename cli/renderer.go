package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/phroun/purfecfont"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrWriter      = errors.New("writer is nil")
	ErrUnknownFont = errors.New("unknown font handle")
)

// FontMetrics describes one entry of the sink's font table, in millipoints
// per character cell.
type FontMetrics struct {
	Name         string
	XSize, YSize int
}

// Options configures the sink.
type Options struct {
	Cols, Rows int // grid size in character cells (default 80x24)

	// Cell size in millipoints (default 8000x16000). Millipoint coordinates
	// from the layout divide by these to land on grid cells.
	CellWidth  int
	CellHeight int

	// BaseRow is the grid row of the y=0 baseline (default Rows-1, the
	// bottom row; font y grows upwards).
	BaseRow int

	// Fonts maps handles to metrics. When nil, every handle resolves to a
	// monospace font of one cell per character.
	Fonts map[int]FontMetrics

	// Charmap decodes printable bytes to runes (default Latin-1).
	Charmap *charmap.Charmap

	// Caps gates the ANSI emission of Flush. When nil, capabilities are
	// detected from stdout and the environment.
	Caps *Capabilities
}

// cell is one character cell of the output grid.
type cell struct {
	ch        rune
	fg, bg    uint32 // packed colour values
	set       bool
	underline bool
}

// Renderer is a purfecfont.Renderer that paints into a character-cell grid
// and emits it as ANSI. It is safe for use from one goroutine per the core's
// ownership rules; the mutex serialises grid access between the paint hooks,
// Flush and Clear.
type Renderer struct {
	mu    sync.Mutex
	opts  Options
	caps  Capabilities
	cells [][]cell
}

// sinkFont carries the metrics the sink measures with.
type sinkFont struct {
	handle       int
	name         string
	xsize, ysize float64
}

func (f *sinkFont) FontHandle() int {
	return f.handle
}

// NewRenderer creates a sink with defaults applied.
func NewRenderer(opts Options) *Renderer {
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8000
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16000
	}
	if opts.BaseRow <= 0 {
		opts.BaseRow = opts.Rows - 1
	}
	if opts.Charmap == nil {
		opts.Charmap = charmap.ISO8859_1
	}
	var caps Capabilities
	if opts.Caps != nil {
		caps = *opts.Caps
	} else {
		caps = DetectCapabilities()
	}

	r := &Renderer{opts: opts, caps: caps}
	r.Clear()
	return r
}

// Clear resets the grid.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cells = make([][]cell, r.opts.Rows)
	for y := range r.cells {
		r.cells[y] = make([]cell, r.opts.Cols)
	}
}

// FontLookup resolves a handle against the font table. With no table every
// handle resolves to a one-cell monospace font.
func (r *Renderer) FontLookup(handle int) (purfecfont.Font, error) {
	if r.opts.Fonts == nil {
		return &sinkFont{
			handle: handle,
			name:   "monospace",
			xsize:  float64(r.opts.CellWidth),
			ysize:  float64(r.opts.CellHeight),
		}, nil
	}
	m, ok := r.opts.Fonts[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFont, handle)
	}
	return &sinkFont{
		handle: handle,
		name:   m.Name,
		xsize:  float64(m.XSize),
		ysize:  float64(m.YSize),
	}, nil
}

func (r *Renderer) FontBounds(ctx *purfecfont.Context, s []byte) purfecfont.Metrics {
	f, ok := ctx.Font.(*sinkFont)
	if !ok {
		return purfecfont.Metrics{}
	}
	if s == nil {
		return purfecfont.Metrics{XRight: f.xsize, YTop: f.ysize, XOffset: f.xsize}
	}
	w := float64(len(s)) * f.xsize
	return purfecfont.Metrics{XRight: w, YTop: f.ysize, XOffset: w}
}

func (r *Renderer) FontPaint(ctx *purfecfont.Context, s []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := ctx.Font.(*sinkFont)
	if !ok {
		return
	}
	row := r.rowFor(ctx.Y)
	for i, b := range s {
		col := r.colFor(ctx.X + float64(i)*f.xsize)
		r.put(col, row, cell{
			ch:  r.opts.Charmap.DecodeByte(b),
			fg:  ctx.FGPal,
			bg:  ctx.BGPal,
			set: true,
		})
	}
}

func (r *Renderer) DrawUnderline(ctx *purfecfont.Context, rect purfecfont.Bounds) {
	if rect.Empty() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.rowFor(ctx.Y)
	for col := r.colFor(rect.X0); col <= r.colFor(rect.X1-1); col++ {
		if col < 0 || col >= r.opts.Cols || row < 0 || row >= r.opts.Rows {
			continue
		}
		r.cells[row][col].underline = true
	}
}

func (r *Renderer) colFor(x float64) int {
	return int(x) / r.opts.CellWidth
}

func (r *Renderer) rowFor(y float64) int {
	return r.opts.BaseRow - int(y)/r.opts.CellHeight
}

func (r *Renderer) put(col, row int, c cell) {
	if col < 0 || col >= r.opts.Cols || row < 0 || row >= r.opts.Rows {
		return
	}
	underline := r.cells[row][col].underline
	r.cells[row][col] = c
	r.cells[row][col].underline = underline
}

// Flush writes the grid to w, coloured when the terminal supports it. Rows
// that were never painted are skipped; trailing blank cells are trimmed.
func (r *Renderer) Flush(w io.Writer) error {
	if w == nil {
		return ErrWriter
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for _, rowCells := range r.cells {
		last := -1
		for x, c := range rowCells {
			if c.set || c.underline {
				last = x
			}
		}
		if last < 0 {
			continue
		}

		styled := false
		for x := 0; x <= last; x++ {
			c := rowCells[x]
			ch := c.ch
			if !c.set {
				ch = ' '
			}
			if r.caps.SupportsColor {
				sb.WriteString(sgrFor(c))
				styled = true
			}
			sb.WriteRune(ch)
		}
		if styled {
			sb.WriteString("\x1b[0m")
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// sgrFor builds the SGR prefix for one cell from its packed colours.
func sgrFor(c cell) string {
	if !c.set {
		if c.underline {
			return "\x1b[0;4m"
		}
		return "\x1b[0m"
	}
	fr, fg, fb := purfecfont.UnpackRGB(c.fg)
	br, bg, bb := purfecfont.UnpackRGB(c.bg)
	s := fmt.Sprintf("\x1b[0;38;2;%d;%d;%d;48;2;%d;%d;%dm", fr, fg, fb, br, bg, bb)
	if c.underline {
		s += "\x1b[4m"
	}
	return s
}
