package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/phroun/purfecfont"
	"github.com/phroun/purfecfont/cli"
)

func plainSink(cols, rows int) *cli.Renderer {
	return cli.NewRenderer(cli.Options{
		Cols: cols,
		Rows: rows,
		Caps: &cli.Capabilities{},
	})
}

func paint(t *testing.T, sink *cli.Renderer, data []byte) {
	t.Helper()
	p := purfecfont.NewParser()
	p.Parse(data)
	ctx := purfecfont.NewContext(sink)
	be.Err(t, ctx.SelectFont(0), nil)
	be.Err(t, ctx.Paint(p.Sequence(), purfecfont.Spacing{}), nil)
}

func TestFlushPlain(t *testing.T) {
	sink := plainSink(20, 2)
	paint(t, sink, []byte("hello"))

	var buf bytes.Buffer
	be.Err(t, sink.Flush(&buf), nil)
	be.Equal(t, buf.String(), "hello\n")
}

func TestFlushMoveMapsToCells(t *testing.T) {
	// A move of two cell widths leaves a gap in the grid.
	sink := plainSink(20, 2)
	paint(t, sink, []byte("ab\x09\x80\x3e\x00cd"))

	var buf bytes.Buffer
	be.Err(t, sink.Flush(&buf), nil)
	be.Equal(t, buf.String(), "ab  cd\n")
}

func TestFlushColour(t *testing.T) {
	sink := cli.NewRenderer(cli.Options{
		Cols: 20,
		Rows: 1,
		Caps: &cli.Capabilities{SupportsColor: true, ColorDepth: 24},
	})
	paint(t, sink, []byte("\x12\x00\x07\x00x"))

	var buf bytes.Buffer
	be.Err(t, sink.Flush(&buf), nil)
	out := buf.String()
	be.True(t, strings.Contains(out, "\x1b[0;38;2;255;255;255;48;2;0;0;0m"))
	be.True(t, strings.HasSuffix(out, "\x1b[0m\n"))
}

func TestFlushNilWriter(t *testing.T) {
	sink := plainSink(4, 1)
	be.Err(t, sink.Flush(nil), cli.ErrWriter)
}

func TestFontTableLookup(t *testing.T) {
	sink := cli.NewRenderer(cli.Options{
		Caps:  &cli.Capabilities{},
		Fonts: map[int]cli.FontMetrics{1: {Name: "Homerton", XSize: 8000, YSize: 16000}},
	})

	ctx := purfecfont.NewContext(sink)
	be.Err(t, ctx.SelectFont(1), nil)
	be.Err(t, ctx.SelectFont(9), cli.ErrUnknownFont)
}

func TestClearResetsGrid(t *testing.T) {
	sink := plainSink(10, 1)
	paint(t, sink, []byte("xyz"))
	sink.Clear()

	var buf bytes.Buffer
	be.Err(t, sink.Flush(&buf), nil)
	be.Equal(t, buf.String(), "")
}

func TestLatin1Decode(t *testing.T) {
	sink := plainSink(10, 1)
	paint(t, sink, []byte{0xae, 0xaf})

	var buf bytes.Buffer
	be.Err(t, sink.Flush(&buf), nil)
	be.Equal(t, buf.String(), "®¯\n")
}
