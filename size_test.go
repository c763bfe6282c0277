package purfecfont_test

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/phroun/purfecfont"
)

func parseSeq(data []byte) *purfecfont.Sequence {
	p := purfecfont.NewParser()
	p.Parse(data)
	return p.Sequence()
}

func TestSizePlain(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("plain string")), purfecfont.SizeOptions{})
	be.Err(t, err, nil)

	be.Equal(t, ctx.X, float64(12*8))
	be.Equal(t, ctx.Y, 0.0)
	be.Equal(t, end, 12)
	be.Equal(t, splits, 12)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 12*8, 16)))
}

func TestSizeWordSpacing(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("plain string")), purfecfont.SizeOptions{
		Spacing:   purfecfont.Spacing{WordX: 5},
		SplitChar: ' ',
	})
	be.Err(t, err, nil)

	be.Equal(t, ctx.X, float64(12*8+5))
	be.Equal(t, ctx.Y, 0.0)
	be.Equal(t, end, 12)
	be.Equal(t, splits, 1)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 12*8+5, 16)))
}

func TestSizeSplits(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("plain string")), purfecfont.SizeOptions{
		SplitChar: ' ',
	})
	be.Err(t, err, nil)

	be.Equal(t, ctx.X, float64(12*8))
	be.Equal(t, end, 12)
	be.Equal(t, splits, 1)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 12*8, 16)))
}

func TestSizeSplitsWithLimits(t *testing.T) {
	// The second word exceeds the limit, so the walk backtracks to the
	// split boundary after the first word's delimiter.
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("words. lots of words.")), purfecfont.SizeOptions{
		Limits:    &purfecfont.Limits{X: 8 * 8},
		SplitChar: ' ',
	})
	be.Err(t, err, nil)

	be.Equal(t, ctx.X, float64(7*8))
	be.Equal(t, ctx.Y, 0.0)
	be.Equal(t, end, 7)
	be.Equal(t, splits, 1)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 7*8, 16)))
}

func TestSizeLimitsNoSplitChar(t *testing.T) {
	// With no split character, the overlong string is re-scanned per byte
	// to find the exact character at which the limit was exceeded.
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("words. lots of words.")), purfecfont.SizeOptions{
		Limits: &purfecfont.Limits{X: 8 * 8},
	})
	be.Err(t, err, nil)

	be.Equal(t, ctx.X, float64(8*8))
	be.Equal(t, ctx.Y, 0.0)
	be.Equal(t, end, 8)
	be.Equal(t, splits, 8)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 8*8, 16)))
}

func TestSizeChangeFont(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("one\x1a\x02two")), purfecfont.SizeOptions{})
	be.Err(t, err, nil)

	be.Equal(t, ctx.X, float64(3*8+3*32))
	be.Equal(t, ctx.Y, 0.0)
	be.Equal(t, end, 8)
	be.Equal(t, splits, 6)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 3*8+3*32, 32)))
}

func TestSizeBadFontHandle(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	_, _, err := ctx.Size(parseSeq([]byte("one\x1a\x63two")), purfecfont.SizeOptions{})
	be.Err(t, err)
}

func TestSizeIdempotent(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)
	seq := parseSeq([]byte("words. lots of words."))
	opts := purfecfont.SizeOptions{
		Limits:    &purfecfont.Limits{X: 64},
		SplitChar: ' ',
	}

	end1, splits1, err := ctx.Size(seq, opts)
	be.Err(t, err, nil)
	bounds1 := ctx.Bounds

	end2, splits2, err := ctx.Size(seq, opts)
	be.Err(t, err, nil)

	be.Equal(t, end2, end1)
	be.Equal(t, splits2, splits1)
	be.True(t, ctx.Bounds.Equal(bounds1))
}

func TestSizeNegativeLimit(t *testing.T) {
	// Limits are compared with plain ordering regardless of sign, so a
	// negative X limit rejects even the first character.
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("ab")), purfecfont.SizeOptions{
		Limits: &purfecfont.Limits{X: -1},
	})
	be.Err(t, err, nil)
	be.Equal(t, end, 0)
	be.Equal(t, splits, 0)
}

func TestSizeYLimit(t *testing.T) {
	// A move past the Y limit backtracks to the state before the move.
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("ab\x0b\x20\x00\x00cd")), purfecfont.SizeOptions{
		Limits: &purfecfont.Limits{X: 1000, Y: 16},
	})
	be.Err(t, err, nil)
	be.Equal(t, end, 2)
	be.Equal(t, splits, 2)
	be.Equal(t, ctx.X, float64(2*8))
	be.Equal(t, ctx.Y, 0.0)
}

func TestSizeRestoresContextPrecisely(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	_, _, err := ctx.Size(parseSeq([]byte("words. lots of words.")), purfecfont.SizeOptions{
		Limits:    &purfecfont.Limits{X: 64},
		SplitChar: ' ',
	})
	be.Err(t, err, nil)

	// The restored context is exactly the split-point snapshot: cursor and
	// bounds cover "words. " only.
	be.Equal(t, ctx.X, 56.0)
	be.Equal(t, ctx.FontHandle, 1)
	be.True(t, ctx.Bounds.Equal(purfecfont.NewBounds(0, 0, 56, 16)))
}

func TestSizeSplitEvery(t *testing.T) {
	ctx, _ := newTestContext()
	be.Err(t, ctx.SelectFont(1), nil)

	end, splits, err := ctx.Size(parseSeq([]byte("abcd")), purfecfont.SizeOptions{
		SplitChar: purfecfont.SplitEvery,
	})
	be.Err(t, err, nil)
	be.Equal(t, end, 4)
	be.Equal(t, splits, 4)
}
