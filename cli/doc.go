// Package cli provides a CLI-based paint sink for PurfecFont.
//
// The sink implements the purfecfont.Renderer hooks against a character-cell
// grid: millipoint coordinates map onto cells at a configurable cell size,
// printable runs decode through a code page, and underline bars become cell
// attributes. Flush emits the grid as ANSI, degrading to plain text when the
// host terminal does not support colour.
//
// # Basic Usage
//
//	sink := cli.NewRenderer(cli.Options{})
//	ctx := purfecfont.NewContext(sink)
//	if err := ctx.SelectFont(0); err != nil {
//	    ...
//	}
//
//	parser := purfecfont.NewParser()
//	parser.Parse(data)
//	if err := ctx.Paint(parser.Sequence(), purfecfont.Spacing{}); err != nil {
//	    ...
//	}
//	sink.Flush(os.Stdout)
//
// The sink renders a measure/paint pass, not an editable screen: each Paint
// call draws over the same grid until Clear.
package cli
