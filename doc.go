// Package purfecfont parses and renders the byte-encoded font control-sequence
// format used by the RISC OS FontManager, and drives a layout engine that
// measures and paints text governed by inline control codes.
//
// This package contains:
//   - Geometry primitives (affine Transform, Bounds accumulator)
//   - Typed control records with byte-index provenance
//   - The control-sequence Parser
//   - The rendering Context state machine with sizing and wrap search
//   - The Renderer host-hook interface
//
// Sink packages (purfecfont/cli, purfecfont/gtk, purfecfont/qt) provide paint
// targets that use this core package. Glyph rasterisation, colour-mapping
// policy and font-table lookup stay on the host side of the Renderer
// interface.
package purfecfont
