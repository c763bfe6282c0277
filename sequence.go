package purfecfont

import "bytes"

// Split-character values for ApplySpacing and Size. Printable runs only ever
// contain bytes >= 32, so SplitNone is safe as the zero value.
const (
	SplitNone  = 0  // do not split strings
	SplitEvery = -1 // split at every byte
)

// Sequence is an ordered, append-only collection of control records, as
// produced by the Parser. A sequence outlives the parse that built it and may
// be walked any number of times.
type Sequence struct {
	controls []Control
}

// Len returns the number of records.
func (s *Sequence) Len() int {
	return len(s.controls)
}

// At returns the record at index i.
func (s *Sequence) At(i int) Control {
	return s.controls[i]
}

// Controls returns the underlying record slice for iteration.
func (s *Sequence) Controls() []Control {
	return s.controls
}

// Append adds a record to the sequence.
func (s *Sequence) Append(c Control) {
	s.controls = append(s.controls, c)
}

// applySplits breaks every string record into pieces at splitChar, emitting
// the delimiter as its own single-byte string record between pieces (unless
// splitChar is SplitEvery, which splits into individual bytes with no
// delimiter records). Index spans stay contiguous within the original span;
// empty pieces are not emitted.
func (s *Sequence) applySplits(splitChar int) []Control {
	if splitChar == SplitNone {
		return s.controls
	}

	out := make([]Control, 0, len(s.controls))
	for _, ctrl := range s.controls {
		sc, ok := ctrl.(*StringControl)
		if !ok {
			out = append(out, ctrl)
			continue
		}

		var parts [][]byte
		if splitChar == SplitEvery {
			parts = splitBytes(sc.Text)
		} else {
			parts = bytes.Split(sc.Text, []byte{byte(splitChar)})
		}
		if len(parts) == 1 {
			out = append(out, ctrl)
			continue
		}

		offset := 0
		for i, part := range parts {
			last := i == len(parts)-1
			if len(part) > 0 {
				out = append(out, &StringControl{
					span: span{sc.start + offset, sc.start + offset + len(part)},
					Text: part,
				})
			}
			offset += len(part)
			if !last && splitChar != SplitEvery {
				out = append(out, &StringControl{
					span: span{sc.start + offset, sc.start + offset + 1},
					Text: []byte{byte(splitChar)},
				})
				offset++
			}
		}
	}
	return out
}

// ApplySpacing derives the expanded record stream the layout engine walks:
// first the split pass (see applySplits), then, when spacing is set, each
// string is further broken up with synthetic move records injected between
// the pieces.
//
// With character offsets present the strings split per byte and a
// MoveCharControl follows every piece; a lone space piece additionally gets a
// MoveSpaceControl when word offsets are set. Without character offsets the
// strings split into words at ASCII space, each non-final word keeping its
// trailing space, and a MoveSpaceControl follows every space-terminated
// piece. The synthetic moves carry zero-width spans.
func (s *Sequence) ApplySpacing(spacing Spacing, splitChar int) []Control {
	split := s.applySplits(splitChar)
	if spacing.IsZero() {
		return split
	}

	charSplit := spacing.CharX != 0 || spacing.CharY != 0
	out := make([]Control, 0, len(split))
	for _, ctrl := range split {
		sc, ok := ctrl.(*StringControl)
		if !ok {
			out = append(out, ctrl)
			continue
		}

		var parts [][]byte
		if charSplit {
			parts = splitBytes(sc.Text)
		} else {
			parts = bytes.Split(sc.Text, []byte{' '})
		}

		offset := 0
		for i, part := range parts {
			last := i == len(parts)-1
			piece := part
			if !charSplit && !last {
				piece = append(append([]byte(nil), part...), ' ')
			}
			if len(piece) == 0 {
				continue
			}

			end := sc.start + offset + len(piece)
			out = append(out, &StringControl{
				span: span{sc.start + offset, end},
				Text: piece,
			})
			if charSplit {
				out = append(out, &MoveCharControl{MoveControl{
					span: span{end, end},
					DX:   spacing.CharX, DY: spacing.CharY,
				}})
				if len(piece) == 1 && piece[0] == ' ' && (spacing.WordX != 0 || spacing.WordY != 0) {
					out = append(out, &MoveSpaceControl{MoveControl{
						span: span{end, end},
						DX:   spacing.WordX, DY: spacing.WordY,
					}})
				}
			} else if piece[len(piece)-1] == ' ' {
				out = append(out, &MoveSpaceControl{MoveControl{
					span: span{end, end},
					DX:   spacing.WordX, DY: spacing.WordY,
				}})
			}
			offset += len(piece)
		}
	}
	return out
}

func splitBytes(s []byte) [][]byte {
	parts := make([][]byte, len(s))
	for i := range s {
		parts[i] = s[i : i+1]
	}
	return parts
}
