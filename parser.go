package purfecfont

import "encoding/binary"

// Control bytes of the font string format. Bytes 0, 10 and 13 terminate the
// string; any other byte below 32 that is not listed here stops the parse.
const (
	ctrlMoveX       = 9  // move X: 3-byte little-endian delta
	ctrlMoveY       = 11 // move Y: 3-byte little-endian delta
	ctrlGCOL        = 17 // single GCOL colour (bit 7 selects background)
	ctrlGCOLPair    = 18 // GCOL pair: bg, fg, offset
	ctrlRGBPair     = 19 // RGB pair: 3 bg channels, 3 fg channels, offset
	ctrlComment     = 21 // hidden comment, runs to the next byte < 32
	ctrlUnderline   = 25 // underline position and thickness
	ctrlFont        = 26 // font handle
	ctrlMatrix      = 27 // transform without translation, 16.16 fixed point
	ctrlMatrixTrans = 28 // transform with raw signed translation pair
)

// MaxParseLength is the cap on how many bytes a single parse will consume.
const MaxParseLength = 1 << 20

// Parser decodes font control strings into a Sequence. Parse may be called
// repeatedly; records accumulate on the current sequence until Clear.
type Parser struct {
	sequence  *Sequence
	data      []byte
	index     int
	maxLength int
}

// NewParser returns a parser with an empty sequence.
func NewParser() *Parser {
	return &Parser{sequence: &Sequence{}}
}

// Sequence returns the accumulated record sequence.
func (p *Parser) Sequence() *Sequence {
	return p.sequence
}

// Index returns the parse cursor where the last parse stopped (see
// ParseLimited).
func (p *Parser) Index() int {
	return p.index
}

// Clear drops the sequence and resets the parser.
func (p *Parser) Clear() {
	p.sequence = &Sequence{}
	p.Reset()
}

// Reset resets the cursor and buffer but keeps the current sequence.
func (p *Parser) Reset() {
	p.data = nil
	p.index = 0
	p.maxLength = 0
}

// stepBack moves the cursor back one byte.
func (p *Parser) stepBack() {
	if p.index > 0 {
		p.index--
	}
}

// readByte returns the next byte. At or past the end of input it returns 0
// and still advances the cursor, so dispatch sees EOF as an explicit
// terminator and the cursor reaches the enforced maximum.
func (p *Parser) readByte() byte {
	if p.index >= len(p.data) || p.index >= p.maxLength {
		p.index++
		return 0
	}
	b := p.data[p.index]
	p.index++
	return b
}

// readWord reads an unsigned 32-bit little-endian word. When fewer than 4
// bytes remain before the end of input or the enforced maximum it reports
// invalid without advancing.
func (p *Parser) readWord() (uint32, bool) {
	if p.index+4 > len(p.data) || p.index+4 > p.maxLength {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(p.data[p.index:])
	p.index += 4
	return v, true
}

// readSignedWord reads a signed 32-bit little-endian word.
func (p *Parser) readSignedWord() (int32, bool) {
	v, ok := p.readWord()
	return int32(v), ok
}

// readMatrix reads a matrix of 4 or 6 words. The 2x2 submatrix is 16.16
// fixed point; the translation pair is raw.
func (p *Parser) readMatrix(withTranslation bool) (Transform, bool) {
	var w [6]int32
	n := 4
	if withTranslation {
		n = 6
	}
	for i := 0; i < n; i++ {
		v, ok := p.readSignedWord()
		if !ok {
			return Transform{}, false
		}
		w[i] = v
	}
	return Transform{
		A: float64(w[0]) / 65536, B: float64(w[1]) / 65536,
		C: float64(w[2]) / 65536, D: float64(w[3]) / 65536,
		E: float64(w[4]), F: float64(w[5]),
	}, true
}

// align advances the cursor to the next word boundary.
func (p *Parser) align() {
	p.index = (p.index + 3) &^ 3
}

// Parse decodes data up to the default length cap, appending records to the
// current sequence.
func (p *Parser) Parse(data []byte) {
	p.ParseLimited(data, -1)
}

// ParseLimited decodes at most maxLength bytes of data. Values outside
// [0, MaxParseLength] clamp to MaxParseLength. The cursor is left at the
// terminator byte or at the enforced maximum. When the parse stops at an
// unknown control byte, the cursor is left just past that byte; when it stops
// at a truncated matrix record, just past the words that could be read.
func (p *Parser) ParseLimited(data []byte, maxLength int) {
	if maxLength < 0 || maxLength >= MaxParseLength {
		maxLength = MaxParseLength
	}
	p.data = data
	p.maxLength = maxLength
	p.index = 0

	for {
		start := p.index
		b := p.readByte()
		switch {
		case b == 0 || b == 10 || b == 13:
			// Terminator: move back so the cursor points at it.
			p.stepBack()
			return

		case b == ctrlMoveX || b == ctrlMoveY:
			pos := int(p.readByte()) | int(p.readByte())<<8 | int(p.readByte())<<16
			mv := &MoveControl{span: span{start, p.index}}
			if b == ctrlMoveX {
				mv.DX = pos
			} else {
				mv.DY = pos
			}
			p.sequence.Append(mv)

		case b == ctrlGCOL:
			v := p.readByte()
			gc := &GCOLControl{span: span{start, p.index}, FG: -1, BG: -1, Offset: -1}
			if v&0x80 != 0 {
				gc.BG = int(v & 0x7f)
			} else {
				gc.FG = int(v & 0x7f)
			}
			p.sequence.Append(gc)

		case b == ctrlGCOLPair:
			bg := int(p.readByte())
			fg := int(p.readByte())
			offset := int(p.readByte())
			p.sequence.Append(&GCOLControl{span: span{start, p.index}, FG: fg, BG: bg, Offset: offset})

		case b == ctrlRGBPair:
			bg := uint32(p.readByte())<<8 | uint32(p.readByte())<<16 | uint32(p.readByte())<<24 | PackedColourFlag
			fg := uint32(p.readByte())<<8 | uint32(p.readByte())<<16 | uint32(p.readByte())<<24 | PackedColourFlag
			offset := int(p.readByte())
			p.sequence.Append(&RGBControl{span: span{start, p.index}, FG: fg, BG: bg, Offset: offset})

		case b == ctrlComment:
			var comment []byte
			for {
				c := p.readByte()
				if c < 32 {
					break
				}
				comment = append(comment, c)
			}
			p.sequence.Append(&CommentControl{span: span{start, p.index}, Comment: comment})

		case b == ctrlUnderline:
			pos := int(p.readByte())
			if pos > 127 {
				pos -= 256
			}
			thickness := int(p.readByte())
			p.sequence.Append(&UnderlineControl{span: span{start, p.index}, Pos: pos, Thickness: thickness})

		case b == ctrlFont:
			handle := int(p.readByte())
			p.sequence.Append(&FontControl{span: span{start, p.index}, Handle: handle})

		case b == ctrlMatrix || b == ctrlMatrixTrans:
			p.align()
			m, ok := p.readMatrix(b == ctrlMatrixTrans)
			if !ok {
				// Truncated record: nothing is emitted and the parse stops.
				return
			}
			p.sequence.Append(&MatrixControl{span: span{start, p.index}, Matrix: m})

		case b < 32:
			// Unknown control: stop parsing, keep what was emitted.
			return

		default:
			if n := p.sequence.Len(); n > 0 {
				if sc, ok := p.sequence.At(n - 1).(*StringControl); ok {
					sc.Text = append(sc.Text, b)
					sc.end = p.index
					continue
				}
			}
			p.sequence.Append(&StringControl{span: span{start, p.index}, Text: []byte{b}})
		}
	}
}

// SimpleString returns the concatenated printable content of the sequence.
func (p *Parser) SimpleString() []byte {
	var acc []byte
	for _, ctrl := range p.sequence.controls {
		if sc, ok := ctrl.(*StringControl); ok {
			acc = append(acc, sc.Text...)
		}
	}
	return acc
}

// NSkippedControls reports how many bytes of the parsed input were consumed
// by control codes rather than printable content.
func (p *Parser) NSkippedControls() int {
	return p.index - len(p.SimpleString())
}
