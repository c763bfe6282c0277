package purfecfont

// Spacing defines how words (space-separated runs) and individual characters
// are spaced out during layout, as extra cursor offsets injected between the
// pieces of a string.
type Spacing struct {
	WordX, WordY int // offset added after each word
	CharX, CharY int // offset added after each character
}

// IsZero reports whether no spacing is set.
func (s Spacing) IsZero() bool {
	return s.WordX == 0 && s.WordY == 0 && s.CharX == 0 && s.CharY == 0
}
