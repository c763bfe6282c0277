package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Capabilities describes what the host terminal can render.
type Capabilities struct {
	TermType      string // e.g. "xterm-256color"
	IsTerminal    bool   // true if stdout is an interactive terminal
	IsRedirected  bool   // true if output is being redirected (piped/file)
	SupportsANSI  bool   // true if ANSI escape codes are supported
	SupportsColor bool   // true if colour output is supported
	ColorDepth    int    // 0=none, 16=extended, 256=256color, 24=truecolor

	// Screen dimensions
	Width  int // columns
	Height int // rows
}

// DetectCapabilities probes stdout and the environment for what the host
// terminal supports.
func DetectCapabilities() Capabilities {
	caps := Capabilities{
		TermType: os.Getenv("TERM"),
		Width:    80,
		Height:   24,
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		caps.IsTerminal = true
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			caps.Width = w
			caps.Height = h
		}
	} else {
		caps.IsRedirected = true
	}

	switch {
	case caps.TermType == "" || caps.TermType == "dumb":
		return caps
	case !caps.IsTerminal:
		return caps
	}
	caps.SupportsANSI = true

	colorterm := os.Getenv("COLORTERM")
	switch {
	case colorterm == "truecolor" || colorterm == "24bit":
		caps.ColorDepth = 24
	case strings.Contains(caps.TermType, "256color"):
		caps.ColorDepth = 256
	default:
		caps.ColorDepth = 16
	}
	caps.SupportsColor = os.Getenv("NO_COLOR") == ""
	return caps
}
