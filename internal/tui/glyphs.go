package tui

import (
	"strings"
	"sync"
)

// Some terminals and fonts render box and check glyphs badly; ascii swaps
// them for plain characters.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphCheckbox(done bool) string {
	switch {
	case glyphs() == glyphSetASCII && done:
		return "[x]"
	case glyphs() == glyphSetASCII:
		return "[ ]"
	case done:
		return "✔"
	default:
		return "○"
	}
}

// glyphToggleAll is the chevron left of the new item field; it lights up when
// every task is done.
func glyphToggleAll() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "❯"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "·"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
