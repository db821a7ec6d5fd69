package grapheme

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the terminal cell width of text.
//
// go-runewidth under-reports some emoji sequences as zero; uniseg is used
// as a fallback in that case.
func Width(text string) int {
	if text == "" {
		return 0
	}
	if w := runewidth.StringWidth(text); w > 0 {
		return w
	}
	return uniseg.StringWidth(text)
}

// RuneWidth returns the cell width of a single rune. Tabs and other control
// runes occupy one cell; they are drawn as a space.
func RuneWidth(r rune) int {
	if r == '\t' || r < 0x20 {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// Printable returns the text drawn for r.
func Printable(r rune) string {
	if r == '\t' || r < 0x20 {
		return " "
	}
	return string(r)
}
