// Package layout fits arbitrary clue and answer text into fixed regions.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Measure reports the rendered width of text in the caller's units (pixels,
// terminal cells, ...).
type Measure func(text string) int

// Cells measures text in terminal display cells.
func Cells(text string) int {
	return runewidth.StringWidth(text)
}

// Wrap splits text into lines no wider than width using greedy left-to-right
// packing. Lines break only at spaces. A word wider than width on its own is
// placed alone on a line and left unsplit. Empty or blank text yields a single
// empty line.
func Wrap(text string, measure Measure, width int) []string {
	words := splitWords(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 1)
	for i := 0; i < len(words); {
		// Longest run of words starting at i that still fits.
		j := i
		for k := i + 1; k < len(words); k++ {
			if measure(strings.Join(words[i:k+1], " ")) > width {
				break
			}
			j = k
		}
		lines = append(lines, strings.Join(words[i:j+1], " "))
		i = j + 1
	}
	return lines
}

// splitWords returns the maximal runs of non-space bytes. Only U+0020
// separates words, so a split can never land inside a multi-byte rune.
func splitWords(text string) []string {
	var words []string
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}
