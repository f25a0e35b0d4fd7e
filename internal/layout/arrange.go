package layout

// Placed is a line of text with the offset of its top-left corner inside the
// region it was arranged in.
type Placed struct {
	Text string
	X    int
	Y    int
}

// Arrange centres lines horizontally and the block as a whole vertically
// inside a width×height region. lineHeight is the distance between baselines
// in the same units as height. Offsets may be negative when text overflows.
func Arrange(lines []string, measure Measure, width, height, lineHeight int) []Placed {
	if lineHeight < 1 {
		lineHeight = 1
	}
	top := (height - len(lines)*lineHeight) / 2
	out := make([]Placed, 0, len(lines))
	for i, line := range lines {
		out = append(out, Placed{
			Text: line,
			X:    (width - measure(line)) / 2,
			Y:    top + i*lineHeight,
		})
	}
	return out
}

// Fit wraps text to width and centres the result in the region.
func Fit(text string, measure Measure, width, height, lineHeight int) []Placed {
	return Arrange(Wrap(text, measure, width), measure, width, height, lineHeight)
}
