package ui

// DetermineLayoutMode picks how much chrome fits. Below 60x20 the clue tiles
// cannot hold a word, so the view asks for a bigger terminal instead.
func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 60 || rows < 20 {
		return LayoutTooSmall
	}
	if cols >= 120 && rows >= 30 {
		return LayoutWide
	}
	return LayoutCompact
}
