package layout

// Metrics positions the four clue tiles and the answer bar inside a screen.
// Tiles are four parts wide, the gaps between them one part, and the side
// margins one part each.
type Metrics struct {
	TileWidth    int
	TileHeight   int
	TileX        int
	TileY        int
	TileStride   int
	Padding      int
	AnswerX      int
	AnswerY      int
	AnswerWidth  int
	AnswerHeight int
}

// TileOrigin returns the top-left corner of tile i.
func (m Metrics) TileOrigin(i int) (x, y int) {
	return m.TileX + m.TileStride*i, m.TileY
}

// Gap is the horizontal space between adjacent tiles.
func (m Metrics) Gap() int {
	return m.TileStride - m.TileWidth
}

// FromWindow computes metrics for a window measured in square pixels.
func FromWindow(width, height int) Metrics {
	return fromDimensions(width, height, 1)
}

// FromCells computes metrics for a terminal measured in cells, which are
// roughly twice as tall as they are wide.
func FromCells(cols, rows int) Metrics {
	return fromDimensions(cols, rows, 2)
}

func fromDimensions(width, height, aspect int) Metrics {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tileWidth := width * 8 / 37
	rem := width - 4*tileWidth
	spacing := rem/5 + (rem-rem/5)%2
	margin := (rem - spacing*3) / 2

	tileHeight := tileWidth * 3 / 4 / aspect
	answerWidth := 4*tileWidth + 3*spacing
	answerHeight := tileHeight / 2

	answerY := height - margin/aspect - answerHeight
	tileY := answerY - spacing/aspect - tileHeight
	if tileY < 0 {
		tileY = 0
	}
	if answerY < tileY+tileHeight {
		answerY = tileY + tileHeight
	}

	return Metrics{
		TileWidth:    tileWidth,
		TileHeight:   tileHeight,
		TileX:        margin,
		TileY:        tileY,
		TileStride:   tileWidth + spacing,
		Padding:      tileHeight / 6,
		AnswerX:      margin,
		AnswerY:      answerY,
		AnswerWidth:  answerWidth,
		AnswerHeight: answerHeight,
	}
}
