package ui

import (
	"fmt"
	"math"
	"strings"

	"connectquiz/internal/layout"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// segment is a run of text drawn in one style. Raw segments are already
// styled and are written as is.
type segment struct {
	text  string
	style lipgloss.Style
	raw   bool
}

type textLine []segment

func plain(text string, style lipgloss.Style) textLine {
	return textLine{{text: text, style: style}}
}

func (l textLine) width() int {
	w := 0
	for _, s := range l {
		if s.raw {
			w += ansi.StringWidth(s.text)
		} else {
			w += runewidth.StringWidth(s.text)
		}
	}
	return w
}

func (l textLine) plainText() string {
	var b strings.Builder
	for _, s := range l {
		if s.raw {
			b.WriteString(ansi.Strip(s.text))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

func (l textLine) render(base lipgloss.Style) string {
	var b strings.Builder
	for _, s := range l {
		if s.raw {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(s.style.Inherit(base).Render(s.text))
	}
	return b.String()
}

func (r *Root) render() string {
	if r.layout == LayoutTooSmall {
		return r.renderTooSmall()
	}
	bodyRows := max(1, r.rows-2)
	canvas := r.theme.Canvas(r.frame.Background)

	var body []string
	switch r.frame.Page {
	case PageTitle:
		body = r.renderTitle(canvas, bodyRows)
	case PageQuestion:
		body = r.renderQuestion(canvas, bodyRows)
	case PageEnd:
		body = r.renderEnd(canvas, bodyRows)
	default:
		body = r.renderStart(canvas, bodyRows)
	}

	lines := make([]string, 0, r.rows)
	lines = append(lines, r.headerLine())
	lines = append(lines, body...)
	lines = append(lines, r.footerLine())
	return strings.Join(lines, "\n")
}

func (r *Root) renderTooSmall() string {
	canvas := r.theme.Canvas(BackgroundNeutral)
	lines := []textLine{
		plain("Terminal too small", r.theme.Fail),
		plain(fmt.Sprintf("Need at least 60x20, have %dx%d", r.cols, r.rows), r.theme.Muted),
	}
	return strings.Join(r.block(canvas, lines, max(1, r.rows)), "\n")
}

func (r *Root) renderStart(canvas lipgloss.Style, rows int) []string {
	f := r.frame
	lines := []textLine{plain("CONNECTQUIZ", r.theme.Accent), nil}

	rulesWidth := 0
	for _, line := range r.rules {
		rulesWidth = max(rulesWidth, runewidth.StringWidth(line))
	}
	if rows >= len(r.rules)+8 {
		for _, line := range r.rules {
			lines = append(lines, plain(padCells(line, rulesWidth), lipgloss.NewStyle()))
		}
		lines = append(lines, nil)
	}

	lines = append(lines, plain(fmt.Sprintf("%d %s in %d %s %s %s team starts",
		f.Start.Questions, plural(f.Start.Questions, "question"),
		f.Start.Sets, plural(f.Start.Sets, "set"),
		r.sep(), strings.ToUpper(f.Start.FirstTeam)), r.theme.Muted))
	if f.Start.GamesPlayed > 0 {
		lines = append(lines, plain(fmt.Sprintf("%d %s played %s best score %d %s red %d, blue %d",
			f.Start.GamesPlayed, plural(f.Start.GamesPlayed, "game"), r.sep(),
			f.Start.BestScore, r.sep(), f.Start.RedWins, f.Start.BlueWins), r.theme.Muted))
	}
	lines = append(lines, nil, plain("Press space to begin", r.theme.Pending))
	return r.block(canvas, lines, rows)
}

func (r *Root) renderTitle(canvas lipgloss.Style, rows int) []string {
	f := r.frame
	lines := []textLine{
		plain(f.Title, r.theme.Accent),
		nil,
		plain(fmt.Sprintf("Next up: question %d of %d", f.Asked+1, f.Total), r.theme.Muted),
		r.scoreLine(f.RedScore, f.BlueScore),
		nil,
		plain("Press space to start the round", r.theme.Pending),
	}
	return r.block(canvas, lines, rows)
}

func (r *Root) renderEnd(canvas lipgloss.Style, rows int) []string {
	f := r.frame
	winner := plain("It's a draw", r.theme.Accent)
	switch {
	case f.RedScore > f.BlueScore:
		winner = plain("Red team wins!", r.theme.RedTeam)
	case f.BlueScore > f.RedScore:
		winner = plain("Blue team wins!", r.theme.BlueTeam)
	}
	lines := []textLine{
		plain("Game over", r.theme.Accent),
		nil,
		r.scoreLine(f.RedScore, f.BlueScore),
		winner,
		nil,
		plain("Press esc to leave", r.theme.Muted),
	}
	return r.block(canvas, lines, rows)
}

func (r *Root) renderQuestion(canvas lipgloss.Style, rows int) []string {
	q := r.frame.Question
	out := r.blank(canvas, rows)
	if q == nil {
		return out
	}
	m := layout.FromCells(r.cols, rows)

	info := r.block(canvas, r.questionInfo(q), max(0, m.TileY))
	copy(out, info)

	tiles := make([][]string, 4)
	for i := range tiles {
		switch {
		case i < len(q.Clues):
			tiles[i] = tile(r.clueText(q.Clues[i]), m.TileWidth, m.TileHeight, m.Padding, r.theme.Tile)
		case q.Sequence && !q.ShowAnswer && i == 3 && len(q.Clues) == 3:
			tiles[i] = tile("?", m.TileWidth, m.TileHeight, m.Padding, r.theme.TileHidden)
		}
	}
	for row := 0; row < m.TileHeight; row++ {
		y := m.TileY + row
		if y < 0 || y >= rows {
			continue
		}
		var b strings.Builder
		x := 0
		for i, t := range tiles {
			tx, _ := m.TileOrigin(i)
			b.WriteString(canvas.Render(spaces(tx - x)))
			if t != nil {
				b.WriteString(t[row])
			} else {
				b.WriteString(canvas.Render(spaces(m.TileWidth)))
			}
			x = tx + m.TileWidth
		}
		b.WriteString(canvas.Render(spaces(r.cols - x)))
		out[y] = b.String()
	}

	if q.ShowAnswer {
		height := max(1, m.AnswerHeight)
		bar := tile(q.Answer, m.AnswerWidth, height, 0, r.theme.Answer)
		for row, line := range bar {
			y := m.AnswerY + row
			if y < 0 || y >= rows {
				continue
			}
			out[y] = canvas.Render(spaces(m.AnswerX)) + line + canvas.Render(spaces(r.cols-m.AnswerX-m.AnswerWidth))
		}
	}
	return out
}

func (r *Root) questionInfo(q *QuestionFrame) []textLine {
	f := r.frame
	lines := []textLine{
		plain(fmt.Sprintf("Question %d of %d %s %s", f.Asked, f.Total, r.sep(), q.Kind), r.theme.Muted),
	}

	offered := strings.ToUpper(q.OfferedTo)
	other := "BLUE"
	if offered == "BLUE" {
		other = "RED"
	}
	switch {
	case q.CountingIn:
		secs := int(math.Ceil(q.CountInRemaining.Seconds()))
		lines = append(lines, textLine{
			{text: offered, style: r.teamStyle(offered)},
			{text: fmt.Sprintf(" team, first clue in %d", secs), style: r.theme.Accent},
		})
	case q.ShowAnswer:
		lines = append(lines, plain("The answer", r.theme.Accent))
	case q.PassedOver:
		lines = append(lines, textLine{
			{text: "Over to ", style: r.theme.Accent},
			{text: other, style: r.teamStyle(other)},
			{text: fmt.Sprintf(" for %d bonus %s", q.Points, plural(q.Points, "point")), style: r.theme.Accent},
		})
	case q.ClockStopped:
		lines = append(lines, textLine{
			{text: offered, style: r.teamStyle(offered)},
			{text: fmt.Sprintf(" buzzed for %d %s", q.Points, plural(q.Points, "point")), style: r.theme.Accent},
		})
	default:
		lines = append(lines, textLine{
			{text: offered, style: r.teamStyle(offered)},
			{text: fmt.Sprintf(" team %s %d %s", r.sep(), q.Points, plural(q.Points, "point")), style: r.theme.Accent},
		})
	}

	if q.ShowProgress {
		lines = append(lines, r.timerLine(q))
	} else if (q.ClockStopped || q.PassedOver) && !q.ShowAnswer {
		lines = append(lines, plain("Correct (y) or wrong (n)?", r.theme.Pending))
	}
	return lines
}

func (r *Root) timerLine(q *QuestionFrame) textLine {
	width := max(10, min(60, r.cols-16))
	bar := r.timer
	secsStyle := r.theme.Accent
	if q.FinalCountdown {
		bar = r.urgent
		secsStyle = r.theme.Fail
	}
	bar.SetWidth(width)
	secs := int(math.Ceil(q.Remaining.Seconds()))
	return textLine{
		{text: bar.ViewAs(clamp01(q.Progress)), raw: true},
		{text: fmt.Sprintf(" %3ds", secs), style: secsStyle},
	}
}

func (r *Root) scoreLine(red, blue int) textLine {
	return textLine{
		{text: "RED ", style: r.theme.RedTeam},
		{text: fmt.Sprintf("%d", red), style: r.theme.Accent},
		{text: "   ", style: lipgloss.NewStyle()},
		{text: "BLUE ", style: r.theme.BlueTeam},
		{text: fmt.Sprintf("%d", blue), style: r.theme.Accent},
	}
}

func (r *Root) headerLine() string {
	base := r.theme.Header.UnsetPadding()
	left := " connectquiz"
	if r.frame.Title != "" && r.frame.Page != PageStart {
		left += " " + r.sep() + " " + r.frame.Title
	}
	right := r.scoreLine(int(math.Round(r.redPos)), int(math.Round(r.bluePos)))
	right = append(right, segment{text: " ", style: lipgloss.NewStyle()})

	left = trimForWidth(left, max(0, r.cols-right.width()-1))
	fill := r.cols - runewidth.StringWidth(left) - right.width()
	if fill < 0 {
		return base.Render(padCells(left, r.cols))
	}
	return base.Render(left) + base.Render(spaces(fill)) + right.render(base)
}

func (r *Root) footerLine() string {
	base := r.theme.Status.UnsetPadding()
	status := r.statusFlash
	if status == "" {
		status = r.frame.Status
	}
	if r.debug {
		status = strings.TrimSpace(status + " " + r.layout.String())
	}
	if status != "" {
		status += " "
	}
	status = trimForWidth(status, max(0, r.cols/2))

	helpText := r.help.View(r.keymap)
	room := r.cols - 1 - runewidth.StringWidth(status)
	if ansi.StringWidth(helpText) > room {
		helpText = ansi.Truncate(helpText, max(0, room), "…")
	}
	fill := room - ansi.StringWidth(helpText)
	return base.Render(" ") + helpText + base.Render(spaces(fill)) + base.Render(status)
}

// block centres lines horizontally and the block vertically in rows lines.
func (r *Root) block(canvas lipgloss.Style, lines []textLine, rows int) []string {
	out := r.blank(canvas, rows)
	top := (rows - len(lines)) / 2
	for i, line := range lines {
		y := top + i
		if y < 0 || y >= rows {
			continue
		}
		out[y] = r.center(canvas, line)
	}
	return out
}

func (r *Root) center(canvas lipgloss.Style, line textLine) string {
	if len(line) == 0 {
		return canvas.Render(spaces(r.cols))
	}
	w := line.width()
	rendered := ""
	if w > r.cols {
		text := trimForWidth(line.plainText(), r.cols)
		w = runewidth.StringWidth(text)
		rendered = line[0].style.Inherit(canvas).Render(text)
	} else {
		rendered = line.render(canvas)
	}
	left := (r.cols - w) / 2
	return canvas.Render(spaces(left)) + rendered + canvas.Render(spaces(r.cols-left-w))
}

func (r *Root) blank(canvas lipgloss.Style, rows int) []string {
	line := canvas.Render(spaces(r.cols))
	out := make([]string, rows)
	for i := range out {
		out[i] = line
	}
	return out
}

// tile draws text wrapped and centred in a width×height box, keeping pad
// blank rows above and below.
func tile(text string, width, height, pad int, style lipgloss.Style) []string {
	if height < 1 {
		return nil
	}
	inner := max(1, width-2)
	if height-2*pad < 1 {
		pad = 0
	}
	rows := make([]string, height)
	for i := range rows {
		rows[i] = spaces(width)
	}
	for _, p := range layout.Fit(text, layout.Cells, inner, height-2*pad, 1) {
		y := p.Y + pad
		if y < 0 || y >= height {
			continue
		}
		line := runewidth.Truncate(p.Text, inner, "…")
		x := 1 + max(0, p.X)
		rows[y] = spaces(x) + line + spaces(width-x-runewidth.StringWidth(line))
	}
	for i := range rows {
		rows[i] = style.Render(rows[i])
	}
	return rows
}

func (r *Root) clueText(c Clue) string {
	if !c.Picture {
		return c.Text
	}
	if r.ascii {
		return "[pic] " + c.Text
	}
	return "▣ " + c.Text
}

func (r *Root) teamStyle(team string) lipgloss.Style {
	if strings.EqualFold(team, "blue") {
		return r.theme.BlueTeam
	}
	return r.theme.RedTeam
}

func (r *Root) sep() string {
	if r.ascii {
		return "-"
	}
	return "·"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func padCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(strings.ReplaceAll(s, "\t", "    "), width, "")
	return s + spaces(width-runewidth.StringWidth(s))
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(ansi.Strip(s), "\n", " ")
	return runewidth.Truncate(s, width, "…")
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}
