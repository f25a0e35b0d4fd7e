package ui

import (
	"fmt"
	"math"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
)

// FrameRate is how often the controller is ticked.
const FrameRate = 30

type applyMsg struct {
	fn func(*Root)
}

type tickMsg time.Time

type gameKeyMap struct {
	Advance   key.Binding
	Buzz      key.Binding
	Correct   key.Binding
	Incorrect key.Binding
	Quit      key.Binding
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Buzz, k.Correct, k.Incorrect, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Advance, k.Buzz}, {k.Correct, k.Incorrect, k.Quit}}
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string

	mu      sync.Mutex
	program *tea.Program
	running bool

	layout LayoutMode
	cols   int
	rows   int

	frame       Frame
	pending     Input
	statusFlash string

	help    help.Model
	keymap  gameKeyMap
	timer   progress.Model
	urgent  progress.Model
	rules   []string
	logger  *clog.Logger
	spring  harmonica.Spring
	redPos  float64
	redVel  float64
	bluePos float64
	blueVel float64

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "connectquiz-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)

	spring := harmonica.NewSpring(harmonica.FPS(FrameRate), 6.0, 0.8)
	if motionLevel == "reduced" {
		spring = harmonica.NewSpring(harmonica.FPS(FrameRate), 9.0, 0.92)
	}
	timer := progress.New(
		progress.WithWidth(40),
		progress.WithColors(theme.Bar...),
		progress.WithScaled(true),
	)
	urgent := progress.New(
		progress.WithWidth(40),
		progress.WithColors(theme.Fail.GetForeground(), theme.Pending.GetForeground()),
	)

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		layout:       LayoutWide,
		cols:         120,
		rows:         30,
		help:         h,
		timer:        timer,
		urgent:       urgent,
		rules:        renderRules(opts.ASCIIOnly),
		logger:       logger,
		spring:       spring,
	}
	r.keymap = gameKeyMap{
		Advance:   key.NewBinding(key.WithKeys("space", "right"), key.WithHelp("space", "next")),
		Buzz:      key.NewBinding(key.WithKeys("enter", "b"), key.WithHelp("enter", "buzz")),
		Correct:   key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "correct")),
		Incorrect: key.NewBinding(key.WithKeys("n", "x"), key.WithHelp("n", "wrong")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "quit")),
	}
	return r
}

const rulesMarkdown = `## How to play

- Every question hides a **connection** between four clues, or a **sequence** to complete.
- Clues appear one at a time. Answer early for more points: 5, 3, 2, then 1.
- Buzz to stop the clock. The host then marks the answer right or wrong.
- A wrong answer or running out of time passes the question over for a bonus point.
- For a sequence only three clues are shown: name what comes fourth.
`

// renderRules formats the rules once; styling is dropped so the lines can sit
// on any background.
func renderRules(ascii bool) []string {
	style := "dark"
	if ascii {
		style = "ascii"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		return strings.Split(strings.TrimSpace(rulesMarkdown), "\n")
	}
	out, err := renderer.Render(rulesMarkdown)
	if err != nil {
		return strings.Split(strings.TrimSpace(rulesMarkdown), "\n")
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		lines = append(lines, strings.TrimRight(stripANSI(line), " "))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (r *Root) Init() tea.Cmd {
	return tickCmd()
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
			// Keep the frame clock alive so the game does not freeze.
			if _, ok := msg.(tickMsg); ok {
				cmd = tickCmd()
			}
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, nil
	case tickMsg:
		r.tick(time.Time(msg))
		return r, tickCmd()
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

// tick hands the keys gathered since the last frame to the controller.
func (r *Root) tick(now time.Time) {
	in := r.pending
	r.pending = Input{}
	if r.ctrl != nil {
		r.frame = r.ctrl.OnTick(in, now)
	}
	r.animateScores()
}

func (r *Root) animateScores() {
	red := float64(r.frame.RedScore)
	blue := float64(r.frame.BlueScore)
	if r.motionLevel == "off" {
		r.redPos, r.redVel = red, 0
		r.bluePos, r.blueVel = blue, 0
		return
	}
	r.redPos, r.redVel = r.spring.Update(r.redPos, r.redVel, red)
	r.bluePos, r.blueVel = r.spring.Update(r.bluePos, r.blueVel, blue)
	if settled(r.redPos, r.redVel, red) {
		r.redPos, r.redVel = red, 0
	}
	if settled(r.bluePos, r.blueVel, blue) {
		r.bluePos, r.blueVel = blue, 0
	}
}

func settled(pos, vel, target float64) bool {
	return math.Abs(pos-target) < 0.01 && math.Abs(vel) < 0.01
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	switch {
	case key.Matches(msg, r.keymap.Quit):
		if r.ctrl != nil {
			r.ctrl.OnQuit()
		}
		return r, tea.Quit
	case key.Matches(msg, r.keymap.Advance):
		r.pending.Advance = true
	case key.Matches(msg, r.keymap.Buzz):
		r.pending.Stop = true
	case key.Matches(msg, r.keymap.Correct):
		r.pending.Correct = true
	case key.Matches(msg, r.keymap.Incorrect):
		r.pending.Incorrect = true
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			msg := "UI recovered from a rendering panic. Check logs."
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 30
	}

	v := tea.NewView(r.render())
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "modern_arcade"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
	r.logger.Debug("ui.input", "event", r.lastInputEvent)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"page", r.frame.Page,
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
