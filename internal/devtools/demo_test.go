package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectquiz/internal/quiz"
	"connectquiz/internal/session"
)

var t0 = time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC)

func TestResolveKnownScriptsNotEmpty(t *testing.T) {
	m := NewManager()
	for _, name := range append([]string{"page"}, QuestionScripts...) {
		s := m.Resolve(name, session.DefaultTiming())
		if s.Name != name {
			t.Fatalf("expected script %q, got %q", name, s.Name)
		}
		if len(s.Steps) == 0 {
			t.Fatalf("script %q has no steps", name)
		}
	}
}

func TestQuestionScriptsFinishBeforeAnswerTimeRunsOut(t *testing.T) {
	m := NewManager()
	timing := session.DefaultTiming()
	for _, name := range QuestionScripts {
		s := m.Resolve(name, timing)
		// The last step advances past the answer, so everything before it
		// must land inside the count-in plus the answer window.
		last := s.Steps[len(s.Steps)-1].After
		if s.Duration()-last >= timing.CountIn+timing.Answer {
			t.Fatalf("script %q outlasts the answer window", name)
		}
	}
}

func TestUnknownScriptIsIdle(t *testing.T) {
	s := NewManager().Resolve("missing", session.DefaultTiming())
	if len(s.Steps) != 0 {
		t.Fatalf("expected idle script, got %+v", s)
	}
}

func TestPlayerMergesStepsDueInOneTick(t *testing.T) {
	p := NewPlayer(Script{Steps: []Step{
		{After: time.Second, Input: session.Input{Advance: true}},
		{After: 0, Input: session.Input{Stop: true}},
		{After: time.Second, Input: session.Input{Correct: true}},
	}}, t0)

	if in := p.Due(t0.Add(500 * time.Millisecond)); !in.Empty() {
		t.Fatalf("expected nothing due yet, got %+v", in)
	}
	in := p.Due(t0.Add(time.Second))
	if !in.Advance || !in.Stop || in.Correct {
		t.Fatalf("expected advance+stop, got %+v", in)
	}
	if p.Done() {
		t.Fatalf("player finished early")
	}
	if in := p.Due(t0.Add(5 * time.Second)); !in.Correct {
		t.Fatalf("expected correct, got %+v", in)
	}
	if !p.Done() {
		t.Fatalf("expected player to be done")
	}
	if in := p.Due(t0.Add(10 * time.Second)); !in.Empty() {
		t.Fatalf("finished player produced %+v", in)
	}
}

func TestAutoplayObserveOnlySwitchesOnChange(t *testing.T) {
	a := NewAutoplay(NewManager(), session.DefaultTiming())
	if got := a.Observe(session.StartPage, 0, t0); got != "page" {
		t.Fatalf("expected page script, got %q", got)
	}
	if got := a.Observe(session.StartPage, 0, t0.Add(time.Second)); got != "" {
		t.Fatalf("expected no switch, got %q", got)
	}
	if got := a.Observe(session.QuestionPage, 1, t0); got != QuestionScripts[0] {
		t.Fatalf("expected %q, got %q", QuestionScripts[0], got)
	}
	if got := a.Observe(session.QuestionPage, 2, t0); got != QuestionScripts[1] {
		t.Fatalf("expected rotation to %q, got %q", QuestionScripts[1], got)
	}
	if got := a.Observe(session.EndPage, 2, t0); got != "idle" {
		t.Fatalf("expected idle on end page, got %q", got)
	}
}

func TestAutoplayDrivesSessionToTheEnd(t *testing.T) {
	clues := func(words ...string) [quiz.ClueCount]quiz.Clue {
		var out [quiz.ClueCount]quiz.Clue
		for i, w := range words {
			out[i] = quiz.Clue{Text: w}
		}
		return out
	}
	sets := []quiz.QuestionSet{
		{Title: "One", Questions: []quiz.Question{
			{Type: quiz.Connection, Answer: "Keys", Clues: clues("Piano", "Map", "Computer", "Florida")},
			{Type: quiz.Sequence, Answer: "Days", Clues: clues("Fri", "Sat", "Sun", "Mon")},
		}},
		{Title: "Two", Questions: []quiz.Question{
			{Type: quiz.Sequence, Answer: "Powers", Clues: clues("2", "4", "8", "16")},
		}},
	}
	timing := session.DefaultTiming()
	s := session.New(sets, timing, session.Red)
	a := NewAutoplay(NewManager(), timing)

	now := t0
	for i := 0; i < 30*60*5 && s.Page() != session.EndPage; i++ {
		asked, _ := s.Position()
		a.Observe(s.Page(), asked, now)
		s.Update(a.Due(now), now)
		now = now.Add(time.Second / 30)
	}
	if s.Page() != session.EndPage {
		t.Fatalf("autoplay did not reach the end page, stuck on %v", s.Page())
	}
	// buzz_correct: red on three clues (2). pass_over: blue offered, red
	// steals (1). both_wrong: nobody.
	if got := s.Scores(); got.Red != 3 || got.Blue != 0 {
		t.Fatalf("unexpected scores %+v", got)
	}
}

func TestSetStateWritesJSON(t *testing.T) {
	dir := t.TempDir()
	if err := NewManager().SetState(context.Background(), dir, " question:two_clues ", true); err != nil {
		t.Fatalf("set state: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "dev_state.json"))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var payload struct {
		State    string `json:"state"`
		Rendered bool   `json:"rendered"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.State != "question:two_clues" || !payload.Rendered {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
