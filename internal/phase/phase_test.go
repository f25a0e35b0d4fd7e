package phase

import (
	"errors"
	"testing"

	"connectquiz/internal/quiz"
)

func expectViolation(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("%s: expected contract violation panic", name)
		}
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrContract) {
			t.Fatalf("%s: expected ErrContract, got %v", name, rec)
		}
	}()
	fn()
}

func TestNextSaturatesAtTypeMaximum(t *testing.T) {
	tests := []struct {
		name string
		kind quiz.QuestionType
		max  int
	}{
		{name: "connection", kind: quiz.Connection, max: 4},
		{name: "sequence", kind: quiz.Sequence, max: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.kind)
			if p.CluesToShow() != 0 {
				t.Fatalf("count-in should show no clues, got %d", p.CluesToShow())
			}
			prev := 0
			for i := 0; i < 8; i++ {
				p.Next()
				got := p.CluesToShow()
				if got < prev {
					t.Fatalf("clues decreased from %d to %d", prev, got)
				}
				prev = got
			}
			if prev != tt.max {
				t.Fatalf("expected saturation at %d, got %d", tt.max, prev)
			}
		})
	}
}

func TestPointSchedule(t *testing.T) {
	tests := []struct {
		name string
		kind quiz.QuestionType
		want []int
	}{
		{name: "connection", kind: quiz.Connection, want: []int{5, 3, 2, 1}},
		{name: "sequence", kind: quiz.Sequence, want: []int{5, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.kind)
			for i, want := range tt.want {
				p.Next()
				if got := p.Points(); got != want {
					t.Fatalf("after %d clues: got %d points, want %d", i+1, got, want)
				}
			}
			p.PassOver()
			if got := p.Points(); got != 1 {
				t.Fatalf("passed over should be worth 1, got %d", got)
			}
		})
	}
}

func TestPassedOverPinsCluesAtTypeMaximum(t *testing.T) {
	c := New(quiz.Connection)
	c.Next()
	c.PassOver()
	if c.CluesToShow() != 4 {
		t.Fatalf("connection passed over: expected 4 clues, got %d", c.CluesToShow())
	}

	s := New(quiz.Sequence)
	s.Next()
	s.PassOver()
	if s.CluesToShow() != 3 {
		t.Fatalf("sequence passed over: expected 3 clues, got %d", s.CluesToShow())
	}
	s.ShowAnswer()
	if s.CluesToShow() != 4 {
		t.Fatalf("sequence answer shown: expected 4 clues, got %d", s.CluesToShow())
	}
}

func TestPredicates(t *testing.T) {
	p := New(quiz.Connection)
	if !p.IsCountIn() || p.IsProgressBarShown() || p.IsFirstTeamGuess() {
		t.Fatalf("unexpected count-in predicates: %s", p)
	}
	p.Next()
	if !p.IsFirstTeamGuess() || !p.IsProgressBarShown() {
		t.Fatalf("unexpected reveal predicates: %s", p)
	}
	p.PassOver()
	if !p.IsPassedOver() || p.IsFirstTeamGuess() || !p.IsProgressBarShown() {
		t.Fatalf("unexpected passed-over predicates: %s", p)
	}
	p.ShowAnswer()
	if !p.IsAnswerShown() || p.IsProgressBarShown() || p.IsFirstTeamGuess() {
		t.Fatalf("unexpected answer predicates: %s", p)
	}
	p.ShowAnswer()
	if !p.IsAnswerShown() {
		t.Fatalf("show answer should be idempotent once terminal")
	}
}

func TestContractViolations(t *testing.T) {
	expectViolation(t, "points in count-in", func() { _ = New(quiz.Connection).Points() })
	expectViolation(t, "pass over in count-in", func() {
		p := New(quiz.Sequence)
		p.PassOver()
	})
	expectViolation(t, "show answer in count-in", func() {
		p := New(quiz.Connection)
		p.ShowAnswer()
	})
	expectViolation(t, "pass over twice", func() {
		p := New(quiz.Connection)
		p.Next()
		p.PassOver()
		p.PassOver()
	})
	expectViolation(t, "next after pass", func() {
		p := New(quiz.Connection)
		p.Next()
		p.PassOver()
		p.Next()
	})
	expectViolation(t, "points after answer", func() {
		p := New(quiz.Sequence)
		p.Next()
		p.ShowAnswer()
		_ = p.Points()
	})
	expectViolation(t, "next after answer", func() {
		p := New(quiz.Sequence)
		p.Next()
		p.ShowAnswer()
		p.Next()
	})
}
