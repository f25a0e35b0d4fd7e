// Package session runs a quiz: it walks the question sets, drives each
// question's phase from input and the wall clock, alternates which team is
// offered each question, and keeps both teams' scores.
//
// A Session is owned by a single game loop and is not safe for concurrent use.
package session

import (
	"time"

	"connectquiz/internal/phase"
	"connectquiz/internal/quiz"
)

type Session struct {
	sets   []quiz.QuestionSet
	timing Timing

	page    Page
	cursor  Cursor
	title   string
	current *active

	scores Scores
	// nextOffer is the team the next question will be offered to.
	nextOffer Team
	asked     int
	total     int
}

// active is the question currently on screen.
type active struct {
	question quiz.Question
	phase    phase.Phase
	offered  Team
	start    time.Time
	stop     time.Time
}

func (a *active) stopped() bool { return !a.stop.IsZero() }

// New builds a session positioned on the start page. Zero timing fields fall
// back to DefaultTiming.
func New(sets []quiz.QuestionSet, timing Timing, first Team) *Session {
	def := DefaultTiming()
	if timing.CountIn <= 0 {
		timing.CountIn = def.CountIn
	}
	if timing.Answer <= 0 {
		timing.Answer = def.Answer
	}
	if timing.Warning <= 0 {
		timing.Warning = def.Warning
	}
	return &Session{
		sets:      sets,
		timing:    timing,
		page:      StartPage,
		nextOffer: first,
		total:     quiz.CountQuestions(sets),
	}
}

// Update feeds one tick of input into the session, applies any score change
// and moves to the next page when the result asks for it.
func (s *Session) Update(in Input, now time.Time) Result {
	res := s.step(in, now)
	s.scores.Red += res.RedDelta
	s.scores.Blue += res.BlueDelta
	if res.Advance {
		s.advance(now)
	}
	return res
}

func (s *Session) step(in Input, now time.Time) Result {
	switch s.page {
	case StartPage, TitlePage:
		if in.Advance {
			return Result{Advance: true}
		}
	case QuestionPage:
		return s.current.update(in, now, s.timing)
	}
	return Result{}
}

func (a *active) update(in Input, now time.Time, timing Timing) Result {
	p := &a.phase
	switch {
	case p.IsCountIn():
		if !now.Before(a.start) {
			p.Next()
		}
		return Result{}

	case p.IsAnswerShown():
		return Result{Advance: in.Advance}

	case p.IsPassedOver():
		switch {
		case in.Correct:
			res := Result{}.award(a.offered.Other(), p.Points())
			p.ShowAnswer()
			return res
		case in.Incorrect:
			p.ShowAnswer()
		}
		return Result{}

	case a.stopped():
		switch {
		case in.Correct:
			res := Result{}.award(a.offered, p.Points())
			p.ShowAnswer()
			return res
		case in.Incorrect:
			p.PassOver()
		}
		return Result{}

	default:
		if now.Sub(a.start) >= timing.Answer {
			p.PassOver()
			return Result{}
		}
		if in.Advance {
			p.Next()
		}
		if in.Stop {
			a.stop = now
		}
		return Result{}
	}
}

func (s *Session) advance(now time.Time) {
	s.cursor = s.cursor.Next(s.sets)
	el := s.cursor.Element(s.sets)
	s.current = nil
	switch {
	case el.End:
		s.page = EndPage
	case el.Question == nil:
		s.page = TitlePage
		s.title = el.Title
	default:
		s.page = QuestionPage
		s.title = el.Title
		s.current = &active{
			question: *el.Question,
			phase:    phase.New(el.Question.Type),
			offered:  s.nextOffer,
			start:    now.Add(s.timing.CountIn),
		}
		s.nextOffer = s.nextOffer.Other()
		s.asked++
	}
}
