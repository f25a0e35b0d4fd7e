package app

import (
	"path/filepath"
	"time"

	"connectquiz/internal/phase"
	"connectquiz/internal/quiz"
	"connectquiz/internal/session"
	"connectquiz/internal/ui"
)

// questionSnapshot is the question on screen as it was before a tick, kept so
// that a resolution can be journalled after the phase has moved on.
type questionSnapshot struct {
	active   bool
	asked    int
	title    string
	question quiz.Question
	offered  session.Team
	state    phase.State
	clues    int
	elapsed  time.Duration
}

func snapshot(s *session.Session, now time.Time) questionSnapshot {
	q, ok := s.Question()
	if !ok {
		return questionSnapshot{}
	}
	p, _ := s.Phase()
	offered, _ := s.Offering()
	asked, _ := s.Position()
	return questionSnapshot{
		active:   true,
		asked:    asked,
		title:    s.Title(),
		question: q,
		offered:  offered,
		state:    p.State(),
		clues:    s.CluesToShow(),
		elapsed:  s.Elapsed(now),
	}
}

// resolvedBy reports whether the tick took this question to its answer.
func (q questionSnapshot) resolvedBy(s *session.Session) bool {
	if !q.active || q.state == phase.AnswerShown {
		return false
	}
	p, ok := s.Phase()
	if !ok || !p.IsAnswerShown() {
		return false
	}
	asked, _ := s.Position()
	return asked == q.asked
}

// scorer names the team that gained points in res, or "" when nobody did.
func scorer(res session.Result) (string, int) {
	switch {
	case res.RedDelta > 0:
		return session.Red.String(), res.RedDelta
	case res.BlueDelta > 0:
		return session.Blue.String(), res.BlueDelta
	default:
		return "", 0
	}
}

// frameFor converts the session into what the view draws.
func frameFor(s *session.Session, now time.Time) ui.Frame {
	scores := s.Scores()
	asked, total := s.Position()
	f := ui.Frame{
		Page:       pageFor(s.Page()),
		Title:      s.Title(),
		Background: backgroundFor(s.Background()),
		RedScore:   scores.Red,
		BlueScore:  scores.Blue,
		Asked:      asked,
		Total:      total,
	}
	q, ok := s.Question()
	if !ok || s.Page() != session.QuestionPage {
		return f
	}
	p, _ := s.Phase()
	offered, _ := s.Offering()

	shown := s.CluesToShow()
	clues := make([]ui.Clue, 0, shown)
	for _, c := range q.Clues[:shown] {
		clues = append(clues, clueFor(c))
	}
	f.Question = &ui.QuestionFrame{
		Kind:             q.Type.String(),
		Clues:            clues,
		Sequence:         q.Type == quiz.Sequence,
		Answer:           q.Answer,
		ShowAnswer:       p.IsAnswerShown(),
		OfferedTo:        offered.String(),
		PassedOver:       p.IsPassedOver(),
		Points:           s.Points(),
		CountingIn:       p.IsCountIn(),
		CountInRemaining: s.CountInRemaining(now),
		ShowProgress:     s.ProgressBarShown(),
		Progress:         s.Progress(now),
		Remaining:        s.Remaining(now),
		FinalCountdown:   s.FinalCountdown(now),
		ClockStopped:     s.ClockStopped(),
	}
	return f
}

func clueFor(c quiz.Clue) ui.Clue {
	out := ui.Clue{Text: c.Text, Picture: c.HasImage()}
	if out.Text == "" && c.HasImage() {
		out.Text = filepath.Base(c.Image.Path)
	}
	return out
}

func pageFor(p session.Page) ui.Page {
	switch p {
	case session.TitlePage:
		return ui.PageTitle
	case session.QuestionPage:
		return ui.PageQuestion
	case session.EndPage:
		return ui.PageEnd
	default:
		return ui.PageStart
	}
}

func backgroundFor(b session.Background) ui.Background {
	switch b {
	case session.RedBackground:
		return ui.BackgroundRed
	case session.BlueBackground:
		return ui.BackgroundBlue
	default:
		return ui.BackgroundNeutral
	}
}

func inputFor(in ui.Input) session.Input {
	return session.Input{
		Advance:   in.Advance,
		Stop:      in.Stop,
		Correct:   in.Correct,
		Incorrect: in.Incorrect,
	}
}

// devStateFor is the label written to dev_state.json, e.g. "question:two_clues".
func devStateFor(s *session.Session) string {
	if p, ok := s.Phase(); ok && s.Page() == session.QuestionPage {
		return s.Page().String() + ":" + p.State().String()
	}
	return s.Page().String()
}
