package session

import (
	"time"

	"connectquiz/internal/phase"
	"connectquiz/internal/quiz"
)

// Read-only queries used by renderers.

func (s *Session) Page() Page      { return s.page }
func (s *Session) Title() string   { return s.title }
func (s *Session) Scores() Scores  { return s.scores }
func (s *Session) Timing() Timing  { return s.timing }
func (s *Session) NextOffer() Team { return s.nextOffer }

// Position reports the 1-based number of the current question and the total.
func (s *Session) Position() (asked, total int) { return s.asked, s.total }

// Question returns the question on screen, if any.
func (s *Session) Question() (quiz.Question, bool) {
	if s.current == nil {
		return quiz.Question{}, false
	}
	return s.current.question, true
}

func (s *Session) Phase() (phase.Phase, bool) {
	if s.current == nil {
		return phase.Phase{}, false
	}
	return s.current.phase, true
}

// Offering is the team the current question was first offered to.
func (s *Session) Offering() (Team, bool) {
	if s.current == nil {
		return Red, false
	}
	return s.current.offered, true
}

func (s *Session) OfferedToRed() bool {
	return s.current != nil && s.current.offered == Red
}

func (s *Session) CluesToShow() int {
	if s.current == nil {
		return 0
	}
	return s.current.phase.CluesToShow()
}

func (s *Session) ClockStopped() bool {
	return s.current != nil && s.current.stopped()
}

// Points is what a correct answer would earn right now, or 0 when nobody can
// answer.
func (s *Session) Points() int {
	if s.current == nil {
		return 0
	}
	p := s.current.phase
	if p.IsCountIn() || p.IsAnswerShown() {
		return 0
	}
	return p.Points()
}

func (s *Session) Background() Background {
	if s.page != QuestionPage || s.current == nil {
		return Neutral
	}
	switch {
	case s.current.phase.IsAnswerShown():
		return Neutral
	case s.current.phase.IsPassedOver():
		return backgroundFor(s.current.offered.Other())
	default:
		return backgroundFor(s.current.offered)
	}
}

// Elapsed is the answer time used so far, frozen once the clock is stopped
// and capped at the answer duration.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.current == nil || s.current.phase.IsCountIn() {
		return 0
	}
	end := now
	if s.current.stopped() {
		end = s.current.stop
	}
	d := end.Sub(s.current.start)
	if d < 0 {
		return 0
	}
	if d > s.timing.Answer {
		return s.timing.Answer
	}
	return d
}

func (s *Session) Remaining(now time.Time) time.Duration {
	return s.timing.Answer - s.Elapsed(now)
}

// Progress is the fraction of answer time left, in [0, 1].
func (s *Session) Progress(now time.Time) float64 {
	if s.timing.Answer <= 0 {
		return 0
	}
	return float64(s.Remaining(now)) / float64(s.timing.Answer)
}

// CountInRemaining is the time left before the first clue appears.
func (s *Session) CountInRemaining(now time.Time) time.Duration {
	if s.current == nil || !s.current.phase.IsCountIn() {
		return 0
	}
	if d := s.current.start.Sub(now); d > 0 {
		return d
	}
	return 0
}

// ProgressBarShown is true while clues are up and the clock has not been
// stopped by a buzz.
func (s *Session) ProgressBarShown() bool {
	return s.current != nil && s.current.phase.IsProgressBarShown() && !s.current.stopped()
}

// FinalCountdown is true in the last seconds of the offering team's time.
func (s *Session) FinalCountdown(now time.Time) bool {
	if s.current == nil || s.current.stopped() || !s.current.phase.IsFirstTeamGuess() {
		return false
	}
	return s.Remaining(now) <= s.timing.Warning
}
