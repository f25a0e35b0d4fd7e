package devtools

import (
	"time"

	"connectquiz/internal/session"
)

// Player replays a script against wall-clock instants.
type Player struct {
	script Script
	next   int
	due    time.Time
}

func NewPlayer(script Script, start time.Time) *Player {
	p := &Player{script: script}
	if len(script.Steps) > 0 {
		p.due = start.Add(script.Steps[0].After)
	}
	return p
}

// Due returns every step that has come due by now, merged into one input.
func (p *Player) Due(now time.Time) session.Input {
	var in session.Input
	for p.next < len(p.script.Steps) && !now.Before(p.due) {
		in = in.Merge(p.script.Steps[p.next].Input)
		p.next++
		if p.next < len(p.script.Steps) {
			p.due = p.due.Add(p.script.Steps[p.next].After)
		}
	}
	return in
}

func (p *Player) Done() bool { return p.next >= len(p.script.Steps) }

// Autoplay restarts a script each time the presentation reaches a new page or
// question, rotating through the question scripts.
type Autoplay struct {
	manager  *Manager
	timing   session.Timing
	player   *Player
	page     session.Page
	asked    int
	started  bool
	rotation int
}

func NewAutoplay(manager *Manager, timing session.Timing) *Autoplay {
	return &Autoplay{manager: manager, timing: timing}
}

// Observe tells the autoplay where the presentation is. It returns the name
// of the script it switched to, or "" when nothing changed.
func (a *Autoplay) Observe(page session.Page, asked int, now time.Time) string {
	if a.started && page == a.page && asked == a.asked {
		return ""
	}
	a.started = true
	a.page = page
	a.asked = asked

	var script Script
	switch page {
	case session.QuestionPage:
		name := QuestionScripts[a.rotation%len(QuestionScripts)]
		a.rotation++
		script = a.manager.Resolve(name, a.timing)
	case session.EndPage:
		script = a.manager.Resolve("idle", a.timing)
	default:
		script = a.manager.Resolve("page", a.timing)
	}
	a.player = NewPlayer(script, now)
	return script.Name
}

func (a *Autoplay) Due(now time.Time) session.Input {
	if a.player == nil {
		return session.Input{}
	}
	return a.player.Due(now)
}
