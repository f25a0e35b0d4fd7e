package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectquiz/internal/session"
)

// Config controls runtime behavior for the quiz app.
type Config struct {
	QuestionsPath string
	Demo          bool
	DevStateDir   string
	LogPath       string
	LogLevel      string
	Debug         bool
	ASCIIOnly     bool
	DataDir       string
	NoHistory     bool
	Seed          uint64
	FirstTeam     string
	Timing        TimingConfig
	UI            UIConfig
}

type TimingConfig struct {
	CountIn time.Duration
	Answer  time.Duration
	Warning time.Duration
}

type UIConfig struct {
	StyleVariant string
	MotionLevel  string
}

func DefaultConfig() Config {
	def := session.DefaultTiming()
	return Config{
		LogLevel:  "info",
		FirstTeam: "red",
		Timing: TimingConfig{
			CountIn: def.CountIn,
			Answer:  def.Answer,
			Warning: def.Warning,
		},
		UI: UIConfig{
			StyleVariant: "modern_arcade",
			MotionLevel:  "full",
		},
	}
}

func (c *Config) Validate() error {
	c.QuestionsPath = strings.TrimSpace(c.QuestionsPath)
	if c.QuestionsPath == "" && !c.Demo {
		return errors.New("no question bank given: pass --questions or --demo")
	}

	c.FirstTeam = strings.ToLower(strings.TrimSpace(c.FirstTeam))
	switch c.FirstTeam {
	case "", "red", "blue":
	default:
		return fmt.Errorf("invalid first team %q", c.FirstTeam)
	}
	if c.FirstTeam == "" {
		c.FirstTeam = "red"
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Debug {
		c.LogLevel = "debug"
	}

	def := session.DefaultTiming()
	if c.Timing.CountIn < 0 || c.Timing.Answer < 0 || c.Timing.Warning < 0 {
		return errors.New("timings must not be negative")
	}
	if c.Timing.CountIn == 0 {
		c.Timing.CountIn = def.CountIn
	}
	if c.Timing.Answer == 0 {
		c.Timing.Answer = def.Answer
	}
	if c.Timing.Warning == 0 {
		c.Timing.Warning = def.Warning
	}
	if c.Timing.Warning > c.Timing.Answer {
		return fmt.Errorf("warning %v is longer than the answer time %v", c.Timing.Warning, c.Timing.Answer)
	}

	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "connectquiz")
	}
	return nil
}

func (c Config) sessionTiming() session.Timing {
	return session.Timing{
		CountIn: c.Timing.CountIn,
		Answer:  c.Timing.Answer,
		Warning: c.Timing.Warning,
	}
}

func (c Config) firstTeam() session.Team {
	if c.FirstTeam == "blue" {
		return session.Blue
	}
	return session.Red
}
