package questions

import (
	"errors"
	"fmt"
	"strings"

	"connectquiz/internal/quiz"

	"gopkg.in/yaml.v3"
)

const (
	BankKind               = "bank"
	SupportedSchemaVersion = 1
)

// Bank is the YAML manifest format.
type Bank struct {
	Kind          string    `yaml:"kind"`
	SchemaVersion int       `yaml:"schema_version"`
	Sets          []SetSpec `yaml:"sets"`
}

// SetSpec either carries its questions inline or points at another bank or
// set file through Include.
type SetSpec struct {
	Title     string         `yaml:"title"`
	Include   string         `yaml:"include"`
	Shuffle   bool           `yaml:"shuffle"`
	Questions []QuestionSpec `yaml:"questions"`
}

type QuestionSpec struct {
	Type   string     `yaml:"type"`
	Answer string     `yaml:"answer"`
	Clues  []ClueSpec `yaml:"clues"`
}

type ClueSpec struct {
	Text    string `yaml:"text"`
	Picture string `yaml:"picture"`
}

// UnmarshalYAML accepts a bare string as a text clue.
func (c *ClueSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Text = value.Value
		c.Picture = ""
		return nil
	}
	type plain ClueSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = ClueSpec(p)
	return nil
}

func (b Bank) Validate() error {
	if b.Kind != "" && b.Kind != BankKind {
		return fmt.Errorf("unexpected kind %q", b.Kind)
	}
	if b.SchemaVersion != 0 && b.SchemaVersion != SupportedSchemaVersion {
		return fmt.Errorf("unsupported schema_version %d", b.SchemaVersion)
	}
	if len(b.Sets) == 0 {
		return errors.New("bank has no sets")
	}
	var errs []error
	for i, set := range b.Sets {
		if err := set.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sets[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (s SetSpec) Validate() error {
	if strings.TrimSpace(s.Include) != "" {
		if len(s.Questions) > 0 {
			return errors.New("include and questions are mutually exclusive")
		}
		return nil
	}
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("title is required")
	}
	var errs []error
	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("questions[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (q QuestionSpec) Validate() error {
	if _, ok := quiz.ParseQuestionType(q.Type); !ok {
		return fmt.Errorf("invalid question type %q", q.Type)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return errors.New("answer is required")
	}
	if len(q.Clues) != quiz.ClueCount {
		return fmt.Errorf("incorrect number of clues for %q: got %d, want %d", q.Answer, len(q.Clues), quiz.ClueCount)
	}
	for i, c := range q.Clues {
		if strings.TrimSpace(c.Text) == "" && c.Picture == "" {
			return fmt.Errorf("clue %d of %q is empty", i+1, q.Answer)
		}
	}
	return nil
}
