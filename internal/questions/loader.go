package questions

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"connectquiz/internal/quiz"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleBank []byte

// maxIncludeDepth guards against include cycles.
const maxIncludeDepth = 8

type FSLoader struct {
	rng *rand.Rand
}

// NewLoader returns a loader whose shuffles are driven by seed; a zero seed
// picks a random one.
func NewLoader(seed uint64) *FSLoader {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &FSLoader{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// LoadBank reads a question bank. YAML files (.yaml, .yml) are bank
// manifests; any other file is either a text manifest of include lines or a
// single text set file. Every problem found is reported, joined into one
// error.
func (l *FSLoader) LoadBank(ctx context.Context, path string) ([]quiz.QuestionSet, error) {
	return l.load(ctx, path, 0)
}

// LoadSample returns the built-in bank used by demo mode.
func (l *FSLoader) LoadSample() ([]quiz.QuestionSet, error) {
	return l.loadYAML(context.Background(), "sample.yaml", sampleBank, ".", 0)
}

func (l *FSLoader) load(ctx context.Context, path string, depth int) ([]quiz.QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > maxIncludeDepth {
		return nil, fmt.Errorf("%s: includes nested deeper than %d", path, maxIncludeDepth)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.loadYAML(ctx, path, data, dir, depth)
	}
	if looksLikeManifest(data) {
		return l.loadManifest(ctx, path, data, dir, depth)
	}
	set, err := parseSetText(path, bytes.NewReader(data), picturesFrom(dir))
	if err != nil {
		return nil, err
	}
	return []quiz.QuestionSet{set}, nil
}

func (l *FSLoader) loadManifest(ctx context.Context, path string, data []byte, dir string, depth int) ([]quiz.QuestionSet, error) {
	includes, err := parseManifestText(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var sets []quiz.QuestionSet
	var errs []error
	for _, inc := range includes {
		loaded, err := l.load(ctx, resolve(dir, inc.path), depth+1)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s:%d: %w", path, inc.line, err))
			continue
		}
		if inc.shuffle {
			for i := range loaded {
				l.shuffle(loaded[i].Questions)
			}
		}
		sets = append(sets, loaded...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sets, nil
}

func (l *FSLoader) loadYAML(ctx context.Context, path string, data []byte, dir string, depth int) ([]quiz.QuestionSet, error) {
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var sets []quiz.QuestionSet
	var errs []error
	for i, spec := range bank.Sets {
		var loaded []quiz.QuestionSet
		if spec.Include != "" {
			inc, err := l.load(ctx, resolve(dir, spec.Include), depth+1)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: sets[%d]: %w", path, i, err))
				continue
			}
			if spec.Title != "" && len(inc) == 1 {
				inc[0].Title = spec.Title
			}
			loaded = inc
		} else {
			set, err := buildSet(spec, picturesFrom(dir))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: sets[%d]: %w", path, i, err))
				continue
			}
			loaded = []quiz.QuestionSet{set}
		}
		if spec.Shuffle {
			for j := range loaded {
				l.shuffle(loaded[j].Questions)
			}
		}
		sets = append(sets, loaded...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sets, nil
}

func buildSet(spec SetSpec, pictures readPicture) (quiz.QuestionSet, error) {
	set := quiz.QuestionSet{Title: strings.TrimSpace(spec.Title)}
	var errs []error
	for _, qs := range spec.Questions {
		kind, _ := quiz.ParseQuestionType(qs.Type)
		q := quiz.Question{Type: kind, Answer: strings.TrimSpace(qs.Answer)}
		for i, cs := range qs.Clues {
			clue := quiz.Clue{Text: cs.Text}
			if cs.Picture != "" {
				data, err := pictures(cs.Picture)
				if err != nil {
					errs = append(errs, fmt.Errorf("could not load image %s: %w", cs.Picture, err))
					continue
				}
				clue.Image = &quiz.Image{Path: cs.Picture, Data: data}
			}
			q.Clues[i] = clue
		}
		set.Questions = append(set.Questions, q)
	}
	if len(errs) > 0 {
		return quiz.QuestionSet{}, errors.Join(errs...)
	}
	return set, nil
}

func (l *FSLoader) shuffle(qs []quiz.Question) {
	l.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}

func picturesFrom(dir string) readPicture {
	return func(path string) ([]byte, error) {
		return os.ReadFile(resolve(dir, path))
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
