package questions

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"connectquiz/internal/quiz"
)

// Text set files look like:
//
//	Round title
//	    connection: The answer
//	        first clue
//	        picture: images/clue.png Caption for the picture
//	        ...
//	    sequence: Another answer
//	        ...
//
// Manifests list set files, one per line:
//
//	include_shuffle: round1.txt
//	include: final.txt

const (
	questionIndent = "    "
	clueIndent     = "        "
)

var pictureCluePattern = regexp.MustCompile(`^        picture: (\S+) (\S.*)$`)

// pendingQuestion is a question whose clues are still being read.
type pendingQuestion struct {
	kind   quiz.QuestionType
	answer string
	clues  []quiz.Clue
	line   int
}

// readPicture loads the bytes of a picture clue.
type readPicture func(path string) ([]byte, error)

func parseSetText(name string, r io.Reader, pictures readPicture) (quiz.QuestionSet, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return quiz.QuestionSet{}, fmt.Errorf("%s: %w", name, err)
		}
		return quiz.QuestionSet{}, fmt.Errorf("%s: no lines in file", name)
	}
	set := quiz.QuestionSet{Title: strings.TrimSpace(sc.Text())}

	var errs []error
	var current *pendingQuestion
	closeQuestion := func() {
		if current == nil {
			return
		}
		if len(current.clues) != quiz.ClueCount {
			errs = append(errs, fmt.Errorf("%s:%d: incorrect number of clues for %q: got %d, want %d",
				name, current.line, current.answer, len(current.clues), quiz.ClueCount))
		} else {
			q := quiz.Question{Type: current.kind, Answer: current.answer}
			copy(q.Clues[:], current.clues)
			set.Questions = append(set.Questions, q)
		}
		current = nil
	}
	addClue := func(lineNo int, clue quiz.Clue) {
		if current == nil {
			errs = append(errs, fmt.Errorf("%s:%d: clue %q doesn't belong to a question", name, lineNo, clue.Text))
			return
		}
		current.clues = append(current.clues, clue)
	}

	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if answer, ok := strings.CutPrefix(line, questionIndent+"sequence: "); ok {
			closeQuestion()
			current = &pendingQuestion{kind: quiz.Sequence, answer: answer, line: lineNo}
			continue
		}
		if answer, ok := strings.CutPrefix(line, questionIndent+"connection: "); ok {
			closeQuestion()
			current = &pendingQuestion{kind: quiz.Connection, answer: answer, line: lineNo}
			continue
		}
		if m := pictureCluePattern.FindStringSubmatch(line); m != nil {
			data, err := pictures(m[1])
			if err != nil {
				errs = append(errs, fmt.Errorf("%s:%d: could not load image %s: %w", name, lineNo, m[1], err))
				continue
			}
			addClue(lineNo, quiz.Clue{Text: m[2], Image: &quiz.Image{Path: m[1], Data: data}})
			continue
		}
		if text, ok := strings.CutPrefix(line, clueIndent); ok {
			addClue(lineNo, quiz.Clue{Text: text})
			continue
		}
		errs = append(errs, fmt.Errorf("%s:%d: %q is neither a question nor a clue", name, lineNo, line))
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	closeQuestion()

	if len(errs) > 0 {
		return quiz.QuestionSet{}, errors.Join(errs...)
	}
	return set, nil
}

type includeDirective struct {
	path    string
	shuffle bool
	line    int
}

func parseManifestText(name string, r io.Reader) ([]includeDirective, error) {
	var out []includeDirective
	var errs []error
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		trimmed := strings.TrimSpace(sc.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if path, ok := strings.CutPrefix(trimmed, "include_shuffle: "); ok {
			out = append(out, includeDirective{path: strings.TrimSpace(path), shuffle: true, line: lineNo})
			continue
		}
		if path, ok := strings.CutPrefix(trimmed, "include: "); ok {
			out = append(out, includeDirective{path: strings.TrimSpace(path), line: lineNo})
			continue
		}
		errs = append(errs, fmt.Errorf("%s:%d: unknown command %q", name, lineNo, trimmed))
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// looksLikeManifest reports whether the first meaningful line of a text file
// is an include directive.
func looksLikeManifest(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return strings.HasPrefix(trimmed, "include_shuffle:") || strings.HasPrefix(trimmed, "include:")
	}
	return false
}
