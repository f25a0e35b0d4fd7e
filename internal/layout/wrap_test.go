package layout

import (
	"strings"
	"testing"
)

// byteWidth counts one unit per byte, which keeps expectations easy to read.
func byteWidth(s string) int { return len(s) }

func TestWrapGreedy(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits on one line", text: "red herring", width: 20, want: []string{"red herring"}},
		{name: "exact fit", text: "aaa bbb", width: 7, want: []string{"aaa bbb"}},
		{name: "greedy packing", text: "the quick brown fox jumps", width: 10, want: []string{"the quick", "brown fox", "jumps"}},
		{name: "empty", text: "", width: 10, want: []string{""}},
		{name: "only spaces", text: "    ", width: 10, want: []string{""}},
		{name: "trims outer spaces", text: "  alpha beta  ", width: 5, want: []string{"alpha", "beta"}},
		{name: "collapses inner runs", text: "one   two", width: 20, want: []string{"one two"}},
		{name: "zero width", text: "a b", width: 0, want: []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, byteWidth, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapLeavesLongWordUnsplit(t *testing.T) {
	word := "supercalifragilisticexpialidocious"
	got := Wrap(word, byteWidth, 10)
	if len(got) != 1 || got[0] != word {
		t.Fatalf("expected single unsplit line, got %q", got)
	}

	got = Wrap("a "+word+" b", byteWidth, 10)
	want := []string{"a", word, "b"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrapIsIdempotent(t *testing.T) {
	texts := []string{
		"Things that are found in a kitchen drawer",
		"  spaced   out   words here   ",
		"supercalifragilisticexpialidocious is long",
		"naïve café résumé über straße",
	}
	for _, text := range texts {
		for _, width := range []int{4, 8, 13, 40} {
			for _, line := range Wrap(text, Cells, width) {
				again := Wrap(line, Cells, width)
				if len(again) != 1 || again[0] != line {
					t.Fatalf("rewrap of %q at %d changed it: %q", line, width, again)
				}
			}
		}
	}
}

func TestWrapRoundTrip(t *testing.T) {
	texts := []string{
		"Famous    people   who were  born in Liverpool",
		" leading and trailing ",
		"日本 の 首都 は 東京 です",
	}
	for _, text := range texts {
		want := strings.Join(strings.Fields(text), " ")
		for _, width := range []int{1, 6, 12, 100} {
			lines := Wrap(text, Cells, width)
			if got := strings.Join(lines, " "); got != want {
				t.Fatalf("width %d: got %q, want %q", width, got, want)
			}
			for _, line := range lines {
				if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") {
					t.Fatalf("line %q has a space at its boundary", line)
				}
			}
		}
	}
}

func TestWrapRespectsWidthForMultiByteText(t *testing.T) {
	lines := Wrap("日本 の 首都 は 東京", Cells, 6)
	for _, line := range lines {
		if Cells(line) > 6 {
			t.Fatalf("line %q is %d cells wide", line, Cells(line))
		}
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
}
