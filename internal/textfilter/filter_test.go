package textfilter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testFilter(terms []string, windowSize, mergeGap int) *Filter {
	return New(terms, windowSize, mergeGap, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApplyPassThroughWithoutTerms(t *testing.T) {
	text := "some contract text about assignment"
	if got := testFilter(nil, 10, 100).Apply(text); got != text {
		t.Fatalf("expected pass-through with no terms, got %q", got)
	}
}

func TestApplyEmptyText(t *testing.T) {
	if got := testFilter([]string{"assignment"}, 10, 100).Apply(""); got != "" {
		t.Fatalf("expected empty output for empty input, got %q", got)
	}
}

func TestApplyNoMatches(t *testing.T) {
	got := testFilter([]string{"indemnification"}, 10, 100).Apply("nothing relevant in here at all")
	if got != "" {
		t.Fatalf("expected empty output when no terms match, got %q", got)
	}
}

func TestApplyCaseInsensitiveSubstringMatch(t *testing.T) {
	text := "alpha beta ASSIGNMENTS gamma delta"
	got := testFilter([]string{"assignment"}, 2, 100).Apply(text)
	if !strings.Contains(got, "ASSIGNMENTS") {
		t.Fatalf("expected substring match to keep the word, got %q", got)
	}
}

func TestApplyKeepsWindowAroundMatch(t *testing.T) {
	// 21 words, match at index 10, window of 6 keeps indexes 7..13.
	words := make([]string, 21)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	words[10] = "assignment"
	text := strings.Join(words, " ")

	got := testFilter([]string{"assignment"}, 6, 100).Apply(text)
	kept := strings.Fields(got)
	if len(kept) != 6 {
		t.Fatalf("expected 6 words kept, got %d: %q", len(kept), got)
	}
	if kept[0] != "w7" || kept[len(kept)-1] != "w12" {
		t.Fatalf("unexpected window bounds: %v", kept)
	}
}

func TestApplyDistantMatchesYieldSeparateSections(t *testing.T) {
	// Two matches far apart with a small merge gap produce two sections
	// joined by a blank line.
	var words []string
	words = append(words, "assignment")
	for i := 0; i < 50; i++ {
		words = append(words, "filler")
	}
	words = append(words, "notice")
	text := strings.Join(words, " ")

	got := testFilter([]string{"assignment", "notice"}, 4, 10).Apply(text)
	sections := strings.Split(got, "\n\n")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %q", len(sections), got)
	}
	if !strings.Contains(sections[0], "assignment") || !strings.Contains(sections[1], "notice") {
		t.Fatalf("sections lost their matches: %q", got)
	}
}

func TestApplyNearbyMatchesMergeIntoOneSection(t *testing.T) {
	var words []string
	words = append(words, "assignment")
	for i := 0; i < 20; i++ {
		words = append(words, "filler")
	}
	words = append(words, "notice")
	text := strings.Join(words, " ")

	got := testFilter([]string{"assignment", "notice"}, 4, 100).Apply(text)
	if strings.Contains(got, "\n\n") {
		t.Fatalf("expected a single merged section, got %q", got)
	}
}

func TestApplyIdempotentOnOwnOutput(t *testing.T) {
	var words []string
	for i := 0; i < 30; i++ {
		words = append(words, "filler")
	}
	words[5] = "assignment"
	words[25] = "assignment"
	text := strings.Join(words, " ")

	f := testFilter([]string{"assignment"}, 8, 5)
	once := f.Apply(text)
	twice := f.Apply(once)
	if len(strings.Fields(twice)) > len(strings.Fields(once)) {
		t.Fatalf("second pass grew the text: %q -> %q", once, twice)
	}
	thrice := f.Apply(twice)
	if thrice != twice {
		t.Fatalf("filter did not converge: %q vs %q", twice, thrice)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		windows []Window
		gap     int
		want    []Window
	}{
		{name: "empty", windows: nil, gap: 100, want: nil},
		{
			name:    "overlapping merged",
			windows: []Window{{0, 10}, {5, 15}},
			gap:     0,
			want:    []Window{{0, 15}},
		},
		{
			name:    "within gap merged",
			windows: []Window{{0, 10}, {50, 60}},
			gap:     100,
			want:    []Window{{0, 60}},
		},
		{
			name:    "beyond gap separate",
			windows: []Window{{0, 10}, {200, 210}},
			gap:     100,
			want:    []Window{{0, 10}, {200, 210}},
		},
		{
			name:    "unsorted input sorted",
			windows: []Window{{200, 210}, {0, 10}},
			gap:     50,
			want:    []Window{{0, 10}, {200, 210}},
		},
		{
			name:    "contained window absorbed",
			windows: []Window{{0, 100}, {10, 20}},
			gap:     0,
			want:    []Window{{0, 100}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.windows, tt.gap)
			if len(got) != len(tt.want) {
				t.Fatalf("Merge = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Merge[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i].Start <= got[i-1].End {
					t.Fatalf("merged windows overlap: %v", got)
				}
			}
		})
	}
}
