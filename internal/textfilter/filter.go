// Package textfilter narrows a combined document text to the regions near
// configured search terms, cutting prompt size before the LLM call.
package textfilter

import (
	"log/slog"
	"sort"
	"strings"
)

// Window is a half-open word-offset interval within a tokenized text.
type Window struct {
	Start int
	End   int
}

// Filter selects and merges text windows around search-term occurrences.
type Filter struct {
	terms      []string
	windowSize int
	mergeGap   int
	log        *slog.Logger
}

// New builds a Filter. Terms are matched case-insensitively as substrings of
// whitespace-split words. windowSize is the full window width in words;
// mergeGap is the largest gap (in words) across which adjacent windows merge.
func New(terms []string, windowSize, mergeGap int, logger *slog.Logger) *Filter {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		if trimmed := strings.TrimSpace(term); trimmed != "" {
			lowered = append(lowered, strings.ToLower(trimmed))
		}
	}
	return &Filter{terms: lowered, windowSize: windowSize, mergeGap: mergeGap, log: logger}
}

// Apply returns the input narrowed to merged windows around term matches.
// Empty input or an empty term set passes the text through unchanged. No
// matches at all yields an empty string: the caller must treat that as
// "nothing relevant found", not as filtering being disabled.
func (f *Filter) Apply(text string) string {
	if text == "" || len(f.terms) == 0 {
		return text
	}

	words := strings.Fields(text)
	positions := f.matchPositions(words)
	if len(positions) == 0 {
		f.log.Warn("no search terms found in text", "terms", len(f.terms), "words", len(words))
		return ""
	}

	windows := f.buildWindows(positions, len(words))
	merged := Merge(windows, f.mergeGap)

	sections := make([]string, 0, len(merged))
	for _, w := range merged {
		sections = append(sections, strings.Join(words[w.Start:w.End], " "))
	}
	filtered := strings.Join(sections, "\n\n")

	filteredCount := len(strings.Fields(filtered))
	reduction := float64(len(words)-filteredCount) / float64(len(words)) * 100
	f.log.Info("text filtering complete",
		"words_before", len(words), "words_after", filteredCount,
		"reduction_pct", reduction, "matches", len(positions), "sections", len(merged))

	return filtered
}

// matchPositions returns the index of every word containing any term. A word
// contributes at most one position even when it matches several terms.
func (f *Filter) matchPositions(words []string) []int {
	var positions []int
	for i, word := range words {
		lower := strings.ToLower(word)
		for _, term := range f.terms {
			if strings.Contains(lower, term) {
				positions = append(positions, i)
				break
			}
		}
	}
	return positions
}

func (f *Filter) buildWindows(positions []int, wordCount int) []Window {
	half := f.windowSize / 2
	windows := make([]Window, 0, len(positions))
	for _, pos := range positions {
		start := pos - half
		if start < 0 {
			start = 0
		}
		end := pos + half
		if end > wordCount {
			end = wordCount
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows
}

// Merge sorts windows by start and coalesces any pair that overlaps or sits
// within gap words of each other, producing a minimal sorted disjoint set.
func Merge(windows []Window, gap int) []Window {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Window{sorted[0]}
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End+gap {
			if w.End > last.End {
				last.End = w.End
			}
		} else {
			merged = append(merged, w)
		}
	}
	return merged
}
