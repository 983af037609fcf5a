// Package scan walks a company folder, extracts text from every supported
// document, and merges the per-file results into one combined blob.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"contract-analyzer/internal/extract"
)

// Stats counts per-folder extraction outcomes.
// Total == Successful + Failed always holds.
type Stats struct {
	Total      int
	Successful int
	Failed     int
}

// Result aggregates one folder scan. SuccessfulTexts is keyed by full path;
// Order preserves discovery order for deterministic combination. FailedDocs
// holds basenames of documents no strategy could extract.
type Result struct {
	SuccessfulTexts map[string]string
	Order           []string
	FailedDocs      []string
	Stats           Stats
}

// Scanner discovers and extracts every supported document under a folder.
type Scanner struct {
	log       *slog.Logger
	extractor *extract.Extractor
}

func New(logger *slog.Logger, extractor *extract.Extractor) *Scanner {
	return &Scanner{log: logger, extractor: extractor}
}

// Scan enumerates every supported document under folder (nested subfolders
// included) and extracts each one. Zero discovered files is not an error.
func (s *Scanner) Scan(folder string) Result {
	paths := s.discover(folder)

	result := Result{SuccessfulTexts: make(map[string]string)}
	for _, path := range paths {
		outcome := s.extractor.Extract(path)
		if outcome.OK {
			result.SuccessfulTexts[path] = outcome.Text
			result.Order = append(result.Order, path)
		} else {
			result.FailedDocs = append(result.FailedDocs, filepath.Base(path))
			s.log.Warn("failed to extract document", "path", path)
		}
	}

	result.Stats = Stats{
		Total:      len(paths),
		Successful: len(result.SuccessfulTexts),
		Failed:     len(result.FailedDocs),
	}
	s.log.Info("folder scan complete", "folder", folder,
		"total", result.Stats.Total, "successful", result.Stats.Successful, "failed", result.Stats.Failed)
	return result
}

// discover returns all supported document paths under folder in lexical
// order, so a run's output is stable regardless of filesystem ordering.
func (s *Scanner) discover(folder string) []string {
	var paths []string
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("walk error", "path", path, "err", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if extract.IsDocumentFile(d.Name()) {
			paths = append(paths, path)
			s.log.Info("found document", "path", path)
		}
		return nil
	})
	if err != nil {
		s.log.Error("folder walk failed", "folder", folder, "err", err)
	}
	sort.Strings(paths)

	s.log.Info("discovered documents", "folder", folder, "count", len(paths))
	return paths
}

// Combined renders the scan result as one analysis-ready text with a
// document-boundary header per file, in discovery order.
func (r Result) Combined() string {
	return Combine(r.Order, r.SuccessfulTexts)
}

// Combine concatenates each document's text under a boundary header carrying
// its basename. An empty input yields an empty string.
func Combine(order []string, texts map[string]string) string {
	if len(texts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, path := range order {
		text, ok := texts[path]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n\n=== DOCUMENT: %s ===\n\n", filepath.Base(path)))
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}
