// Package companies discovers company folders under the processing root.
package companies

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Company is one folder of contract documents to analyze.
type Company struct {
	Name string
	Path string
}

// Discover lists the immediate subdirectories of root as companies, sorted
// by name. A missing root or a root with no subdirectories is an error.
func Discover(root string, logger *slog.Logger) ([]Company, error) {
	if root == "" {
		return nil, fmt.Errorf("processing path is not set")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read processing path %s: %w", root, err)
	}

	var out []Company
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		out = append(out, Company{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no company folders found in %s", root)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	logger.Info("discovered companies", "root", root, "count", len(out))
	return out, nil
}
