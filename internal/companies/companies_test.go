package companies

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"Zenith Corp", "Acme Inc"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := Discover(root, discardLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(got))
	}
	if got[0].Name != "Acme Inc" || got[1].Name != "Zenith Corp" {
		t.Fatalf("companies not sorted by name: %v", got)
	}
	if got[0].Path != filepath.Join(root, "Acme Inc") {
		t.Fatalf("unexpected path: %q", got[0].Path)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), discardLogger()); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestDiscoverEmptyRoot(t *testing.T) {
	if _, err := Discover(t.TempDir(), discardLogger()); err == nil {
		t.Fatal("expected error for root without company folders")
	}
}

func TestDiscoverUnsetRoot(t *testing.T) {
	if _, err := Discover("", discardLogger()); err == nil {
		t.Fatal("expected error for unset processing path")
	}
}
