// Package testsupport holds helpers shared by contract tests: locating
// simplate fixtures, compiling them with production defaults, and the golden
// file machinery.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	simplate "github.com/goliatone/go-simplate"
)

// RepoRoot returns the absolute path of the repository root.
func RepoRoot(t *testing.T) string {
	t.Helper()

	_, here, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("testsupport: unable to determine file location")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(here), "..", ".."))
}

// FixturePath returns the absolute path of a fixture under examples/fixtures.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "examples", "fixtures", name)
}

// CompileFixture reads a simplate fixture from disk and compiles it. Testing
// helpers fail the test on error to keep contract tests concise.
func CompileFixture(t *testing.T, defaults *simplate.Defaults, path, mediaType string) *simplate.Simplate {
	t.Helper()

	text, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	resource, err := simplate.New(Context(), defaults, simplate.Source{
		Path:      path,
		Text:      string(text),
		MediaType: mediaType,
	})
	if err != nil {
		t.Fatalf("compile fixture: %v", err)
	}
	return resource
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
