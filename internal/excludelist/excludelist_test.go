package excludelist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestContainsMissingFileIsFalse(t *testing.T) {
	l := New(t.TempDir())
	found, err := l.Contains("movie.mkv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected false for a missing exclude.list")
	}
}

func TestAppendThenContains(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	if err := l.Append("season1/ep01.mkv"); err != nil {
		t.Fatalf("append: %v", err)
	}

	found, err := l.Contains("season1/ep01.mkv")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !found {
		t.Fatalf("expected season1/ep01.mkv to be found after append")
	}

	found, err = l.Contains("season1/ep02.mkv")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if found {
		t.Fatalf("did not expect ep02 to be found")
	}
}

func TestAppendWritesOneLinePerCall(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	if err := l.Append("a.mkv"); err != nil {
		t.Fatalf("append 1: %v", err)
	}
	if err := l.Append("b.mkv"); err != nil {
		t.Fatalf("append 2: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "a.mkv\nb.mkv\n" {
		t.Fatalf("got %q", raw)
	}
}

func TestAppendCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	l := New(dir)

	if err := l.Append("x.mkv"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
		t.Fatalf("expected exclude.list to exist: %v", err)
	}
}
