package watcher

import (
	"regexp"
	"testing"

	"github.com/dotsoulja/dotgo-watchcode/internal/excludelist"
)

func TestExcludeListFilterRejectsKnownFile(t *testing.T) {
	dir := t.TempDir()
	excludes := excludelist.New(dir)
	if err := excludes.Append("movie.mkv"); err != nil {
		t.Fatalf("append: %v", err)
	}

	f := ExcludeListFilter{Excludes: excludes, Root: dir}
	pass, _, err := f.Check(dir + "/movie.mkv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pass {
		t.Fatalf("expected a file already in exclude.list to be rejected")
	}
}

func TestExcludeListFilterPassesUnknownFile(t *testing.T) {
	dir := t.TempDir()
	excludes := excludelist.New(dir)

	f := ExcludeListFilter{Excludes: excludes, Root: dir}
	pass, _, err := f.Check(dir + "/new.mkv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pass {
		t.Fatalf("expected an unlisted file to pass")
	}
}

func TestExtensionFilterIncludeOnly(t *testing.T) {
	f := ExtensionFilter{Include: regexp.MustCompile(`^(mkv|mp4)$`)}

	pass, _, _ := f.Check("movie.mkv")
	if !pass {
		t.Fatalf("expected mkv to pass include-only filter")
	}
	pass, _, _ = f.Check("movie.avi")
	if pass {
		t.Fatalf("expected avi to fail include-only filter")
	}
}

func TestExtensionFilterExcludeOnly(t *testing.T) {
	f := ExtensionFilter{Exclude: regexp.MustCompile(`^nfo$`)}

	pass, _, _ := f.Check("info.nfo")
	if pass {
		t.Fatalf("expected nfo to fail exclude-only filter")
	}
	pass, _, _ = f.Check("movie.mkv")
	if !pass {
		t.Fatalf("expected mkv to pass exclude-only filter")
	}
}

// TestExtensionFilterBothSetIsPermissiveOR exercises the resolved open
// question: with both Include and Exclude set, a file passes if it
// matches Include OR fails to match Exclude — not an AND of the two.
func TestExtensionFilterBothSetIsPermissiveOR(t *testing.T) {
	f := ExtensionFilter{
		Include: regexp.MustCompile(`^mkv$`),
		Exclude: regexp.MustCompile(`^mkv$`),
	}

	// Matches Include even though it also matches Exclude: OR passes it.
	pass, _, _ := f.Check("movie.mkv")
	if !pass {
		t.Fatalf("expected include match to pass despite also matching exclude")
	}

	// Matches neither: include fails, but exclude also fails to match,
	// so the OR still passes it.
	pass, _, _ = f.Check("movie.avi")
	if !pass {
		t.Fatalf("expected a file matching neither regexp to pass under OR semantics")
	}
}

func TestExtensionFilterNeitherSetPassesEverything(t *testing.T) {
	f := ExtensionFilter{}
	pass, _, _ := f.Check("anything.xyz")
	if !pass {
		t.Fatalf("expected no-op filter to pass everything")
	}
}
