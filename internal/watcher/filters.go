package watcher

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dotsoulja/dotgo-watchcode/internal/excludelist"
	"github.com/dotsoulja/dotgo-watchcode/internal/probe"
)

// ExcludeListFilter rejects a file already recorded in exclude.list;
// a missing list passes every file.
type ExcludeListFilter struct {
	Excludes *excludelist.List
	Root     string
}

func (f ExcludeListFilter) Check(file string) (bool, string, error) {
	rel, err := filepath.Rel(f.Root, file)
	if err != nil {
		return false, "", err
	}
	found, err := f.Excludes.Contains(rel)
	if err != nil {
		return false, "", err
	}
	if found {
		return false, "already in exclude.list", nil
	}
	return true, "", nil
}

// ExtensionFilter matches the file's (dot-stripped) extension against
// Include/Exclude. Per the Design Notes' resolved open question, the two
// are combined as a permissive OR: "include matches OR exclude does not
// match" — not an AND. Either regexp may be nil.
type ExtensionFilter struct {
	Include *regexp.Regexp
	Exclude *regexp.Regexp
}

func (f ExtensionFilter) Check(file string) (bool, string, error) {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")

	includeMatches := f.Include != nil && f.Include.MatchString(ext)
	excludeMatches := f.Exclude != nil && f.Exclude.MatchString(ext)

	if f.Include != nil && f.Exclude != nil {
		if includeMatches || !excludeMatches {
			return true, "", nil
		}
		return false, "extension rejected by include/exclude", nil
	}
	if f.Include != nil {
		if includeMatches {
			return true, "", nil
		}
		return false, "extension does not match include", nil
	}
	if f.Exclude != nil {
		if !excludeMatches {
			return true, "", nil
		}
		return false, "extension matches exclude", nil
	}
	return true, "", nil
}

// ProbeFilter accepts a file only if ffprobe succeeds and reports a
// finite numeric duration. probe.Prober.Probe already folds
// "ran fine but no usable duration" into the NotAMedia error kind, so any
// error here — probe failure or not-a-media — rejects the file.
type ProbeFilter struct {
	Prober probe.Prober
}

func (f ProbeFilter) Check(file string) (bool, string, error) {
	if _, err := f.Prober.Probe(file, "-show_chapters"); err != nil {
		if pe, ok := err.(*probe.ProbeError); ok {
			return false, string(pe.Kind), nil
		}
		return false, err.Error(), nil
	}
	return true, "", nil
}
