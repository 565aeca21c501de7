// Package media defines the entities the plan-and-schedule engine operates
// on: paths, input/output media, streams, and chapters. Fields are narrowly
// typed per ffprobe's own stream shape, widened with an Extra passthrough
// bag per field group so opaque ffprobe metadata (e.g. avg_frame_rate)
// survives without a named Go field for every possible key.
package media

import (
	"path/filepath"
	"strings"
)

// Path is kept relative to a base directory ("parent/filename.extension")
// and resolved to an absolute form only at the boundary (worker command
// assembly, PostListener chown walks).
type Path struct {
	Parent    string
	Filename  string
	Extension string
}

// NewPath splits rel (a path relative to base) into parent/filename/ext.
// The extension is stored without its leading dot.
func NewPath(rel string) Path {
	dir := filepath.Dir(rel)
	if dir == "." {
		dir = ""
	}
	base := filepath.Base(rel)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return Path{Parent: dir, Filename: name, Extension: ext}
}

// Sibling derives a new path in the same parent directory with the
// filename stem suffixed ("parent/filename.<suffix>.<ext>"). An empty
// suffix just swaps the extension.
func (p Path) Sibling(suffix, ext string) Path {
	name := p.Filename
	if suffix != "" {
		name = name + "." + suffix
	}
	return Path{Parent: p.Parent, Filename: name, Extension: ext}
}

// String renders the path relative form: "parent/filename.ext".
func (p Path) String() string {
	name := p.Filename
	if p.Extension != "" {
		name = name + "." + p.Extension
	}
	if p.Parent == "" {
		return name
	}
	return filepath.Join(p.Parent, name)
}

// Abs resolves the path absolutely against base.
func (p Path) Abs(base string) string {
	return filepath.Join(base, p.String())
}

// SnippetValue exposes the path as the generic shape snippets navigate:
// "{{input.path.filename}}" etc.
func (p Path) SnippetValue() map[string]any {
	return map[string]any{
		"parent":    p.Parent,
		"filename":  p.Filename,
		"extension": p.Extension,
	}
}
