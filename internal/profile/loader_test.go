package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempProfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp profile: %v", err)
	}
	return path
}

const validYAML = `
id: test-profile
input:
  directory: /in
  include: "mkv|mp4"
output:
  directory: /out
  mappings:
    - id: m1
      output: "{fn}"
`

func TestLoadValidProfile(t *testing.T) {
	path := writeTempProfile(t, validYAML)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "test-profile" {
		t.Fatalf("got id %q", p.ID)
	}
	if p.Output.DefaultExtension != "mkv" {
		t.Fatalf("expected default extension mkv, got %q", p.Output.DefaultExtension)
	}
}

func TestLoadMissingRequiredFieldFails(t *testing.T) {
	path := writeTempProfile(t, `
id: bad
input:
  directory: /in
output:
  directory: /out
  mappings:
    - id: m1
      output: "{fn}"
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for missing include/exclude")
	}
	cerr, ok := err.(*ConfigError)
	if !ok || cerr.Op != "validate" {
		t.Fatalf("got %v, want validate ConfigError", err)
	}
}

func TestLoadUnsupportedExtensionFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestClassifySelector(t *testing.T) {
	if kind, _ := ClassifySelector(nil); kind != SelectorNone {
		t.Fatalf("got %v, want SelectorNone", kind)
	}
	if kind, _ := ClassifySelector("chapters"); kind != SelectorChapters {
		t.Fatalf("got %v, want SelectorChapters", kind)
	}
	if kind, _ := ClassifySelector("all"); kind != SelectorAll {
		t.Fatalf("got %v, want SelectorAll", kind)
	}
	kind, types := ClassifySelector([]any{"audio", "subtitle"})
	if kind != SelectorCodecTypes || len(types) != 2 {
		t.Fatalf("got %v %v, want SelectorCodecTypes [audio subtitle]", kind, types)
	}
	kind, types = ClassifySelector("audio")
	if kind != SelectorCodecTypes || len(types) != 1 || types[0] != "audio" {
		t.Fatalf("got %v %v, want SelectorCodecTypes [audio]", kind, types)
	}
}
