// Package profile implements the typed, declarative representation of
// input/output configuration and mapping rules that drives the
// MappingBuilder, plus its YAML/JSON loader and validator: an
// extension-sniffed read/unmarshal/validate shape over the Profile/
// InputConfig/OutputConfig/Mapping/MappingOption entities.
package profile

import "regexp"

// Profile is loaded once at startup and immutable thereafter.
type Profile struct {
	ID     string       `yaml:"id" json:"id"`
	Input  InputConfig  `yaml:"input" json:"input"`
	Output OutputConfig `yaml:"output" json:"output"`
}

// InputConfig describes the watched directory and its intake rules.
// Include/Exclude are raw regex source text; compiled on demand via
// IncludeRegexp/ExcludeRegexp so a malformed pattern surfaces as a
// ConfigError at validation time rather than panicking later.
type InputConfig struct {
	Directory          string   `yaml:"directory" json:"directory"`
	Include            string   `yaml:"include" json:"include"`
	Exclude            string   `yaml:"exclude" json:"exclude"`
	Params             []string `yaml:"params" json:"params"`
	DeleteAfterProcess bool     `yaml:"deleteAfterProcess" json:"deleteAfterProcess"`
}

// SnippetValue exposes the profile slot of a SnippetContext.
func (p Profile) SnippetValue() map[string]any {
	return map[string]any{"id": p.ID}
}

func (c InputConfig) IncludeRegexp() (*regexp.Regexp, error) {
	if c.Include == "" {
		return nil, nil
	}
	return regexp.Compile(c.Include)
}

func (c InputConfig) ExcludeRegexp() (*regexp.Regexp, error) {
	if c.Exclude == "" {
		return nil, nil
	}
	return regexp.Compile(c.Exclude)
}

// OutputConfig describes the write directory and the ordered mapping
// rules that expand one input into zero or more outputs.
type OutputConfig struct {
	Directory        string    `yaml:"directory" json:"directory"`
	DefaultExtension string    `yaml:"defaultExtension" json:"defaultExtension"`
	WriteLog         bool      `yaml:"writeLog" json:"writeLog"`
	Mappings         []Mapping `yaml:"mappings" json:"mappings"`
}

// Mapping is a single profile rule. On and When are left as `any` at the
// YAML/JSON boundary since both accept either a bare string or a sequence
// (see AsStringSlice) — normalizing them here would lose the distinction
// between "not set" and "set to an empty sequence".
type Mapping struct {
	ID      string          `yaml:"id" json:"id"`
	Skip    bool            `yaml:"skip" json:"skip"`
	On      any             `yaml:"on" json:"on"`
	When    any             `yaml:"when" json:"when"`
	Params  []string        `yaml:"params" json:"params"`
	Output  string          `yaml:"output" json:"output"`
	Format  string          `yaml:"format" json:"format"`
	Order   []string        `yaml:"order" json:"order"`
	Options []MappingOption `yaml:"options" json:"options"`
}

// MappingOption inherits Mapping's task fields plus Duplicate/Exclude.
type MappingOption struct {
	ID        string   `yaml:"id" json:"id"`
	Skip      bool     `yaml:"skip" json:"skip"`
	On        any      `yaml:"on" json:"on"`
	When      any      `yaml:"when" json:"when"`
	Params    []string `yaml:"params" json:"params"`
	Duplicate bool     `yaml:"duplicate" json:"duplicate"`
	Exclude   bool     `yaml:"exclude" json:"exclude"`
}
