package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a profile from a YAML or JSON file, inferring format from the
// file extension, then applies defaults and validates. filename is used
// as given, with no fixed root directory — the CLI's -p/--profile flag
// accepts any path.
func Load(filename string) (*Profile, error) {
	if filename == "" {
		return nil, &ConfigError{Op: "validate", Path: "", Err: fmt.Errorf("profile path is empty")}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, &ConfigError{Op: "validate", Path: filename, Err: fmt.Errorf("unsupported file extension %q", ext)}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ConfigError{Op: "read", Path: filename, Err: err}
	}

	var p Profile
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, &ConfigError{Op: "unmarshal_json", Path: filename, Err: err}
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, &ConfigError{Op: "unmarshal_yaml", Path: filename, Err: err}
		}
	}

	applyDefaults(&p)

	if err := Validate(p); err != nil {
		return nil, &ConfigError{Op: "validate", Path: filename, Err: err}
	}

	return &p, nil
}

// applyDefaults sets fallback values for optional fields, mirroring
// transcoder.applyDefaults.
func applyDefaults(p *Profile) {
	if p.Output.DefaultExtension == "" {
		p.Output.DefaultExtension = "mkv"
	}
}
