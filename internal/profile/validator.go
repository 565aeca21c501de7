package profile

import "fmt"

// Validate performs the ProfileValidator's structural checks, rejecting a
// malformed profile before any work is scheduled — mirroring
// transcoder.validateProfile's required-field checks, generalized to the
// richer Profile shape.
func Validate(p Profile) error {
	if p.Input.Directory == "" {
		return fmt.Errorf("input.directory is required")
	}
	if p.Input.Include == "" && p.Input.Exclude == "" {
		return fmt.Errorf("input must set at least one of include/exclude")
	}
	if _, err := p.Input.IncludeRegexp(); err != nil {
		return fmt.Errorf("input.include: %w", err)
	}
	if _, err := p.Input.ExcludeRegexp(); err != nil {
		return fmt.Errorf("input.exclude: %w", err)
	}
	if p.Output.Directory == "" {
		return fmt.Errorf("output.directory is required")
	}

	retained := 0
	for _, m := range p.Output.Mappings {
		if m.Skip {
			continue
		}
		if m.Output == "" {
			return fmt.Errorf("mapping %q: output must be non-empty", m.ID)
		}
		retained++
	}
	if retained == 0 {
		return fmt.Errorf("output.mappings must contain at least one non-skipped mapping with a non-empty output")
	}

	return nil
}
