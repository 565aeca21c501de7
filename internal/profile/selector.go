package profile

// AsStringSlice normalizes the `on`/`when`/similar polymorphic YAML fields
// (which may be absent, a bare string, or a sequence) into a string slice.
// A nil value yields a nil slice, distinguishable from an explicit empty
// sequence by callers that care.
func AsStringSlice(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// StreamSelectorKind classifies a Mapping/MappingOption's `on` field.
type StreamSelectorKind int

const (
	// SelectorNone dispatches to SingleMappingBuilder: one output from
	// the whole input. The zero value, so an absent `on` behaves this way.
	SelectorNone StreamSelectorKind = iota
	SelectorChapters
	SelectorAll
	SelectorCodecTypes
)

// ClassifySelector interprets a raw `on` value per the glossary's
// StreamSelector: "none" or absent -> SelectorNone, "chapters" ->
// SelectorChapters, "all" -> SelectorAll, else a codec-type or array of
// codec-types -> SelectorCodecTypes with those types returned.
func ClassifySelector(v any) (StreamSelectorKind, []string) {
	types := AsStringSlice(v)
	if len(types) == 0 {
		return SelectorNone, nil
	}
	if len(types) == 1 {
		switch types[0] {
		case "", "none":
			return SelectorNone, nil
		case "chapters":
			return SelectorChapters, nil
		case "all":
			return SelectorAll, nil
		}
	}
	return SelectorCodecTypes, types
}
