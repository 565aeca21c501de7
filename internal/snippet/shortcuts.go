package snippet

// Shortcut is one entry in the ordered built-in shortcut table: a bare name
// token like "{lng}" expands to Replacement, which is itself snippet text
// (almost always a function snippet) resolved against the same context.
type Shortcut struct {
	Name        string
	Replacement string
}

// builtinShortcuts is the fixed table of built-in shortcut names. Order
// matters only in that later entries never depend on earlier ones having
// already run — each shortcut's replacement is independently resolved, so
// declaration order here is purely documentation.
var builtinShortcuts = []Shortcut{
	{Name: "iid", Replacement: "{{input.id}}:{{stream.index}}"},
	{Name: "oid", Replacement: "{{outputStream.index}}"},
	{Name: "fn", Replacement: "{{input.path.filename}}"},
	{Name: "lng", Replacement: "{{ stream.tags && stream.tags.language ? stream.tags.language : 'und' }}"},
	{Name: "label", Replacement: "{{ (stream.disposition && stream.disposition.forced===1) || (stream.tags && stream.tags.title && stream.tags.title.match(/forced/i)) ? 'forced' : ((stream.disposition && stream.disposition.hearing_impaired===1) || (stream.tags && stream.tags.title && stream.tags.title.match(/sdh|hi/i)) ? 'sdh' : '') }}"},
}

// DefaultShortcuts returns a copy of the built-in shortcut table, safe for a
// caller to append custom entries to before constructing a Resolver.
func DefaultShortcuts() []Shortcut {
	out := make([]Shortcut, len(builtinShortcuts))
	copy(out, builtinShortcuts)
	return out
}
