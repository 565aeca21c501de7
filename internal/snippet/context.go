package snippet

import "github.com/dotsoulja/dotgo-watchcode/internal/snippetlang"

// Context is the set of bindings visible to a snippet during resolution —
// SnippetContext from the data model. Slots are populated progressively as
// the caller narrows from "just have a profile and input" down to a single
// stream/outputStream/chapter. A nil field means that slot is absent: the
// identifier resolves to snippetlang.Undefined rather than null.
//
// Field values are the generic map[string]any/float64/string/bool shapes
// snippetlang operates on, built by the media and profile packages'
// SnippetValue() methods — this keeps snippet decoupled from their concrete
// Go types, matching the "plain record with optional slots" Design Note.
type Context struct {
	Profile      any
	Input        any
	Output       any
	Stream       any
	OutputStream any
	Chapter      any
}

func (c Context) env() snippetlang.Env {
	e := snippetlang.Env{}
	if c.Profile != nil {
		e["profile"] = c.Profile
	}
	if c.Input != nil {
		e["input"] = c.Input
	}
	if c.Output != nil {
		e["output"] = c.Output
	}
	if c.Stream != nil {
		e["stream"] = c.Stream
	}
	if c.OutputStream != nil {
		e["outputStream"] = c.OutputStream
	}
	if c.Chapter != nil {
		e["chapter"] = c.Chapter
	}
	return e
}

// WithStream returns a copy of c narrowed to a specific input stream.
func (c Context) WithStream(stream any) Context {
	c.Stream = stream
	return c
}

// WithOutputStream returns a copy of c narrowed to a specific output stream.
func (c Context) WithOutputStream(outputStream any) Context {
	c.OutputStream = outputStream
	return c
}

// WithOutput returns a copy of c narrowed to a specific output media.
func (c Context) WithOutput(output any) Context {
	c.Output = output
	return c
}

// WithChapter returns a copy of c narrowed to a specific chapter.
func (c Context) WithChapter(chapter any) Context {
	c.Chapter = chapter
	return c
}
