// Package snippet implements the SnippetResolver and PredicateParser from
// the profile templating grammar: "{{ expr }}" function snippets, "{name}"
// shortcut tokens, and literal boolean/number passthroughs, all resolved
// against a SnippetContext. The expression sublanguage itself lives in
// internal/snippetlang; this package owns the surrounding brace-grammar,
// the built-in shortcut table, and context construction from the media
// model.
package snippet

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two snippet-resolution failure modes named in the
// spec's error taxonomy.
type Kind string

const (
	KindUnresolvedSnippet Kind = "UnresolvedSnippet"
	KindSnippetEvalError  Kind = "SnippetEvalError"
)

// ResolveError wraps a snippet resolution failure with enough context to
// log forensically.
type ResolveError struct {
	Kind   Kind
	Source string // the original snippet text being resolved
	Detail string // offending expression text or list of residual tokens
	Err    error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("snippet error [%s] on %q: %s: %v", e.Kind, e.Source, e.Detail, e.Err)
	}
	return fmt.Sprintf("snippet error [%s] on %q: %s", e.Kind, e.Source, e.Detail)
}

func (e *ResolveError) Unwrap() error { return e.Err }

func newEvalError(source, exprText string, err error) *ResolveError {
	return &ResolveError{Kind: KindSnippetEvalError, Source: source, Detail: exprText, Err: err}
}

func newUnresolvedError(source string, residuals []string) *ResolveError {
	return &ResolveError{Kind: KindUnresolvedSnippet, Source: source, Detail: strings.Join(residuals, ", ")}
}
