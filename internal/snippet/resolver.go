package snippet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dotsoulja/dotgo-watchcode/internal/snippetlang"
)

var (
	boolLiteralRe   = regexp.MustCompile(`\{(?i:true|false)\}`)
	numberLiteralRe = regexp.MustCompile(`\{(\d+(?:\.\d+)?)\}`)
	funcSnippetRe   = regexp.MustCompile(`\{\{([\s\S]*?)\}\}`)
	residualBraceRe = regexp.MustCompile(`\{[^{}]*\}`)

	wholeBoolRe   = regexp.MustCompile(`^(?:true|false)$`)
	wholeIntRe    = regexp.MustCompile(`^-?\d+$`)
	wholeFloatRe  = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// Resolver resolves snippet text — "{name}" shortcuts, "{{ expr }}" function
// snippets, and "{true}"/"{42}" literal passthroughs — against a Context,
// following the six-step resolution pipeline from the profile templating
// grammar. A small stateless engine type, built once and reused across
// many inputs.
type Resolver struct {
	shortcuts []Shortcut
}

// NewResolver builds a Resolver using the built-in shortcut table.
func NewResolver() *Resolver {
	return &Resolver{shortcuts: DefaultShortcuts()}
}

// NewResolverWithShortcuts builds a Resolver using a caller-supplied
// shortcut table, primarily for tests exercising the pipeline in isolation.
func NewResolverWithShortcuts(shortcuts []Shortcut) *Resolver {
	return &Resolver{shortcuts: shortcuts}
}

// Resolve runs the full pipeline against text and casts the result to
// bool, int64, float64, or string per step 6.
func (r *Resolver) Resolve(text string, ctx Context) (any, error) {
	resolved, err := r.resolveText(text, ctx)
	if err != nil {
		return nil, err
	}
	return castFinal(resolved), nil
}

// ResolveString runs the pipeline and always returns the string form,
// for call sites (filenames, CLI args) that want text rather than a cast
// value.
func (r *Resolver) ResolveString(text string, ctx Context) (string, error) {
	return r.resolveText(text, ctx)
}

func (r *Resolver) resolveText(original string, ctx Context) (string, error) {
	text := original

	// 1. Replace boolean literals.
	text = boolLiteralRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Trim(m, "{}")
	})

	// 2. Replace number literals.
	text = numberLiteralRe.ReplaceAllString(text, "$1")

	// 3. Apply each shortcut in declaration order.
	for _, sc := range r.shortcuts {
		var evalErr error
		text = expandShortcut(sc, text, func(snippetText string) (string, error) {
			out, err := r.resolveFunctionSnippets(snippetText, ctx)
			if err != nil {
				evalErr = err
			}
			return out, err
		})
		if evalErr != nil {
			return "", evalErr
		}
	}

	// 4. Replace remaining function snippets.
	text, err := r.resolveFunctionSnippets(text, ctx)
	if err != nil {
		return "", err
	}

	// 5. Assert no "{...}" pattern remains.
	if residuals := residualBraceRe.FindAllString(text, -1); len(residuals) > 0 {
		return "", newUnresolvedError(original, residuals)
	}

	return text, nil
}

// resolveFunctionSnippets replaces every "{{ expr }}" in text by evaluating
// expr against ctx and stringifying the result. Fails with SnippetEvalError
// if any expression yields null/undefined at the top level.
func (r *Resolver) resolveFunctionSnippets(text string, ctx Context) (string, error) {
	matches := funcSnippetRe.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text, nil
	}
	var sb strings.Builder
	last := 0
	env := ctx.env()
	for _, m := range matches {
		start, end := m[0], m[1]
		exprStart, exprEnd := m[2], m[3]
		sb.WriteString(text[last:start])

		exprText := strings.TrimSpace(text[exprStart:exprEnd])
		val, err := snippetlang.Eval(exprText, env)
		if err != nil {
			return "", newEvalError(text, exprText, err)
		}
		if snippetlang.IsNullish(val) {
			return "", newEvalError(text, exprText, fmt.Errorf("expression yielded %s", snippetlang.Stringify(val)))
		}
		sb.WriteString(snippetlang.Stringify(val))
		last = end
	}
	sb.WriteString(text[last:])
	return sb.String(), nil
}

// expandShortcut replaces every occurrence of {sep?name sep?} for the given
// shortcut with resolve(sc.Replacement), preserving the captured separator
// group(s) — or dropping them entirely when the replacement is empty.
func expandShortcut(sc Shortcut, text string, resolve func(string) (string, error)) string {
	pattern := regexp.MustCompile(`(?i)\{([-._]?)` + regexp.QuoteMeta(sc.Name) + `([-._]?)\}`)
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	replacement, err := resolve(sc.Replacement)
	if err != nil {
		// Surfaced by the caller via the closure's captured error variable.
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		sep1 := text[m[2]:m[3]]
		sep2 := text[m[4]:m[5]]
		sb.WriteString(text[last:start])
		if replacement == "" {
			// Drop surrounding separators along with the empty replacement.
		} else {
			sb.WriteString(sep1)
			sb.WriteString(replacement)
			sb.WriteString(sep2)
		}
		last = end
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func castFinal(s string) any {
	switch {
	case wholeBoolRe.MatchString(s):
		return s == "true"
	case wholeIntRe.MatchString(s):
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return n
		}
	case wholeFloatRe.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return f
		}
	}
	return s
}
