package snippet

import "strings"

// Predicate is a compiled "when" condition: a single snippet or a sequence
// of snippets (AND-joined), evaluated against a Context to decide
// whether a mapping rule or mapping option applies. A clause containing no
// brace at all is a bare expression and is evaluated as if wrapped in
// "{{ }}". Missing input — a nil/empty predicate — always matches,
// matching the "absent when clause means unconditional" rule from the
// mapping builder invariants.
type Predicate struct {
	resolver *Resolver
	clauses  []string
}

// NewPredicateParser returns a PredicateParser-equivalent constructor bound
// to r, so compiled predicates reuse the same shortcut table as the rest
// of the profile.
func NewPredicateParser(r *Resolver) *PredicateParser {
	return &PredicateParser{resolver: r}
}

// PredicateParser compiles raw "when" text (or a sequence of them) into a
// Predicate.
type PredicateParser struct {
	resolver *Resolver
}

// Compile turns a single snippet string into a Predicate.
func (p *PredicateParser) Compile(snippet string) *Predicate {
	if strings.TrimSpace(snippet) == "" {
		return &Predicate{resolver: p.resolver}
	}
	return &Predicate{resolver: p.resolver, clauses: []string{snippet}}
}

// CompileSequence turns a slice of snippet strings into a single Predicate
// that is the logical AND of every non-empty element.
func (p *PredicateParser) CompileSequence(snippets []string) *Predicate {
	pred := &Predicate{resolver: p.resolver}
	for _, s := range snippets {
		if strings.TrimSpace(s) == "" {
			continue
		}
		pred.clauses = append(pred.clauses, s)
	}
	return pred
}

// Eval resolves every clause against ctx and returns true only if all are
// truthy. A Predicate with no clauses (absent "when") always matches.
func (p *Predicate) Eval(ctx Context) (bool, error) {
	if len(p.clauses) == 0 {
		return true, nil
	}
	for _, clause := range p.clauses {
		if !strings.Contains(clause, "{") {
			clause = "{{" + clause + "}}"
		}
		val, err := p.resolver.Resolve(clause, ctx)
		if err != nil {
			return false, err
		}
		if !truthy(val) {
			return false, nil
		}
	}
	return true, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return v != nil
	}
}
