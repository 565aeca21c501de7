// Package snippetlang implements the small dynamically-typed expression
// language embedded inside profile snippet strings ("{{ expr }}"). It is a
// hand-written lexer/parser/evaluator over a deliberately narrow grammar:
// dot-navigation, regex .match(), short-circuit boolean logic, a ternary,
// and the usual comparison/arithmetic operators. See DESIGN.md for why this
// one corner of the module is stdlib-only rather than dependency-backed.
package snippetlang

import "fmt"

// undefinedType is the sentinel for "slot not present in context" / "member
// access through an undefined value". It is distinct from Null so callers
// can tell "explicitly absent" apart from "present but null".
type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// Undefined is returned whenever an identifier or member is not present.
var Undefined = undefinedType{}

// Null represents an explicit null value, produced by the `null` literal.
type nullType struct{}

func (nullType) String() string { return "null" }

var Null = nullType{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}

// IsNull reports whether v is the Null sentinel.
func IsNull(v any) bool {
	_, ok := v.(nullType)
	return ok
}

// IsNullish reports whether v is Undefined, Null, or a Go nil.
func IsNullish(v any) bool {
	if v == nil {
		return true
	}
	return IsUndefined(v) || IsNull(v)
}

// Truthy implements the language's coercion-to-bool rules: nullish, false,
// zero, and empty-string are falsy; everything else is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case undefinedType, nullType:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// Member looks up name on v. Accessing through a nullish value or a
// non-object value yields Undefined rather than an error — this is the
// "undefined member access yields undefined, propagated through the chain"
// rule from the snippet grammar's Design Notes.
func Member(v any, name string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return Undefined
	}
	val, ok := obj[name]
	if !ok {
		return Undefined
	}
	return val
}

// Stringify renders a value the way it should appear once substituted back
// into a snippet's surrounding text.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil, undefinedType:
		return ""
	case nullType:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
