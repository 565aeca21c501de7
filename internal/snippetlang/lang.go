package snippetlang

// Eval evaluates a function-snippet expression body against env. Per the
// grammar: if src contains no 'return' keyword it is a single expression to
// be returned; otherwise it is parsed as a statement list and the value of
// its return statement is produced.
func Eval(src string, env Env) (any, error) {
	if !containsReturnKeyword(src) {
		expr, err := ParseExpr(src)
		if err != nil {
			return nil, err
		}
		return EvalExpr(expr, env)
	}
	prog, err := ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return EvalProgram(prog, env)
}

// containsReturnKeyword does a light lexical scan rather than a substring
// search so that a field or string literal named "returnCode" doesn't
// mistakenly flip the statement-list path.
func containsReturnKeyword(src string) bool {
	l := newLexer(src)
	for {
		t, err := l.next()
		if err != nil || t.kind == tokEOF {
			return false
		}
		if t.kind == tokReturn {
			return true
		}
	}
}
