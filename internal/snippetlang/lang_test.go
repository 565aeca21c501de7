package snippetlang

import "testing"

func TestEvalLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want any
	}{
		{"true", true},
		{"false", false},
		{"42", float64(42)},
		{"3.5", 3.5},
		{"'hello'", "hello"},
	}
	for _, c := range cases {
		got, err := Eval(c.src, Env{})
		if err != nil {
			t.Fatalf("Eval(%q) error: %v", c.src, err)
		}
		if got != c.want {
			t.Fatalf("Eval(%q) = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestEvalMemberChain(t *testing.T) {
	env := Env{
		"stream": map[string]any{
			"tags": map[string]any{"language": "eng"},
		},
	}
	got, err := Eval("stream.tags.language", env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "eng" {
		t.Fatalf("got %v, want eng", got)
	}
}

func TestEvalUndefinedPropagation(t *testing.T) {
	env := Env{"stream": map[string]any{}}
	got, err := Eval("stream.tags && stream.tags.language", env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsUndefined(got) {
		t.Fatalf("got %v, want undefined", got)
	}
}

func TestEvalTernaryAndMatch(t *testing.T) {
	env := Env{
		"stream": map[string]any{
			"disposition": map[string]any{"forced": float64(1)},
			"tags":        map[string]any{},
		},
	}
	src := `(stream.disposition && stream.disposition.forced===1) || (stream.tags && stream.tags.title && stream.tags.title.match(/forced/i)) ? 'forced' : ''`
	got, err := Eval(src, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "forced" {
		t.Fatalf("got %v, want forced", got)
	}
}

func TestEvalArithmeticComparison(t *testing.T) {
	env := Env{"input": map[string]any{
		"format": map[string]any{"duration": float64(1200)},
	}}
	got, err := Eval("input.format.duration > 3600", env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != false {
		t.Fatalf("got %v, want false", got)
	}
}

func TestEvalReturnStatementList(t *testing.T) {
	got, err := Eval("return 1 + 2;", Env{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != float64(3) {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestEvalRegexMatchOnUndefined(t *testing.T) {
	env := Env{"stream": map[string]any{}}
	got, err := Eval("stream.tags && stream.tags.title && stream.tags.title.match(/hi|sdh/i)", env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsUndefined(got) {
		t.Fatalf("got %v, want undefined", got)
	}
}

func TestEvalDivisionVsRegexDisambiguation(t *testing.T) {
	env := Env{"chapter": map[string]any{"duration": float64(4000), "denominator": float64(1000)}}
	got, err := Eval("chapter.duration / chapter.denominator", env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != float64(4) {
		t.Fatalf("got %v, want 4", got)
	}
}
