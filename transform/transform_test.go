package transform

import (
	"errors"
	"testing"

	"github.com/npillmayer/gobnf"
	"github.com/npillmayer/gobnf/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// R ::= "a" "b" #eof
func abLanguage(t *testing.T) *grammar.Language {
	b := grammar.NewBuilder("R")
	b.LHS("R").Lit("a").Lit("b").EOF().End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	return lang
}

func parse(t *testing.T, lang *grammar.Language, input string) gobnf.Node {
	node, err := lang.Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node
}

func TestTransformConcatenation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	node := parse(t, abLanguage(t), "ab")
	lt := NewLanguageTransformation().MapRule("R",
		func(seq *LazySeq) (interface{}, error) {
			// concatenate the two literals, ignore the EOF child
			a, err := seq.Get(0)
			if err != nil {
				return nil, err
			}
			b, err := seq.Get(1)
			if err != nil {
				return nil, err
			}
			return a.(string) + b.(string), nil
		})
	v, err := lt.Transform(node)
	if err != nil {
		t.Fatal(err)
	}
	if v != "ab" {
		t.Errorf("expected \"ab\", got %v", v)
	}
}

func TestLiteralLeafIsBaseCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	lt := NewLanguageTransformation()
	v, err := lt.Transform(&gobnf.LiteralNode{Value: "leaf"})
	if err != nil {
		t.Fatal(err)
	}
	if v != "leaf" {
		t.Errorf("literal leaf should transform to its text, got %v", v)
	}
}

func TestMemoization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	// S ::= W #eof ; W ::= "x"
	b := grammar.NewBuilder("S")
	b.LHS("S").Ref("W").EOF().End()
	b.LHS("W").Lit("x").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	node := parse(t, lang, "x")
	calls := 0
	lt := NewLanguageTransformation().
		MapRule("W", func(seq *LazySeq) (interface{}, error) {
			calls++
			return seq.Get(0)
		}).
		MapRule("S", func(seq *LazySeq) (interface{}, error) {
			// read the same child three times
			if _, err := seq.Get(0); err != nil {
				return nil, err
			}
			if _, err := seq.Get(0); err != nil {
				return nil, err
			}
			return seq.Get(0)
		})
	v, err := lt.Transform(node)
	if err != nil {
		t.Fatal(err)
	}
	if v != "x" {
		t.Errorf("expected \"x\", got %v", v)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 transformation of child W, got %d", calls)
	}
}

func TestCacheIsPerInvocation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	lang := abLanguage(t)
	node := parse(t, lang, "ab")
	calls := 0
	lt := NewLanguageTransformation().MapRule("R",
		func(seq *LazySeq) (interface{}, error) {
			calls++
			return seq.Get(0)
		})
	if _, err := lt.Transform(node); err != nil {
		t.Fatal(err)
	}
	if _, err := lt.Transform(node); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("caches must not survive across transform calls; accumulator ran %d times", calls)
	}
}

func TestMissingTransformation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	node := parse(t, abLanguage(t), "ab")
	lt := NewLanguageTransformation()
	_, err := lt.Transform(node)
	var missing *MissingTransformationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTransformationError, got %v", err)
	}
	if missing.Rule != "R" {
		t.Errorf("expected missing rule R, got %q", missing.Rule)
	}
}

func TestAlternativeIndexMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	// grammar rule has two alternatives, transformation registers one
	b := grammar.NewBuilder("D")
	b.LHS("D").Lit("1").EOF().End()
	b.LHS("D").Lit("2").EOF().End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	node := parse(t, lang, "2")
	lt := NewLanguageTransformation().MapRule("D",
		func(seq *LazySeq) (interface{}, error) { return 1, nil })
	_, err = lt.Transform(node)
	var mismatch *AlternativeIndexError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected AlternativeIndexError, got %v", err)
	}
	if mismatch.Rule != "D" || mismatch.Alternative != 1 || mismatch.Accumulators != 1 {
		t.Errorf("unexpected error detail: %+v", mismatch)
	}
}

func TestLastRegistrationWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	node := parse(t, abLanguage(t), "ab")
	lt := NewLanguageTransformation().
		MapRule("R", func(seq *LazySeq) (interface{}, error) { return "first", nil }).
		MapRule("R", func(seq *LazySeq) (interface{}, error) { return "second", nil })
	v, err := lt.Transform(node)
	if err != nil {
		t.Fatal(err)
	}
	if v != "second" {
		t.Errorf("later registration should win, got %v", v)
	}
}

func TestCalculator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	// Sum ::= Digit "+" Digit #eof ; Digit ::= "1" | "2"
	b := grammar.NewBuilder("Sum")
	b.LHS("Sum").Ref("Digit").Lit("+").Ref("Digit").EOF().End()
	b.LHS("Digit").Lit("1").End()
	b.LHS("Digit").Lit("2").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	node := parse(t, lang, "1+2")
	lt := NewLanguageTransformation().
		MapRule("Digit",
			func(seq *LazySeq) (interface{}, error) { return 1, nil },
			func(seq *LazySeq) (interface{}, error) { return 2, nil },
		).
		MapRule("Sum", func(seq *LazySeq) (interface{}, error) {
			left, err := seq.Get(0)
			if err != nil {
				return nil, err
			}
			right, err := seq.Get(2)
			if err != nil {
				return nil, err
			}
			return left.(int) + right.(int), nil
		})
	v, err := lt.Transform(node)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("expected 1+2 to transform to 3, got %v", v)
	}
}

func TestLazySeqSliceAndEach(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	node := parse(t, abLanguage(t), "ab")
	lt := NewLanguageTransformation().MapRule("R",
		func(seq *LazySeq) (interface{}, error) {
			if seq.Len() != 3 {
				t.Errorf("expected 3 children, got %d", seq.Len())
			}
			values, err := seq.Slice(0, 2)
			if err != nil {
				return nil, err
			}
			if len(values) != 2 || values[0] != "a" || values[1] != "b" {
				t.Errorf("unexpected slice %v", values)
			}
			var seen []interface{}
			err = seq.Each(func(i int, v interface{}) bool {
				seen = append(seen, v)
				return i < 1 // stop after the second child
			})
			if err != nil {
				return nil, err
			}
			if len(seen) != 2 {
				t.Errorf("Each should have stopped after 2 children, saw %d", len(seen))
			}
			return values[0], nil
		})
	if _, err := lt.Transform(node); err != nil {
		t.Fatal(err)
	}
}

func TestTransformErrorPropagates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.transform")
	defer teardown()
	//
	// inner rule has no transformation; the error must travel through Get
	b := grammar.NewBuilder("S")
	b.LHS("S").Ref("W").EOF().End()
	b.LHS("W").Lit("x").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	node := parse(t, lang, "x")
	lt := NewLanguageTransformation().MapRule("S",
		func(seq *LazySeq) (interface{}, error) {
			return seq.Get(0)
		})
	_, err = lt.Transform(node)
	var missing *MissingTransformationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTransformationError for W, got %v", err)
	}
	if missing.Rule != "W" {
		t.Errorf("expected missing rule W, got %q", missing.Rule)
	}
}
