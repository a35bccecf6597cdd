package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAnalyzeCleanGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	b := NewBuilder("S")
	b.LHS("S").Ref("A").EOF().End()
	b.LHS("A").Lit("a").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	a := Analyze(lang)
	if !a.OK() {
		t.Errorf("clean grammar should analyze OK, undefined = %v", a.Undefined)
	}
	if len(a.Unreachable) != 0 || len(a.LeftRecursive) != 0 {
		t.Errorf("clean grammar should have no findings: %v / %v", a.Unreachable, a.LeftRecursive)
	}
}

func TestAnalyzeUndefinedReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	lang := NewLanguage("S").MustAdd(NewRule("S", NewSyntax(
		NewTermGroup(Ref("Ghost"), EOF()),
	)))
	a := Analyze(lang)
	if a.OK() {
		t.Fatalf("expected undefined reference to be reported")
	}
	refs, ok := a.Undefined["Ghost"]
	if !ok || len(refs) != 1 || refs[0] != "S" {
		t.Errorf("expected Ghost to be reported as referenced by S, got %v", a.Undefined)
	}
}

func TestAnalyzeUnreachableRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	b := NewBuilder("S")
	b.LHS("S").Lit("s").EOF().End()
	b.LHS("Orphan").Lit("o").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	a := Analyze(lang)
	if len(a.Unreachable) != 1 || a.Unreachable[0] != "Orphan" {
		t.Errorf("expected [Orphan] unreachable, got %v", a.Unreachable)
	}
}

func TestAnalyzeDirectLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	b := NewBuilder("E")
	b.LHS("E").Ref("E").Lit("+").Lit("a").End()
	b.LHS("E").Lit("a").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	a := Analyze(lang)
	if len(a.LeftRecursive) != 1 || a.LeftRecursive[0] != "E" {
		t.Errorf("expected [E] left-recursive, got %v", a.LeftRecursive)
	}
}

func TestAnalyzeLeftRecursionThroughNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	// B may match empty, so A → B A … is left-recursive through B
	b := NewBuilder("A")
	b.LHS("A").Ref("B").Ref("A").Lit("z").End()
	b.LHS("A").Lit("x").End()
	b.LHS("B").Epsilon()
	b.LHS("B").Lit("b").End()
	lang, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	a := Analyze(lang)
	if len(a.LeftRecursive) != 1 || a.LeftRecursive[0] != "A" {
		t.Errorf("expected [A] left-recursive, got %v", a.LeftRecursive)
	}
	// right recursion alone is not flagged
	b2 := NewBuilder("N")
	b2.LHS("N").Lit("a").Ref("N").End()
	b2.LHS("N").Lit("b").End()
	lang2, err := b2.Language()
	if err != nil {
		t.Fatal(err)
	}
	if a2 := Analyze(lang2); len(a2.LeftRecursive) != 0 {
		t.Errorf("right-recursive rule should not be flagged, got %v", a2.LeftRecursive)
	}
}
