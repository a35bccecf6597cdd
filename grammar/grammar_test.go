package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	b := NewBuilder("Greeting")
	b.LHS("Greeting").Lit("hello ").Ref("Name").EOF().End()
	b.LHS("Name").Lit("world").End()
	b.LHS("Name").Lit("gopher").End()
	built, err := b.Language()
	if err != nil {
		t.Fatal(err)
	}
	assembled := NewLanguage("Greeting").
		MustAdd(NewRule("Greeting", NewSyntax(
			NewTermGroup(Lit("hello "), Ref("Name"), EOF()),
		))).
		MustAdd(NewRule("Name", NewSyntax(
			NewTermGroup(Lit("world")),
			NewTermGroup(Lit("gopher")),
		)))
	if !built.Equals(assembled) {
		t.Errorf("builder output differs from explicit assembly: %s", Diff(built, assembled))
	}
}

func TestDuplicateRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	lang := NewLanguage("R")
	if err := lang.Add(NewRule("R", NewSyntax(NewTermGroup(Lit("a"))))); err != nil {
		t.Fatal(err)
	}
	err := lang.Add(NewRule("R", NewSyntax(NewTermGroup(Lit("b")))))
	var dup *DuplicateRuleError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateRuleError, got %v", err)
	}
	if dup.Rule != "R" {
		t.Errorf("expected duplicate rule name R, got %q", dup.Rule)
	}
}

func TestEqualityIsOrderSensitive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	g1 := NewTermGroup(Lit("a"))
	g2 := NewTermGroup(Lit("b"))
	s1 := NewSyntax(g1, g2)
	s2 := NewSyntax(g2, g1)
	if !s1.Equals(NewSyntax(NewTermGroup(Lit("a")), NewTermGroup(Lit("b")))) {
		t.Errorf("structurally identical syntaxes should compare equal")
	}
	if s1.Equals(s2) {
		t.Errorf("syntaxes with reordered alternatives must compare unequal")
	}
	l1 := NewLanguage("R").MustAdd(NewRule("R", s1))
	l2 := NewLanguage("R").MustAdd(NewRule("R", s2))
	if l1.Equals(l2) {
		t.Errorf("languages with reordered alternatives must compare unequal")
	}
	if d := Diff(l1, l2); d == "" {
		t.Errorf("Diff should report the reordered alternative")
	}
}

func TestTermEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	if !Lit("a").Equals(Lit("a")) || Lit("a").Equals(Lit("b")) {
		t.Errorf("literal equality broken")
	}
	if !EOF().Equals(EOF()) || EOF().Equals(Lit("")) {
		t.Errorf("EOF equality broken")
	}
	if !Ref("R").Equals(Ref("R")) || Ref("R").Equals(Ref("S")) || Ref("R").Equals(Lit("R")) {
		t.Errorf("rule-reference equality broken")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	make1 := func() *Language {
		return NewLanguage("R").MustAdd(NewRule("R", NewSyntax(
			NewTermGroup(Lit("a"), EOF()),
			NewTermGroup(Ref("S")),
		))).MustAdd(NewRule("S", NewSyntax(NewTermGroup(Lit("s")))))
	}
	l1, l2 := make1(), make1()
	f1, f2 := l1.Fingerprint(), l2.Fingerprint()
	if f1 == "" {
		t.Fatalf("fingerprint is empty")
	}
	if f1 != f2 {
		t.Errorf("equal grammars should have equal fingerprints: %s vs %s", f1, f2)
	}
	l3 := NewLanguage("R").MustAdd(NewRule("R", NewSyntax(
		NewTermGroup(Ref("S")),
		NewTermGroup(Lit("a"), EOF()),
	))).MustAdd(NewRule("S", NewSyntax(NewTermGroup(Lit("s")))))
	if l3.Fingerprint() == f1 {
		t.Errorf("grammars with reordered alternatives should have different fingerprints")
	}
}

func TestDiffReportsFirstDivergence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gobnf.grammar")
	defer teardown()
	//
	l1 := NewLanguage("R").MustAdd(NewRule("R", NewSyntax(NewTermGroup(Lit("a"), EOF()))))
	l2 := NewLanguage("R").MustAdd(NewRule("R", NewSyntax(NewTermGroup(Lit("b"), EOF()))))
	d := Diff(l1, l2)
	if d == "" {
		t.Fatalf("expected a divergence report")
	}
	t.Logf("diff = %s", d)
	if Diff(l1, l1) != "" {
		t.Errorf("language should not diff against itself")
	}
}
