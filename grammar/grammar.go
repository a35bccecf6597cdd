package grammar

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/gobnf"
)

// --- Terms ------------------------------------------------------------------

// Term is the smallest matchable unit of a grammar. It is a closed sum: the
// only variants are Literal, EOFTerm and RuleReference. Terms are immutable
// values.
type Term interface {
	// Equals compares two terms structurally.
	Equals(other Term) bool
	String() string
	// match enumerates all candidate matches of this term against the input,
	// starting at position pos.
	match(input string, pos int, lang *Language) matchSeq
	// sealed against variants outside this package
	term()
}

// Literal is a term matching an exact piece of text.
type Literal struct {
	Text string
}

// EOFTerm is a term matching the end of the input. The engine never requires
// full-input consumption by itself; grammars wanting it place an EOFTerm at
// the end of their top-level alternatives.
type EOFTerm struct{}

// RuleReference is a term deferring to another rule by name. It is the sole
// recursion point of the grammar model. The named rule is looked up at match
// time, so grammars may be mutually and self-recursive; left-recursive rules
// will descend without bound (see Analyze).
type RuleReference struct {
	Rule gobnf.RuleName
}

var _ Term = Literal{}
var _ Term = EOFTerm{}
var _ Term = RuleReference{}

// Lit creates a literal term.
func Lit(text string) Term {
	return Literal{Text: text}
}

// EOF creates an end-of-input anchor term.
func EOF() Term {
	return EOFTerm{}
}

// Ref creates a term referencing the rule with the given name.
func Ref(name gobnf.RuleName) Term {
	return RuleReference{Rule: name}
}

func (t Literal) term()       {}
func (t EOFTerm) term()       {}
func (t RuleReference) term() {}

// Equals compares two terms structurally.
func (t Literal) Equals(other Term) bool {
	o, ok := other.(Literal)
	return ok && t.Text == o.Text
}

// Equals compares two terms structurally.
func (t EOFTerm) Equals(other Term) bool {
	_, ok := other.(EOFTerm)
	return ok
}

// Equals compares two terms structurally.
func (t RuleReference) Equals(other Term) bool {
	o, ok := other.(RuleReference)
	return ok && t.Rule == o.Rule
}

func (t Literal) String() string {
	return fmt.Sprintf("%q", t.Text)
}

func (t EOFTerm) String() string {
	return "#eof"
}

func (t RuleReference) String() string {
	return string(t.Rule)
}

// --- Term groups ------------------------------------------------------------

// TermGroup is one alternative of a rule: an ordered concatenation of terms.
// An empty TermGroup is an epsilon alternative; it matches without consuming
// input and produces a rule node without children.
type TermGroup struct {
	terms []Term
}

// NewTermGroup creates a term group from an ordered list of terms.
func NewTermGroup(terms ...Term) *TermGroup {
	return &TermGroup{terms: terms}
}

// Terms returns the ordered terms of this group.
func (g *TermGroup) Terms() []Term {
	return g.terms
}

// Equals compares two term groups structurally. Term order is significant.
func (g *TermGroup) Equals(other *TermGroup) bool {
	if other == nil || len(g.terms) != len(other.terms) {
		return false
	}
	for i, t := range g.terms {
		if !t.Equals(other.terms[i]) {
			return false
		}
	}
	return true
}

func (g *TermGroup) String() string {
	if len(g.terms) == 0 {
		return "[ε]"
	}
	parts := make([]string, len(g.terms))
	for i, t := range g.terms {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// --- Syntax -----------------------------------------------------------------

// Syntax is the ordered list of alternatives of a rule. The position of an
// alternative is its index; every rule node produced from it records that
// index, and the transformation layer selects accumulators by it. Alternatives
// must therefore never be reordered independently of the corresponding
// transformation.
type Syntax struct {
	groups []*TermGroup
}

// NewSyntax creates a syntax from an ordered list of alternatives.
func NewSyntax(groups ...*TermGroup) *Syntax {
	return &Syntax{groups: groups}
}

// TermGroups returns the ordered alternatives of this syntax.
func (s *Syntax) TermGroups() []*TermGroup {
	return s.groups
}

// Equals compares two syntaxes structurally. Alternative order is significant:
// syntaxes built from the same term groups in different order compare unequal,
// even though each one matches the same strings.
func (s *Syntax) Equals(other *Syntax) bool {
	if other == nil || len(s.groups) != len(other.groups) {
		return false
	}
	for i, g := range s.groups {
		if !g.Equals(other.groups[i]) {
			return false
		}
	}
	return true
}

func (s *Syntax) String() string {
	parts := make([]string, len(s.groups))
	for i, g := range s.groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, " | ")
}

// --- Rules ------------------------------------------------------------------

// Rule is a grammar production: a name bound to a syntax.
type Rule struct {
	name   gobnf.RuleName
	syntax *Syntax
}

// NewRule creates a rule binding name to syntax.
func NewRule(name gobnf.RuleName, syntax *Syntax) *Rule {
	return &Rule{name: name, syntax: syntax}
}

// Name returns the rule's name.
func (r *Rule) Name() gobnf.RuleName {
	return r.name
}

// Syntax returns the rule's syntax.
func (r *Rule) Syntax() *Syntax {
	return r.syntax
}

// Equals compares two rules structurally.
func (r *Rule) Equals(other *Rule) bool {
	return other != nil && r.name == other.name && r.syntax.Equals(other.syntax)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s ::= %s", r.name, r.syntax)
}

// --- Languages --------------------------------------------------------------

// Language is a registry of rules plus a designated root rule; it is the entry
// point for parsing. Languages are built incrementally by registering rules.
// References between rules are not validated during registration — a dangling
// reference surfaces as UnknownRuleError on the first traversal that reaches
// it (or eagerly via Analyze). A Language must not be mutated while a match
// is in progress.
type Language struct {
	rules map[gobnf.RuleName]*Rule
	root  gobnf.RuleName
}

// NewLanguage creates an empty language with the given root rule name.
func NewLanguage(root gobnf.RuleName) *Language {
	return &Language{
		rules: make(map[gobnf.RuleName]*Rule),
		root:  root,
	}
}

// Add registers a rule. Registering a second rule under an already-present
// name returns a DuplicateRuleError.
func (l *Language) Add(rule *Rule) error {
	if _, ok := l.rules[rule.Name()]; ok {
		return &DuplicateRuleError{Rule: rule.Name()}
	}
	l.rules[rule.Name()] = rule
	return nil
}

// MustAdd is like Add but panics on a duplicate name. It returns the language
// and is intended for chained assembly of fixture grammars.
func (l *Language) MustAdd(rule *Rule) *Language {
	if err := l.Add(rule); err != nil {
		panic(err)
	}
	return l
}

// Rule returns the rule registered under name, or an UnknownRuleError.
func (l *Language) Rule(name gobnf.RuleName) (*Rule, error) {
	r, ok := l.rules[name]
	if !ok {
		return nil, &UnknownRuleError{Rule: name}
	}
	return r, nil
}

// Root returns the name of the root rule.
func (l *Language) Root() gobnf.RuleName {
	return l.root
}

// RuleNames returns the names of all registered rules in lexicographic order.
func (l *Language) RuleNames() []gobnf.RuleName {
	names := make([]gobnf.RuleName, 0, len(l.rules))
	for name := range l.rules {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// EachRule calls f for every registered rule, in lexicographic name order.
func (l *Language) EachRule(f func(*Rule)) {
	for _, name := range l.RuleNames() {
		f(l.rules[name])
	}
}

// Equals compares two languages structurally: root rule names, sets of rule
// names, and every rule's syntax. It is free of side effects; use Diff for a
// report of where two languages diverge.
func (l *Language) Equals(other *Language) bool {
	if other == nil || l.root != other.root || len(l.rules) != len(other.rules) {
		return false
	}
	for name, r := range l.rules {
		o, ok := other.rules[name]
		if !ok || !r.Equals(o) {
			return false
		}
	}
	return true
}

// Dump logs all rules of the language to the grammar tracer, for debugging.
func (l *Language) Dump() {
	tracer().Debugf("language with root [%s]:", l.root)
	l.EachRule(func(r *Rule) {
		tracer().Debugf("    %s", r)
	})
}

// --- Builder ----------------------------------------------------------------

// Builder is a convenience object for assembling a Language from rule
// alternatives. Clients repeatedly call LHS, append terms to the returned
// alternative, and finish each alternative with End (or Epsilon for an empty
// one). Alternatives for the same rule accumulate in call order.
//
//    b := grammar.NewBuilder("Greeting")
//    b.LHS("Greeting").Lit("hello ").Ref("Name").EOF().End()
//    b.LHS("Name").Lit("world").End()
//    b.LHS("Name").Lit("gopher").End()
//    lang, err := b.Language()
//
type Builder struct {
	root  gobnf.RuleName
	order []gobnf.RuleName
	alts  map[gobnf.RuleName][]*TermGroup
}

// NewBuilder creates a language builder. The root rule name designates the
// entry point for parsing.
func NewBuilder(root gobnf.RuleName) *Builder {
	return &Builder{
		root: root,
		alts: make(map[gobnf.RuleName][]*TermGroup),
	}
}

// AltBuilder collects the terms of one alternative of a rule.
type AltBuilder struct {
	b     *Builder
	lhs   gobnf.RuleName
	terms []Term
}

// LHS starts a new alternative for the rule with the given name.
func (b *Builder) LHS(name gobnf.RuleName) *AltBuilder {
	if _, ok := b.alts[name]; !ok {
		b.order = append(b.order, name)
	}
	return &AltBuilder{b: b, lhs: name}
}

// Lit appends a literal term to the alternative.
func (ab *AltBuilder) Lit(text string) *AltBuilder {
	ab.terms = append(ab.terms, Lit(text))
	return ab
}

// Ref appends a rule-reference term to the alternative.
func (ab *AltBuilder) Ref(name gobnf.RuleName) *AltBuilder {
	ab.terms = append(ab.terms, Ref(name))
	return ab
}

// EOF appends an end-of-input anchor to the alternative.
func (ab *AltBuilder) EOF() *AltBuilder {
	ab.terms = append(ab.terms, EOF())
	return ab
}

// End finishes the alternative and registers it with the builder.
func (ab *AltBuilder) End() *Builder {
	ab.b.alts[ab.lhs] = append(ab.b.alts[ab.lhs], NewTermGroup(ab.terms...))
	return ab.b
}

// Epsilon finishes the alternative as an empty one, matching without
// consuming input. Terms already appended are discarded.
func (ab *AltBuilder) Epsilon() *Builder {
	ab.b.alts[ab.lhs] = append(ab.b.alts[ab.lhs], NewTermGroup())
	return ab.b
}

// Language assembles the language from all registered alternatives.
func (b *Builder) Language() (*Language, error) {
	lang := NewLanguage(b.root)
	for _, name := range b.order {
		rule := NewRule(name, NewSyntax(b.alts[name]...))
		if err := lang.Add(rule); err != nil {
			return nil, err
		}
	}
	return lang, nil
}
