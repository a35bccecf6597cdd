package transform

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/gobnf"
)

// Accumulator converts the children of a matched rule alternative into an
// arbitrary client value. Children arrive as a LazySeq; only the children the
// accumulator actually reads get transformed. Errors from nested child
// transformations should be passed through unchanged.
type Accumulator func(children *LazySeq) (interface{}, error)

// --- Errors -----------------------------------------------------------------

// MissingTransformationError is returned when a rule node's rule name has no
// registered rule transformation.
type MissingTransformationError struct {
	Rule gobnf.RuleName
}

func (e *MissingTransformationError) Error() string {
	return fmt.Sprintf("no transformation registered for rule %q", e.Rule)
}

// AlternativeIndexError is returned when a rule node's recorded alternative
// index has no corresponding accumulator, i.e. the transformation was
// registered with fewer alternatives than the grammar rule's syntax has. This
// is an authoring bug in the transformation and is never silently skipped.
type AlternativeIndexError struct {
	Rule         gobnf.RuleName
	Alternative  int
	Accumulators int
}

func (e *AlternativeIndexError) Error() string {
	return fmt.Sprintf("rule %q matched with alternative %d, but its transformation has only %d accumulator(s)",
		e.Rule, e.Alternative, e.Accumulators)
}

// --- Transformation registry -------------------------------------------------

// LanguageTransformation maps rule names to rule transformations; it is the
// entry point for transforming a parse tree. Registrations accumulate; a
// later registration for the same rule name replaces the earlier one.
type LanguageTransformation struct {
	rules map[gobnf.RuleName]*RuleTransformation
}

// NewLanguageTransformation creates an empty transformation registry.
func NewLanguageTransformation() *LanguageTransformation {
	return &LanguageTransformation{
		rules: make(map[gobnf.RuleName]*RuleTransformation),
	}
}

// Add registers a rule transformation, replacing any earlier registration for
// the same rule name. It returns the registry for chaining.
func (lt *LanguageTransformation) Add(rt *RuleTransformation) *LanguageTransformation {
	lt.rules[rt.Rule()] = rt
	return lt
}

// MapRule registers accumulators for a rule, one per alternative, in the same
// order as the term groups of the rule's syntax. It is shorthand for building
// the rule/syntax/group transformation objects explicitly and returns the
// registry for chaining.
func (lt *LanguageTransformation) MapRule(name gobnf.RuleName, accs ...Accumulator) *LanguageTransformation {
	groups := make([]*TermGroupTransformation, len(accs))
	for i, acc := range accs {
		groups[i] = NewTermGroupTransformation(acc)
	}
	return lt.Add(NewRuleTransformation(name, NewSyntaxTransformation(groups...)))
}

// Transform converts a parse tree into the value built by the registered
// accumulators. A literal leaf transforms to its matched text. A rule node
// dispatches on its rule name — MissingTransformationError if none is
// registered — and then on its recorded alternative index.
func (lt *LanguageTransformation) Transform(node gobnf.Node) (interface{}, error) {
	switch n := node.(type) {
	case *gobnf.LiteralNode:
		return n.Value, nil
	case *gobnf.RuleNode:
		rt, ok := lt.rules[n.Rule]
		if !ok {
			return nil, &MissingTransformationError{Rule: n.Rule}
		}
		return rt.transform(n, lt)
	}
	return nil, fmt.Errorf("cannot transform node of type %T", node)
}

// --- Per-rule transformations -------------------------------------------------

// RuleTransformation binds a rule name to a syntax transformation. It mirrors
// a grammar.Rule.
type RuleTransformation struct {
	rule   gobnf.RuleName
	syntax *SyntaxTransformation
}

// NewRuleTransformation creates a rule transformation.
func NewRuleTransformation(rule gobnf.RuleName, syntax *SyntaxTransformation) *RuleTransformation {
	return &RuleTransformation{rule: rule, syntax: syntax}
}

// Rule returns the name of the mirrored grammar rule.
func (rt *RuleTransformation) Rule() gobnf.RuleName {
	return rt.rule
}

func (rt *RuleTransformation) transform(node *gobnf.RuleNode, lt *LanguageTransformation) (interface{}, error) {
	return rt.syntax.transform(node, lt)
}

// SyntaxTransformation holds one term-group transformation per alternative,
// indexed identically to the grammar syntax it mirrors. It mirrors a
// grammar.Syntax.
type SyntaxTransformation struct {
	groups []*TermGroupTransformation
}

// NewSyntaxTransformation creates a syntax transformation from an ordered
// list of term-group transformations.
func NewSyntaxTransformation(groups ...*TermGroupTransformation) *SyntaxTransformation {
	return &SyntaxTransformation{groups: groups}
}

func (st *SyntaxTransformation) transform(node *gobnf.RuleNode, lt *LanguageTransformation) (interface{}, error) {
	if node.Alternative < 0 || node.Alternative >= len(st.groups) {
		return nil, &AlternativeIndexError{
			Rule:         node.Rule,
			Alternative:  node.Alternative,
			Accumulators: len(st.groups),
		}
	}
	tracer().Debugf("transforming (%s/%d) with %d children",
		node.Rule, node.Alternative, len(node.Children))
	return st.groups[node.Alternative].transform(node.Children, lt)
}

// TermGroupTransformation wraps the accumulator for one alternative. It
// mirrors a grammar.TermGroup.
type TermGroupTransformation struct {
	accumulator Accumulator
}

// NewTermGroupTransformation creates a term-group transformation around an
// accumulator.
func NewTermGroupTransformation(acc Accumulator) *TermGroupTransformation {
	return &TermGroupTransformation{accumulator: acc}
}

// Every accumulator invocation gets a fresh lazy view over the node's
// children; its memo cache lives and dies with this one call.
func (gt *TermGroupTransformation) transform(children []gobnf.Node, lt *LanguageTransformation) (interface{}, error) {
	return gt.accumulator(newLazySeq(children, lt))
}
