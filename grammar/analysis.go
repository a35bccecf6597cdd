package grammar

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/gobnf"
)

// Analysis is a static report over a Language. Since rule references resolve
// lazily at match time, a Language may carry authoring mistakes which only
// surface deep inside a parse — or never, silently producing NoParseErrors.
// Analyze finds them eagerly:
//
// ■ Undefined: rule names that are referenced but not registered, mapped to
// the rules referencing them.
//
// ■ Unreachable: registered rules that no chain of references connects to the
// root rule.
//
// ■ LeftRecursive: rules that can reach themselves through leftmost reference
// chains without consuming input first. Matching such a rule descends without
// bound; the matching engine does not guard against this, so left recursion
// is reported here as a warning only.
type Analysis struct {
	lang          *Language
	Undefined     map[gobnf.RuleName][]gobnf.RuleName
	Unreachable   []gobnf.RuleName
	LeftRecursive []gobnf.RuleName
}

// Analyze inspects a language and reports authoring mistakes the lazy
// matching engine would not surface eagerly.
func Analyze(l *Language) *Analysis {
	a := &Analysis{
		lang:      l,
		Undefined: make(map[gobnf.RuleName][]gobnf.RuleName),
	}
	a.findUndefined()
	a.findUnreachable()
	a.findLeftRecursion()
	tracer().Infof("grammar analysis: %d undefined, %d unreachable, %d left-recursive",
		len(a.Undefined), len(a.Unreachable), len(a.LeftRecursive))
	return a
}

// Language returns the language this analysis was created for.
func (a *Analysis) Language() *Language {
	return a.lang
}

// OK returns true if the language has no undefined rule references, i.e. no
// traversal can run into an UnknownRuleError.
func (a *Analysis) OK() bool {
	return len(a.Undefined) == 0
}

// We keep rule names in gods containers; they need a comparator.
func ruleNameComparator(x, y interface{}) int {
	return utils.StringComparator(string(x.(gobnf.RuleName)), string(y.(gobnf.RuleName)))
}

func (a *Analysis) findUndefined() {
	a.lang.EachRule(func(r *Rule) {
		for _, g := range r.syntax.groups {
			for _, t := range g.terms {
				ref, ok := t.(RuleReference)
				if !ok {
					continue
				}
				if _, err := a.lang.Rule(ref.Rule); err != nil {
					a.Undefined[ref.Rule] = appendName(a.Undefined[ref.Rule], r.name)
					tracer().Debugf("rule %s references undefined rule %s", r.name, ref.Rule)
				}
			}
		}
	})
}

func appendName(names []gobnf.RuleName, name gobnf.RuleName) []gobnf.RuleName {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

// findUnreachable walks the reference graph breadth-first from the root rule
// and reports every registered rule the walk never visits.
func (a *Analysis) findUnreachable() {
	visited := treeset.NewWith(ruleNameComparator)
	worklist := arraylist.New()
	worklist.Add(a.lang.root)
	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		name := v.(gobnf.RuleName)
		if visited.Contains(name) {
			continue
		}
		visited.Add(name)
		rule, err := a.lang.Rule(name)
		if err != nil {
			continue // undefined, reported separately
		}
		for _, g := range rule.syntax.groups {
			for _, t := range g.terms {
				if ref, ok := t.(RuleReference); ok {
					worklist.Add(ref.Rule)
				}
			}
		}
	}
	for _, name := range a.lang.RuleNames() {
		if !visited.Contains(name) {
			a.Unreachable = append(a.Unreachable, name)
			tracer().Debugf("rule %s is unreachable from root [%s]", name, a.lang.root)
		}
	}
}

// findLeftRecursion builds the leftmost-reference graph — an edge R→S exists
// if an alternative of R references S at a position where all preceding terms
// may match without consuming input — and reports every rule lying on a cycle
// of that graph.
func (a *Analysis) findLeftRecursion() {
	nullable := a.nullableRules()
	edges := make(map[gobnf.RuleName][]gobnf.RuleName)
	a.lang.EachRule(func(r *Rule) {
		for _, g := range r.syntax.groups {
			for _, t := range g.terms {
				if ref, ok := t.(RuleReference); ok {
					edges[r.name] = appendName(edges[r.name], ref.Rule)
				}
				if !termNullable(t, nullable) {
					break
				}
			}
		}
	})
	for _, name := range a.lang.RuleNames() {
		if a.reachesItself(name, edges) {
			a.LeftRecursive = append(a.LeftRecursive, name)
			tracer().Debugf("rule %s is left-recursive", name)
		}
	}
}

func (a *Analysis) reachesItself(start gobnf.RuleName, edges map[gobnf.RuleName][]gobnf.RuleName) bool {
	visited := treeset.NewWith(ruleNameComparator)
	worklist := arraylist.New()
	for _, succ := range edges[start] {
		worklist.Add(succ)
	}
	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		name := v.(gobnf.RuleName)
		if name == start {
			return true
		}
		if visited.Contains(name) {
			continue
		}
		visited.Add(name)
		for _, succ := range edges[name] {
			worklist.Add(succ)
		}
	}
	return false
}

// nullableRules computes, by fixpoint iteration, the set of rules which may
// match without consuming any input.
func (a *Analysis) nullableRules() map[gobnf.RuleName]bool {
	nullable := make(map[gobnf.RuleName]bool)
	for changed := true; changed; {
		changed = false
		a.lang.EachRule(func(r *Rule) {
			if nullable[r.name] {
				return
			}
			for _, g := range r.syntax.groups {
				if groupNullable(g, nullable) {
					nullable[r.name] = true
					changed = true
					return
				}
			}
		})
	}
	return nullable
}

func groupNullable(g *TermGroup, nullable map[gobnf.RuleName]bool) bool {
	for _, t := range g.terms {
		if !termNullable(t, nullable) {
			return false
		}
	}
	return true
}

func termNullable(t Term, nullable map[gobnf.RuleName]bool) bool {
	switch t := t.(type) {
	case Literal:
		return len(t.Text) == 0
	case EOFTerm:
		return true // anchors consume nothing
	case RuleReference:
		return nullable[t.Rule]
	}
	return false
}
