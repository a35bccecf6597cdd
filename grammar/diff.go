package grammar

import (
	"fmt"

	"github.com/npillmayer/gobnf"
)

// Diff compares two languages structurally and describes the first point of
// divergence in human-readable form, e.g. for debugging test fixtures. It
// returns the empty string when the languages are structurally equal. The
// Equals methods stay free of side effects; Diff additionally reports the
// divergence to the grammar tracer.
func Diff(a, b *Language) string {
	d := diffLanguage(a, b)
	if d != "" {
		tracer().Infof("languages differ: %s", d)
	}
	return d
}

func diffLanguage(a, b *Language) string {
	if b == nil {
		return "second language is nil"
	}
	if a.root != b.root {
		return fmt.Sprintf("root rule differs: [%s] vs [%s]", a.root, b.root)
	}
	for _, name := range a.RuleNames() {
		if _, ok := b.rules[name]; !ok {
			return fmt.Sprintf("rule %s is missing from second language", name)
		}
	}
	for _, name := range b.RuleNames() {
		if _, ok := a.rules[name]; !ok {
			return fmt.Sprintf("rule %s is missing from first language", name)
		}
	}
	for _, name := range a.RuleNames() {
		if d := diffSyntax(name, a.rules[name].syntax, b.rules[name].syntax); d != "" {
			return d
		}
	}
	return ""
}

func diffSyntax(name gobnf.RuleName, a, b *Syntax) string {
	if len(a.groups) != len(b.groups) {
		return fmt.Sprintf("rule %s: alternative count differs: %d vs %d",
			name, len(a.groups), len(b.groups))
	}
	for i, g := range a.groups {
		if d := diffGroup(name, i, g, b.groups[i]); d != "" {
			return d
		}
	}
	return ""
}

func diffGroup(name gobnf.RuleName, alt int, a, b *TermGroup) string {
	if len(a.terms) != len(b.terms) {
		return fmt.Sprintf("rule %s, alternative %d: term count differs: %d vs %d",
			name, alt, len(a.terms), len(b.terms))
	}
	for i, t := range a.terms {
		if !t.Equals(b.terms[i]) {
			return fmt.Sprintf("rule %s, alternative %d, term %d: %s vs %s",
				name, alt, i, t, b.terms[i])
		}
	}
	return ""
}
