package grammar

import (
	"github.com/cnf/structhash"
)

// Digest types mirror the grammar structure with plain exported fields, as
// input for structhash.
type languageDigest struct {
	Root  string
	Rules []ruleDigest
}

type ruleDigest struct {
	Name         string
	Alternatives [][]termDigest
}

type termDigest struct {
	Kind string // "lit" | "eof" | "ref"
	Text string
}

// Fingerprint returns a stable hash over the grammar's structure. Languages
// comparing equal under Equals carry identical fingerprints. Fingerprints are
// intended for identifying grammar fixtures, e.g. in tests or cache keys.
func (l *Language) Fingerprint() string {
	d := languageDigest{Root: string(l.root)}
	for _, name := range l.RuleNames() {
		rule := l.rules[name]
		rd := ruleDigest{Name: string(name)}
		for _, g := range rule.syntax.groups {
			alt := make([]termDigest, 0, len(g.terms))
			for _, t := range g.terms {
				switch t := t.(type) {
				case Literal:
					alt = append(alt, termDigest{Kind: "lit", Text: t.Text})
				case EOFTerm:
					alt = append(alt, termDigest{Kind: "eof"})
				case RuleReference:
					alt = append(alt, termDigest{Kind: "ref", Text: string(t.Rule)})
				}
			}
			rd.Alternatives = append(rd.Alternatives, alt)
		}
		d.Rules = append(d.Rules, rd)
	}
	hash, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint language: %v", err)
		return ""
	}
	return hash
}
