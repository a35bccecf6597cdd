package grammar

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/gobnf"
)

// The matching engine enumerates candidate matches as lazy sequences. A
// sequence state holds the current candidate plus a generator closure for the
// successor state; pulling the next candidate means calling the generator.
// Sequences always pre-fetch their head candidate.
//
// Two sequence shapes mirror the match cascade: term and rule matches produce
// single parse-tree nodes (matchSeq), term-group matches produce ordered node
// lists (groupSeq).

// match is one candidate match: a parse-tree node plus the input position
// just behind the matched text.
type match struct {
	node gobnf.Node
	end  int
}

// matchGenerator produces the successor state of a match sequence.
type matchGenerator func() matchSeq

// matchSeq is a lazy, non-restartable sequence of single-node candidates.
// A nil head node marks the exhausted sequence; err is set when enumeration
// stopped on an error instead of running dry.
type matchSeq struct {
	head match
	gen  matchGenerator
	err  error
}

func (s matchSeq) done() bool {
	return s.head.node == nil
}

func (s matchSeq) advance() matchSeq {
	if s.gen == nil {
		return matchSeq{err: s.err}
	}
	return s.gen()
}

// seqAppend concatenates a sequence with a lazily constructed continuation.
// The continuation is not touched before s is exhausted.
func seqAppend(s matchSeq, rest func() matchSeq) matchSeq {
	if s.err != nil {
		return s
	}
	if s.done() {
		return rest()
	}
	return matchSeq{head: s.head, gen: func() matchSeq {
		return seqAppend(s.advance(), rest)
	}}
}

// groupMatch is one candidate match of a term group: the ordered nodes its
// terms produced plus the input position just behind the matched text.
type groupMatch struct {
	nodes []gobnf.Node
	end   int
	ok    bool
}

// groupGenerator produces the successor state of a group sequence.
type groupGenerator func() groupSeq

// groupSeq is a lazy, non-restartable sequence of node-list candidates.
type groupSeq struct {
	head groupMatch
	gen  groupGenerator
	err  error
}

func (s groupSeq) done() bool {
	return !s.head.ok
}

func (s groupSeq) advance() groupSeq {
	if s.gen == nil {
		return groupSeq{err: s.err}
	}
	return s.gen()
}

// --- Term matching ----------------------------------------------------------

// A literal matches iff the input at pos starts with its text. Deterministic:
// zero or one candidate.
func (t Literal) match(input string, pos int, lang *Language) matchSeq {
	if !strings.HasPrefix(input[pos:], t.Text) {
		return matchSeq{}
	}
	end := pos + len(t.Text)
	node := &gobnf.LiteralNode{Value: t.Text, Extent: gobnf.Span{pos, end}}
	return matchSeq{head: match{node: node, end: end}}
}

// An EOF anchor matches iff the input is consumed up to its end. It produces
// an empty literal node and consumes nothing.
func (t EOFTerm) match(input string, pos int, lang *Language) matchSeq {
	if pos != len(input) {
		return matchSeq{}
	}
	node := &gobnf.LiteralNode{Value: "", Extent: gobnf.Span{pos, pos}}
	return matchSeq{head: match{node: node, end: pos}}
}

// A rule reference delegates to the named rule. The rule is resolved now, at
// match time; a dangling reference ends the sequence with UnknownRuleError.
func (t RuleReference) match(input string, pos int, lang *Language) matchSeq {
	rule, err := lang.Rule(t.Rule)
	if err != nil {
		return matchSeq{err: err}
	}
	return rule.match(input, pos, lang)
}

// --- Rule and syntax matching -----------------------------------------------

func (r *Rule) match(input string, pos int, lang *Language) matchSeq {
	return r.syntax.match(input, pos, r.name, lang)
}

// A syntax tries its alternatives in registration order and concatenates
// their candidate sequences: all of alternative 0's candidates, then
// alternative 1's, and so on.
func (s *Syntax) match(input string, pos int, name gobnf.RuleName, lang *Language) matchSeq {
	return s.matchAlternative(input, pos, 0, name, lang)
}

func (s *Syntax) matchAlternative(input string, pos, alt int, name gobnf.RuleName, lang *Language) matchSeq {
	if alt >= len(s.groups) {
		return matchSeq{}
	}
	candidates := reduce(s.groups[alt].match(input, pos, lang), name, alt, pos)
	return seqAppend(candidates, func() matchSeq {
		return s.matchAlternative(input, pos, alt+1, name, lang)
	})
}

// reduce wraps every candidate of a group sequence into a rule node carrying
// the alternative index that produced it.
func reduce(s groupSeq, name gobnf.RuleName, alt int, start int) matchSeq {
	if s.err != nil {
		return matchSeq{err: s.err}
	}
	if s.done() {
		return matchSeq{}
	}
	node := &gobnf.RuleNode{
		Rule:        name,
		Alternative: alt,
		Children:    s.head.nodes,
		Extent:      gobnf.Span{start, s.head.end},
	}
	return matchSeq{head: match{node: node, end: s.head.end}, gen: func() matchSeq {
		return reduce(s.advance(), name, alt, start)
	}}
}

// --- Term-group matching (sequential backtracking) --------------------------

// A term group matches by depth-first, fully backtracking concatenation of
// its terms: every combination of term candidates against the remaining text
// is enumerated, the first term's candidates varying outermost. There is no
// memoization across calls; ambiguous grammars may enumerate exponentially
// many combinations.
func (g *TermGroup) match(input string, pos int, lang *Language) groupSeq {
	if len(g.terms) == 0 {
		// epsilon alternative
		return groupSeq{head: groupMatch{nodes: []gobnf.Node{}, end: pos, ok: true}}
	}
	return g.matchFrom(input, pos, 0, lang)
}

func (g *TermGroup) matchFrom(input string, pos, index int, lang *Language) groupSeq {
	head := g.terms[index].match(input, pos, lang)
	if index == len(g.terms)-1 {
		return lastTerm(head)
	}
	return g.continueWith(input, index, head, lang)
}

// lastTerm wraps the candidates of a group's final term into one-element node
// lists.
func lastTerm(s matchSeq) groupSeq {
	if s.err != nil {
		return groupSeq{err: s.err}
	}
	if s.done() {
		return groupSeq{}
	}
	gm := groupMatch{nodes: []gobnf.Node{s.head.node}, end: s.head.end, ok: true}
	return groupSeq{head: gm, gen: func() groupSeq {
		return lastTerm(s.advance())
	}}
}

// continueWith iterates the candidates of the term at index; for each one the
// remaining terms are matched against the respective leftover. Outer
// candidates which leave the tail without a match are skipped.
func (g *TermGroup) continueWith(input string, index int, outer matchSeq, lang *Language) groupSeq {
	for !outer.done() {
		inner := g.matchFrom(input, outer.head.end, index+1, lang)
		if inner.err != nil {
			return groupSeq{err: inner.err}
		}
		if !inner.done() {
			return g.pairUp(input, index, outer, inner, lang)
		}
		outer = outer.advance()
	}
	return groupSeq{err: outer.err}
}

// pairUp yields the combination of the current outer and inner candidates,
// lazily continuing with the rest of inner and falling back to the next outer
// candidate when inner runs dry.
func (g *TermGroup) pairUp(input string, index int, outer matchSeq, inner groupSeq, lang *Language) groupSeq {
	gm := groupMatch{
		nodes: prepend(outer.head.node, inner.head.nodes),
		end:   inner.head.end,
		ok:    true,
	}
	return groupSeq{head: gm, gen: func() groupSeq {
		next := inner.advance()
		if next.err != nil {
			return groupSeq{err: next.err}
		}
		if next.done() {
			return g.continueWith(input, index, outer.advance(), lang)
		}
		return g.pairUp(input, index, outer, next, lang)
	}}
}

// prepend copies, never aliases: candidates do not share node slices.
func prepend(node gobnf.Node, nodes []gobnf.Node) []gobnf.Node {
	combined := make([]gobnf.Node, 0, len(nodes)+1)
	combined = append(combined, node)
	return append(combined, nodes...)
}

// --- Public matching API ----------------------------------------------------

// Match is one candidate way the root rule matches a prefix of the input
// text.
type Match struct {
	Leftover string     // input text not consumed by this candidate
	Tree     gobnf.Node // parse tree for the consumed prefix
}

// MatchSeq lazily enumerates the candidate matches of a text against a
// language. Every call to Language.Matches constructs a fresh, independent
// sequence; a sequence cannot be restarted or consumed twice. The client
// controls how many candidates are produced, e.g. stopping after the first
// one or enumerating all of them to detect ambiguity.
//
// The usage pattern follows bufio.Scanner:
//
//    matches := lang.Matches(input)
//    for matches.Next() {
//        m := matches.Match()
//        …
//    }
//    if err := matches.Err(); err != nil {
//        …
//    }
//
type MatchSeq struct {
	input   string
	seq     matchSeq
	started bool
}

// Matches returns a lazy sequence of all candidate matches of the root rule
// against a prefix of text.
func (l *Language) Matches(text string) *MatchSeq {
	root, err := l.Rule(l.root)
	if err != nil {
		return &MatchSeq{input: text, seq: matchSeq{err: err}}
	}
	return &MatchSeq{input: text, seq: root.match(text, 0, l)}
}

// Next advances the sequence to its next candidate match. It returns false
// when the sequence is exhausted; clients should inspect Err afterwards.
func (s *MatchSeq) Next() bool {
	if s.started {
		s.seq = s.seq.advance()
	} else {
		s.started = true
	}
	return !s.seq.done()
}

// Match returns the current candidate. It is only valid after a call to Next
// returned true.
func (s *MatchSeq) Match() Match {
	return Match{Leftover: s.input[s.seq.head.end:], Tree: s.seq.head.node}
}

// Err returns the error which stopped the enumeration, if any.
func (s *MatchSeq) Err() error {
	return s.seq.err
}

// Break stops the enumeration; subsequent calls to Next return false.
func (s *MatchSeq) Break() {
	s.seq = matchSeq{}
	s.started = true
}

// Parse matches text against the language's root rule and returns the parse
// tree of the single candidate match. Zero candidates yield a NoParseError,
// two or more an AmbiguousParseError. Parse does not require the input to be
// consumed completely; grammars wanting full-input matches end their
// top-level alternatives with an EOF term.
func (l *Language) Parse(text string) (gobnf.Node, error) {
	matches := l.Matches(text)
	if !matches.Next() {
		if err := matches.Err(); err != nil {
			return nil, err
		}
		return nil, &NoParseError{Input: text}
	}
	node := matches.Match().Tree
	if matches.Next() {
		matches.Break()
		return nil, &AmbiguousParseError{Input: text}
	}
	if err := matches.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %q ⇒ %v", text, node)
	return node, nil
}
