package gobnf

import (
	"fmt"
	"strings"
)

// --- Rule names -------------------------------------------------------------

// RuleName names a grammar rule within a language. We do not restrict the
// format of rule names; any non-empty string will do.
type RuleName string

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a run of input text. For every parse-tree
// node, matching will track which input positions the node covers. A span
// denotes a start position and the position just behind the end.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Parse-tree nodes -------------------------------------------------------

// Node is a typed parse-tree value, produced by matching input text against a
// grammar. It is a closed sum: the only variants are LiteralNode for matched
// raw text and RuleNode for a matched rule alternative. Clients dispatch on
// the concrete type with a type switch.
type Node interface {
	// Text renders the node back to the input text it consumed, i.e. the
	// concatenation of all leaf literal values in left-to-right order.
	Text() string
	// Span returns the extent of input text this node covers.
	Span() Span
	// sealed against variants outside this package
	node()
}

// LiteralNode is a parse-tree leaf holding matched raw text. An end-of-input
// anchor produces a LiteralNode with empty value.
type LiteralNode struct {
	Value  string
	Extent Span // span of input text this literal matched
}

// RuleNode is a parse-tree node for a matched rule. Alternative records which
// of the rule's term groups matched; it is the key a transformation will use
// to select an accumulator later. Children are ordered like the terms of the
// matched alternative.
type RuleNode struct {
	Rule        RuleName
	Alternative int
	Children    []Node
	Extent      Span // span of input text this rule reduced
}

var _ Node = (*LiteralNode)(nil)
var _ Node = (*RuleNode)(nil)

func (l *LiteralNode) node() {}

// Text returns the literal's matched text.
func (l *LiteralNode) Text() string {
	return l.Value
}

// Span returns the extent of input text this literal covers.
func (l *LiteralNode) Span() Span {
	return l.Extent
}

func (l *LiteralNode) String() string {
	return fmt.Sprintf("%q", l.Value)
}

func (n *RuleNode) node() {}

// Text renders the node's children back to the input text they consumed.
func (n *RuleNode) Text() string {
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// Span returns the extent of input text this rule covers.
func (n *RuleNode) Span() Span {
	return n.Extent
}

func (n *RuleNode) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("(%s/%d", n.Rule, n.Alternative))
	for _, c := range n.Children {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%v", c))
	}
	b.WriteString(")")
	return b.String()
}

// NodeEqual compares two parse trees structurally. Comparison is
// order-sensitive at every level and includes the matched rule names,
// alternative indices and input spans.
func NodeEqual(a, b Node) bool {
	switch n1 := a.(type) {
	case *LiteralNode:
		n2, ok := b.(*LiteralNode)
		return ok && n1.Value == n2.Value && n1.Extent == n2.Extent
	case *RuleNode:
		n2, ok := b.(*RuleNode)
		if !ok || n1.Rule != n2.Rule || n1.Alternative != n2.Alternative ||
			n1.Extent != n2.Extent || len(n1.Children) != len(n2.Children) {
			return false
		}
		for i, c := range n1.Children {
			if !NodeEqual(c, n2.Children[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
