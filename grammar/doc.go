/*
Package grammar implements a model for context-free grammars, together with a
backtracking matching engine.

A Language is a registry of named rules plus a designated root rule. Every
rule owns a Syntax, i.e. an ordered list of alternatives, and every
alternative (a TermGroup) is an ordered concatenation of terms. Terms are
literals, end-of-input anchors, or references to other rules. Grammars are
assembled through explicit construction calls or through a builder object;
there is no grammar-description notation to parse.

Matching a text against a Language enumerates — lazily and exhaustively — all
ways the root rule can derive a prefix of the text. Every candidate carries a
typed parse tree (see the root package's Node) which records, for each matched
rule, the index of the alternative that matched. That index is the link to the
transformation layer in package transform. Language.Parse requires exactly one
candidate and fails otherwise.

The engine performs no memoization across match attempts and does not detect
left recursion; package-level analysis (Analyze) reports left-recursive and
undefined or unreachable rules ahead of time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gobnf.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("gobnf.grammar")
}
