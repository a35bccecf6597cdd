/*
Package transform converts parse trees into client-defined values.

A LanguageTransformation mirrors a grammar.Language: it maps rule names to
rule transformations, which in turn hold one accumulator function per
alternative of the mirrored rule's syntax — registered in exactly the same
order as the grammar's term groups. Transforming a rule node looks up the
transformation by the node's rule name and selects the accumulator by the
alternative index recorded at match time.

Accumulators do not receive raw child nodes. They receive a LazySeq, an
indexable view over the node's children which transforms a child only when it
is first accessed, and memoizes the result for the duration of the accumulator
invocation. An accumulator may therefore skip children it does not care about
(say, a delimiter literal) without paying for their transformation, and may
read a child's value any number of times while it is computed at most once.

Literal leaves transform to their matched text; they are the recursion base
case and consult no accumulator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package transform

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gobnf.transform'.
func tracer() tracing.Trace {
	return tracing.Select("gobnf.transform")
}
