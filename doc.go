/*
Package gobnf is a grammar-definition and parsing toolbox.

GoBNF lets clients assemble context-free grammars from explicit construction
calls — no grammar-description file format is involved — and match input text
against them. Matching enumerates, lazily and exhaustively, all ways a grammar
can derive a prefix of the input, producing a typed parse tree for each
candidate. A separate transformation layer converts parse trees into arbitrary
client values, dispatching per rule and per matched alternative. Package
structure is as follows:

■ grammar: Package grammar implements the grammar model (languages, rules,
alternatives, terms), a backtracking matching engine with lazy candidate
enumeration, structural comparison and static grammar analysis.

■ transform: Package transform implements parse-tree transformations with
lazily evaluated, memoized access to transformed child values.

■ brepl: An interactive read-parse-transform loop for experimenting with
grammars on a terminal.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gobnf
