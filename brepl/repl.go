package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gobnf"
	"github.com/npillmayer/gobnf/grammar"
	"github.com/npillmayer/gobnf/transform"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'gobnf.brepl'.
func tracer() tracing.Trace {
	return tracing.Select("gobnf.brepl")
}

// We provide a simple expression grammar as a default for parsing and
// transformation experiments.
//
//  Input  ➞ Expr #eof
//  Expr   ➞ Term '+' Expr  |  Term
//  Term   ➞ Factor '*' Term  |  Factor
//  Factor ➞ Digit  |  '(' Expr ')'
//  Digit  ➞ '0' | … | '9'
//
func makeExprLanguage() *grammar.Language {
	b := grammar.NewBuilder("Input")
	b.LHS("Input").Ref("Expr").EOF().End()
	b.LHS("Expr").Ref("Term").Lit("+").Ref("Expr").End()
	b.LHS("Expr").Ref("Term").End()
	b.LHS("Term").Ref("Factor").Lit("*").Ref("Term").End()
	b.LHS("Term").Ref("Factor").End()
	b.LHS("Factor").Ref("Digit").End()
	b.LHS("Factor").Lit("(").Ref("Expr").Lit(")").End()
	for d := 0; d <= 9; d++ {
		b.LHS("Digit").Lit(fmt.Sprintf("%d", d)).End()
	}
	lang, err := b.Language()
	if err != nil {
		panic(fmt.Errorf("error creating language: %s", err.Error()))
	}
	if a := grammar.Analyze(lang); !a.OK() {
		panic(fmt.Errorf("demo language has undefined rules: %v", a.Undefined))
	}
	return lang
}

// makeCalculator registers accumulators evaluating the expression grammar to
// an integer. Note how Factor's second alternative reads only the inner
// expression; the paren literals are never transformed.
func makeCalculator() *transform.LanguageTransformation {
	first := func(seq *transform.LazySeq) (interface{}, error) {
		return seq.Get(0)
	}
	binop := func(op func(a, b int) int) transform.Accumulator {
		return func(seq *transform.LazySeq) (interface{}, error) {
			left, err := seq.Get(0)
			if err != nil {
				return nil, err
			}
			right, err := seq.Get(2)
			if err != nil {
				return nil, err
			}
			return op(left.(int), right.(int)), nil
		}
	}
	digits := make([]transform.Accumulator, 10)
	for d := 0; d <= 9; d++ {
		value := d
		digits[d] = func(seq *transform.LazySeq) (interface{}, error) {
			return value, nil
		}
	}
	lt := transform.NewLanguageTransformation()
	lt.MapRule("Input", first)
	lt.MapRule("Expr", binop(func(a, b int) int { return a + b }), first)
	lt.MapRule("Term", binop(func(a, b int) int { return a * b }), first)
	lt.MapRule("Factor", first, func(seq *transform.LazySeq) (interface{}, error) {
		return seq.Get(1) // skip the parens
	})
	lt.MapRule("Digit", digits...)
	return lt
}

// main() starts an interactive CLI ("B.REPL"), where users may enter
// arithmetic expressions. B.REPL parses each line against the demo grammar,
// renders the resulting parse tree and prints the value the calculator
// transformation computes for it. It is intended as a sandbox for
// experimenting with grammar definitions and transformations.
//
// Please refer to packages "grammar" and "transform".
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	showTree := flag.Bool("tree", true, "Render parse trees")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to BREPL") // colored welcome message
	//
	// set up grammar and transformation
	lang := makeExprLanguage()
	lang.Dump() // only visible in debug mode
	calc := makeCalculator()
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	//
	// set up REPL
	repl, err := readline.New("brepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		lang:     lang,
		calc:     calc,
		repl:     repl,
		showTree: *showTree,
	}
	if input != "" {
		intp.Eval(input)
	}
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lang     *grammar.Language
	calc     *transform.LanguageTransformation
	repl     *readline.Instance
	showTree bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.Eval(line)
	}
	println("Good bye!")
}

// Eval parses a single input line, renders the parse tree and prints the
// transformed value.
func (intp *Intp) Eval(line string) {
	node, err := intp.lang.Parse(line)
	if err != nil {
		intp.explain(err)
		return
	}
	if intp.showTree {
		root := pterm.NewTreeFromLeveledList(leveledNode(node, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	}
	value, err := intp.calc.Transform(node)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Println(fmt.Sprintf("%v", value))
}

func (intp *Intp) explain(err error) {
	var ambi *grammar.AmbiguousParseError
	if errors.As(err, &ambi) {
		pterm.Error.Println("input matches in more than one way:")
		matches := intp.lang.Matches(ambi.Input)
		for n := 1; matches.Next(); n++ {
			m := matches.Match()
			pterm.Println(fmt.Sprintf("  %d: %v, leftover %q", n, m.Tree, m.Leftover))
		}
		return
	}
	pterm.Error.Println(err.Error())
}

func leveledNode(node gobnf.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch n := node.(type) {
	case *gobnf.LiteralNode:
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  fmt.Sprintf("%q %s", n.Value, n.Extent),
		})
	case *gobnf.RuleNode:
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  fmt.Sprintf("%s/%d %s", n.Rule, n.Alternative, n.Extent),
		})
		for _, c := range n.Children {
			ll = leveledNode(c, ll, level+1)
		}
	}
	return ll
}
