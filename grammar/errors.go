package grammar

import (
	"fmt"

	"github.com/npillmayer/gobnf"
)

// DuplicateRuleError is returned when a rule is registered under a name which
// is already present in the Language.
type DuplicateRuleError struct {
	Rule gobnf.RuleName
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q is already registered in this language", e.Rule)
}

// UnknownRuleError is returned when a rule reference names a rule which is not
// registered in the Language. Since rule references are resolved lazily during
// matching, this error may surface on the first traversal of a grammar rather
// than at construction time.
type UnknownRuleError struct {
	Rule gobnf.RuleName
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("no rule %q registered in this language", e.Rule)
}

// NoParseError is returned by Language.Parse when the root rule does not match
// the input text in any way.
type NoParseError struct {
	Input string
}

func (e *NoParseError) Error() string {
	return fmt.Sprintf("input %q does not match the grammar", abridge(e.Input))
}

// AmbiguousParseError is returned by Language.Parse when the root rule matches
// the input text in more than one way. Clients wanting to inspect the
// candidates should enumerate them with Language.Matches instead.
type AmbiguousParseError struct {
	Input string
}

func (e *AmbiguousParseError) Error() string {
	return fmt.Sprintf("input %q matches the grammar ambiguously", abridge(e.Input))
}

func abridge(text string) string {
	if len(text) > 40 {
		return text[:37] + "…"
	}
	return text
}
