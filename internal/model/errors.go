package model

import "fmt"

// ParseError signals a malformed template: unbalanced delimiters, a bad
// escape sequence, or a group left empty. It is always a load-time fatal
// error, never something recovered from mid-match.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q: %s", e.Text, e.Reason)
}

// MissingListError is returned when a ListReference names a slot list that
// was never declared. Unlike a no-match, this is a configuration mistake
// and is propagated as a real error.
type MissingListError struct {
	ListName string
}

func (e *MissingListError) Error() string {
	return fmt.Sprintf("missing slot list: %s", e.ListName)
}

// MissingRuleError is returned when a RuleReference names an expansion rule
// that was never declared.
type MissingRuleError struct {
	RuleName string
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("missing expansion rule: %s", e.RuleName)
}

// ValueError signals a malformed slot list declaration, such as a range
// with stop < start or an unrecognized range type.
type ValueError struct {
	Reason string
}

func (e *ValueError) Error() string {
	return e.Reason
}
