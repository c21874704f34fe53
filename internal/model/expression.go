// Package model holds the immutable data types shared by the template
// compiler and the string matcher: the expression tree, slot lists, matched
// (and unmatched) entities, and the intents document itself.
package model

import (
	"fmt"
	"regexp"
	"sync"
)

// Expression is the sealed sum type produced by the template compiler.
// Concrete variants are TextChunk, Sequence, Alternative, Permutation,
// ListReference, and RuleReference.
type Expression interface {
	isExpression()
}

// TextChunk is a contiguous literal span of a template.
type TextChunk struct {
	// Text is the normalized form used for matching.
	Text string
	// OriginalText preserves casing/whitespace for entity text reporting.
	OriginalText string
}

func (*TextChunk) isExpression() {}

// NewTextChunk builds a TextChunk, defaulting OriginalText to Text.
func NewTextChunk(text string) *TextChunk {
	return &TextChunk{Text: text, OriginalText: text}
}

// IsEmpty reports whether the chunk carries no text at all.
func (c *TextChunk) IsEmpty() bool {
	return c.Text == ""
}

// Sequence is a left-to-right concatenation of expressions (a "group").
type Sequence struct {
	Items []Expression
}

func (*Sequence) isExpression() {}

// TextChunkCount returns the number of TextChunk items in this sequence,
// recursing into nested Sequences (chunks inside an Alternative or
// Permutation are not counted).
func (s *Sequence) TextChunkCount() int {
	count := 0
	for _, item := range s.Items {
		switch v := item.(type) {
		case *TextChunk:
			count++
		case *Sequence:
			count += v.TextChunkCount()
		}
	}
	return count
}

// ListNames yields the list_name of every ListReference reachable from this
// sequence, following RuleReferences through expansionRules when given.
func (s *Sequence) ListNames(expansionRules map[string]*Sentence) []string {
	var names []string
	for _, item := range s.Items {
		names = append(names, listNamesOf(item, expansionRules)...)
	}
	return names
}

// ExpressionListNames yields the list_name of every ListReference reachable
// from expr, following RuleReferences through expansionRules when given.
// Unlike Sequence.ListNames, expr may be any root Expression a parsed
// Sentence can produce — a template with a top-level Alternative or
// Permutation (e.g. "a|b" with no enclosing parens) never gets wrapped in a
// Sequence, so callers walking an arbitrary Sentence.Root must use this
// instead of type-asserting to *Sequence first.
func ExpressionListNames(expr Expression, expansionRules map[string]*Sentence) []string {
	return listNamesOf(expr, expansionRules)
}

func listNamesOf(item Expression, expansionRules map[string]*Sentence) []string {
	switch v := item.(type) {
	case *ListReference:
		return []string{v.ListName}
	case *Sequence:
		return v.ListNames(expansionRules)
	case *Alternative:
		var names []string
		for _, sub := range v.Items {
			names = append(names, listNamesOf(sub, expansionRules)...)
		}
		return names
	case *Permutation:
		var names []string
		for _, sub := range v.Items {
			names = append(names, listNamesOf(sub, expansionRules)...)
		}
		return names
	case *RuleReference:
		if expansionRules == nil {
			return nil
		}
		if body, ok := expansionRules[v.RuleName]; ok {
			return listNamesOf(body.Root, expansionRules)
		}
	}
	return nil
}

// Alternative matches any one of its items. IsOptional implies one item is
// the empty TextChunk (i.e. the alternative came from a [optional] group).
type Alternative struct {
	Items      []Expression
	IsOptional bool
}

func (*Alternative) isExpression() {}

// Permutation requires all items to match, in any order, with mandatory
// single-space separators already injected between operands by the parser.
// The matcher treats a Permutation exactly like the Alternative of all of
// its orderings; Orderings() computes and memoizes that expansion.
type Permutation struct {
	Items         []Expression
	orderings     *Alternative
	orderingsOnce sync.Once
}

func (*Permutation) isExpression() {}

// Orderings returns (and memoizes) the Alternative over every ordering of
// this permutation's operands. Expressions are immutable after construction
// and the memo is built under a sync.Once, so caching here is safe across
// concurrent matches.
func (p *Permutation) Orderings() *Alternative {
	p.orderingsOnce.Do(func() {
		perms := permute(p.Items)
		items := make([]Expression, 0, len(perms))
		for _, perm := range perms {
			items = append(items, &Sequence{Items: perm})
		}
		p.orderings = &Alternative{Items: items}
	})
	return p.orderings
}

func permute(items []Expression) [][]Expression {
	if len(items) == 0 {
		return [][]Expression{{}}
	}
	var out [][]Expression
	for i := range items {
		rest := make([]Expression, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, sub := range permute(rest) {
			ordering := append([]Expression{items[i]}, sub...)
			out = append(out, ordering)
		}
	}
	return out
}

// ListReference is a {list_name} or {list_name:slot_name} reference.
type ListReference struct {
	ListName    string
	SlotName    string
	IsEndOfWord bool
}

func (*ListReference) isExpression() {}

// RuleReference is a <rule_name> reference to an expansion rule.
type RuleReference struct {
	RuleName string
}

func (*RuleReference) isExpression() {}

// Sentence is the top-level expression for a template, optionally carrying
// the original source text and a compiled pre-filter regex.
type Sentence struct {
	Root Expression
	// Text is the original, unparsed template text, kept only when requested.
	Text string
	HasText bool

	pattern         *regexp.Regexp
	patternDisabled bool
	listReferences  []*ListReference
}

// Compile builds (and memoizes) the pre-filter regex for this sentence. It
// returns false if the sentence is pattern-disabled (a ListReference sits
// inside an Alternative) or compilation otherwise fails.
func (s *Sentence) Compile(expansionRules map[string]*Sentence) bool {
	if s.patternDisabled {
		return false
	}
	if s.pattern != nil {
		return true
	}

	s.listReferences = nil
	var chunks []string
	s.compileExpression(s.Root, &chunks, expansionRules, false)
	if s.patternDisabled {
		return false
	}

	pat := "^" + joinStrings(chunks) + "$"
	re, err := regexp.Compile("(?i)" + relaxWhitespace(pat))
	if err != nil {
		s.patternDisabled = true
		return false
	}
	s.pattern = re
	return true
}

// Pattern returns the compiled pre-filter regex, if any (call Compile first).
func (s *Sentence) Pattern() *regexp.Regexp {
	return s.pattern
}

// PatternDisabled reports whether pre-filtering was disabled for this
// sentence (a ListReference sits inside an Alternative).
func (s *Sentence) PatternDisabled() bool {
	return s.patternDisabled
}

func (s *Sentence) compileExpression(exp Expression, chunks *[]string, rules map[string]*Sentence, inAlternative bool) {
	if s.patternDisabled {
		return
	}
	switch v := exp.(type) {
	case *TextChunk:
		if v.Text != "" {
			*chunks = append(*chunks, regexp.QuoteMeta(v.Text))
		}
	case *Sequence:
		for _, item := range v.Items {
			s.compileExpression(item, chunks, rules, inAlternative)
			if s.patternDisabled {
				return
			}
		}
	case *Alternative:
		if len(v.Items) == 0 {
			return
		}
		*chunks = append(*chunks, "(?:")
		for i, item := range v.Items {
			if i > 0 {
				*chunks = append(*chunks, "|")
			}
			s.compileExpression(item, chunks, rules, true)
			if s.patternDisabled {
				return
			}
		}
		*chunks = append(*chunks, ")")
	case *Permutation:
		// Emitted as the alternation of every ordering; a ListReference
		// inside a permutation therefore disables the pattern, as it does
		// inside any Alternative.
		alt := v.Orderings()
		*chunks = append(*chunks, "(?:")
		for i, item := range alt.Items {
			if i > 0 {
				*chunks = append(*chunks, "|")
			}
			s.compileExpression(item, chunks, rules, true)
			if s.patternDisabled {
				return
			}
		}
		*chunks = append(*chunks, ")")
	case *ListReference:
		if inAlternative {
			s.patternDisabled = true
			return
		}
		s.listReferences = append(s.listReferences, v)
		// Non-greedy since the whole pattern spans ^...$.
		*chunks = append(*chunks, "(.+?)")
	case *RuleReference:
		rule, ok := rules[v.RuleName]
		if !ok {
			s.patternDisabled = true
			return
		}
		s.compileExpression(rule.Root, chunks, rules, inAlternative)
	default:
		panic(fmt.Sprintf("unexpected expression type %T", exp))
	}
}

func joinStrings(parts []string) string {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return string(buf)
}

var whitespaceEscape = regexp.MustCompile(`\\? `)

// relaxWhitespace turns every literal space of the pattern (regexp.QuoteMeta
// leaves spaces unescaped; an escaped "\ " is accepted too) into a pattern
// that tolerates any number of spaces, since templates and utterances are
// whitespace-normalized independently.
func relaxWhitespace(pattern string) string {
	return whitespaceEscape.ReplaceAllString(pattern, `[ ]*`)
}
