// Package matcher implements the non-deterministic string matcher: given a
// compiled expression tree and remaining input text, it enumerates every
// MatchContext that could result from walking the tree against the text.
package matcher

import (
	"regexp"
	"strings"

	"intentrec/internal/model"
)

// Settings carries the slot lists, expansion rules, and behavioral toggles
// available while matching one sentence.
type Settings struct {
	SlotLists              map[string]model.SlotList
	ExpansionRules         map[string]*model.Sentence
	IgnoreWhitespace       bool
	AllowUnmatchedEntities bool
	Language               string
}

// Context is the transient state threaded through MatchExpression.
type Context struct {
	// Text is the input remaining to be matched.
	Text string

	Entities      []model.MatchEntity
	IntentContext map[string]any

	// IsStartOfWord is true when Text begins a new word (used to trim
	// leading whitespace from chunk comparisons without losing meaning).
	IsStartOfWord bool

	UnmatchedEntities []model.UnmatchedEntity

	// TextChunksMatched sums the whitespace-trimmed length (interior spaces
	// included) of every non-empty TextChunk matched as a direct prefix so
	// far; chunks matched only after the hyphen/underscore word-break
	// fallback are not counted.
	TextChunksMatched int

	IntentSentence *model.Sentence
	IntentData     *model.IntentData
}

// IsMatch reports whether context represents a complete, successful match:
// no meaningful text remains, no wildcard has empty text, and no unmatched
// text entity is still empty.
func (c *Context) IsMatch() bool {
	remaining := stripPunctuation(c.Text)
	remaining = strings.TrimSpace(remaining)
	if remaining != "" {
		return false
	}

	for _, e := range c.Entities {
		if e.IsWildcard && strings.TrimSpace(e.Text) == "" {
			return false
		}
	}

	for _, u := range c.UnmatchedEntities {
		if te, ok := u.(*model.UnmatchedTextEntity); ok && strings.TrimSpace(te.Text) == "" {
			return false
		}
	}

	return true
}

// GetOpenWildcard returns the last entity if it is a still-open wildcard.
func (c *Context) GetOpenWildcard() *model.MatchEntity {
	if len(c.Entities) == 0 {
		return nil
	}
	last := &c.Entities[len(c.Entities)-1]
	if last.IsWildcard && last.IsWildcardOpen {
		return last
	}
	return nil
}

// GetOpenEntity returns the last unmatched entity if it is a still-open
// UnmatchedTextEntity.
func (c *Context) GetOpenEntity() *model.UnmatchedTextEntity {
	if len(c.UnmatchedEntities) == 0 {
		return nil
	}
	last, ok := c.UnmatchedEntities[len(c.UnmatchedEntities)-1].(*model.UnmatchedTextEntity)
	if ok && last.IsOpen {
		return last
	}
	return nil
}

// clone returns a shallow copy of c, ready to be mutated independently (new
// Text/Entities/etc. assigned by the caller) without aliasing the slices
// that aren't being changed.
func (c *Context) clone() *Context {
	cp := *c
	return &cp
}

// CloseTrailing absorbs any text remaining at the end of a match into a
// still-open wildcard entity or unmatched text entity, the way the
// recognizer façade does for a sentence that ends mid-wildcard (nothing
// after the wildcard in the template to trigger the usual open-wildcard
// closing logic in matchTextChunk). It is a no-op when nothing is open.
func (c *Context) CloseTrailing() *Context {
	next := c.clone()

	if wildcard := next.GetOpenWildcard(); wildcard != nil {
		trailing := strings.TrimSpace(next.Text)
		entities := make([]model.MatchEntity, len(next.Entities))
		copy(entities, next.Entities)
		last := &entities[len(entities)-1]
		last.Text += trailing
		last.Value = last.Text
		next.Entities = withClosedWildcards(entities)
		next.Text = ""
	}

	if entity := next.GetOpenEntity(); entity != nil {
		trailing := strings.TrimSpace(next.Text)
		unmatched := make([]model.UnmatchedEntity, len(next.UnmatchedEntities))
		copy(unmatched, next.UnmatchedEntities)
		closed := *entity
		closed.Text += trailing
		closed.IsOpen = false
		unmatched[len(unmatched)-1] = &closed
		next.UnmatchedEntities = unmatched
		next.Text = ""
	}

	return next
}

func withClosedWildcards(entities []model.MatchEntity) []model.MatchEntity {
	out := make([]model.MatchEntity, len(entities))
	copy(out, entities)
	for i := range out {
		out[i].IsWildcardOpen = false
	}
	return out
}

func withClosedUnmatched(unmatched []model.UnmatchedEntity) []model.UnmatchedEntity {
	out := make([]model.UnmatchedEntity, len(unmatched))
	copy(out, unmatched)
	for i, u := range out {
		if te, ok := u.(*model.UnmatchedTextEntity); ok {
			closed := *te
			closed.IsOpen = false
			out[i] = &closed
		}
	}
	return out
}

var punctuationAll = regexp.MustCompile(`[.。,，?¿？؟!¡！;；:：’]`)

func stripPunctuation(s string) string {
	return punctuationAll.ReplaceAllString(s, "")
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func stripWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, "")
}
