// Package parser builds the expression tree from tokenizer.ParseChunk
// output: words become TextChunks, bracketed groups recurse, and
// alternative/permutation separators reshape the enclosing group.
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"intentrec/internal/model"
	"intentrec/internal/normalize"
	"intentrec/internal/tokenizer"
)

// Metadata carries debug context (source file, line, owning intent) into
// parse errors, for more useful messages when loading a large intents file.
type Metadata struct {
	FileName   string
	LineNumber int
	IntentName string
}

func parseErrorf(meta *Metadata, chunk *tokenizer.ParseChunk, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if meta != nil {
		msg = fmt.Sprintf("%s (file=%s line=%d intent=%s chunk=%q)", msg, meta.FileName, meta.LineNumber, meta.IntentName, chunkText(chunk))
	}
	return &model.ParseError{Text: chunkText(chunk), Reason: msg}
}

func chunkText(chunk *tokenizer.ParseChunk) string {
	if chunk == nil {
		return ""
	}
	return chunk.Text
}

// ParseSentence parses a single template into a Sentence. keepText controls
// whether the original source text is retained on the result.
func ParseSentence(text string, keepText bool, meta *Metadata) (*model.Sentence, error) {
	originalText := text
	text = strings.TrimSpace(text)
	text = "(" + text + ")"

	chunk, err := tokenizer.NextChunk(text, 0)
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, &model.ParseError{Text: text, Reason: "unexpected empty chunk"}
	}
	if chunk.Type != tokenizer.Group {
		return nil, parseErrorf(meta, chunk, "expected (group) in: %s", text)
	}
	if chunk.StartIndex != 0 {
		return nil, parseErrorf(meta, chunk, "expected (group) to start at index 0 in: %s", text)
	}
	if chunk.EndIndex != len([]rune(text)) {
		return nil, parseErrorf(meta, chunk, "expected chunk to end at index %d in: %s", chunk.EndIndex, text)
	}

	grp, err := parseExpression(chunk, true, meta)
	if err != nil {
		return nil, err
	}

	// Unpack a redundant single-item group, e.g. "((a b))" -> "(a b)".
	if seq, ok := grp.(*model.Sequence); ok && len(seq.Items) == 1 {
		if inner, ok := seq.Items[0].(*model.Sequence); ok {
			grp = inner
		}
	}

	sentence := &model.Sentence{Root: grp, HasText: keepText}
	if keepText {
		sentence.Text = originalText
	}
	return sentence, nil
}

func parseExpression(chunk *tokenizer.ParseChunk, isEndOfWord bool, meta *Metadata) (model.Expression, error) {
	switch chunk.Type {
	case tokenizer.Word:
		original := removeEscapes(chunk.Text)
		text := normalize.Text(original)
		return &model.TextChunk{Text: text, OriginalText: original}, nil

	case tokenizer.Group:
		return parseGroup(chunk, meta)

	case tokenizer.Opt:
		grp, err := parseGroup(chunk, meta)
		if err != nil {
			return nil, err
		}
		alt := ensureAlternative(grp)
		alt.IsOptional = true
		alt.Items = append(alt.Items, model.NewTextChunk(""))
		return alt, nil

	case tokenizer.List:
		text := removeEscapes(chunk.Text)
		listName := removeDelimiters(text, tokenizer.ListStart, tokenizer.ListEnd)
		return newListReference(listName, isEndOfWord), nil

	case tokenizer.Rule:
		text := removeEscapes(chunk.Text)
		ruleName := removeDelimiters(text, tokenizer.RuleStart, tokenizer.RuleEnd)
		return &model.RuleReference{RuleName: ruleName}, nil
	}

	return nil, parseErrorf(meta, chunk, "unexpected chunk type %s", chunk.Type)
}

// parseGroup parses the interior of a (group) or [optional] chunk, building
// a Sequence that may turn into an Alternative or Permutation when '|' or
// ';' separators are encountered.
func parseGroup(chunk *tokenizer.ParseChunk, meta *Metadata) (model.Expression, error) {
	var grpText string
	switch chunk.Type {
	case tokenizer.Group:
		grpText = removeDelimiters(chunk.Text, tokenizer.GroupStart, tokenizer.GroupEnd)
	case tokenizer.Opt:
		grpText = removeDelimiters(chunk.Text, tokenizer.OptStart, tokenizer.OptEnd)
	default:
		return nil, parseErrorf(meta, chunk, "expected group or optional chunk")
	}

	var grp model.Expression = &model.Sequence{}

	itemChunk, err := tokenizer.NextChunk(grpText, 0)
	if err != nil {
		return nil, err
	}
	lastGrpText := grpText

	for itemChunk != nil {
		switch itemChunk.Type {
		case tokenizer.Word, tokenizer.Group, tokenizer.Opt, tokenizer.List, tokenizer.Rule:
			runes := []rune(grpText)
			isEndOfWord := itemChunk.EndIndex < len(runes) && unicode.IsSpace(runes[itemChunk.EndIndex])

			item, err := parseExpression(itemChunk, isEndOfWord, meta)
			if err != nil {
				return nil, err
			}
			if err := appendItem(grp, item); err != nil {
				return nil, parseErrorf(meta, chunk, "%v", err)
			}

		case tokenizer.Alt:
			alt := ensureAlternative(grp)
			alt.Items = append(alt.Items, &model.Sequence{})
			grp = alt

		case tokenizer.Perm:
			perm := ensurePermutation(grp)
			perm.Items = append(perm.Items, &model.Sequence{})
			grp = perm

		default:
			return nil, parseErrorf(meta, chunk, "unexpected chunk type %s in group", itemChunk.Type)
		}

		runes := []rune(grpText)
		grpText = string(runes[itemChunk.EndIndex:])
		if grpText == lastGrpText {
			return nil, parseErrorf(meta, chunk, "parser made no progress")
		}

		itemChunk, err = tokenizer.NextChunk(grpText, 0)
		if err != nil {
			return nil, err
		}
		lastGrpText = grpText
	}

	if perm, ok := grp.(*model.Permutation); ok {
		addSpacesBetweenItems(perm)
	}

	return grp, nil
}

// appendItem adds item to the currently-open sequence of grp: grp's own
// item list if grp is still a plain Sequence, or the last branch's sequence
// if grp has become an Alternative or Permutation.
func appendItem(grp model.Expression, item model.Expression) error {
	switch g := grp.(type) {
	case *model.Sequence:
		g.Items = append(g.Items, item)
		return nil
	case *model.Alternative:
		seq, ok := lastSequence(g.Items)
		if !ok {
			return fmt.Errorf("alternative has no open sequence")
		}
		seq.Items = append(seq.Items, item)
		return nil
	case *model.Permutation:
		seq, ok := lastSequence(g.Items)
		if !ok {
			return fmt.Errorf("permutation has no open sequence")
		}
		seq.Items = append(seq.Items, item)
		return nil
	default:
		return fmt.Errorf("unexpected group type %T", grp)
	}
}

func lastSequence(items []model.Expression) (*model.Sequence, bool) {
	if len(items) == 0 {
		return nil, false
	}
	seq, ok := items[len(items)-1].(*model.Sequence)
	return seq, ok
}

func ensureAlternative(grp model.Expression) *model.Alternative {
	if alt, ok := grp.(*model.Alternative); ok {
		return alt
	}
	return &model.Alternative{Items: []model.Expression{grp}}
}

func ensurePermutation(grp model.Expression) *model.Permutation {
	if perm, ok := grp.(*model.Permutation); ok {
		return perm
	}
	return &model.Permutation{Items: []model.Expression{grp}}
}

// addSpacesBetweenItems pads each branch of a permutation with a leading and
// trailing space TextChunk, so operands joined in any order are separated by
// exactly one space.
func addSpacesBetweenItems(perm *model.Permutation) {
	for _, item := range perm.Items {
		seq, ok := item.(*model.Sequence)
		if !ok {
			continue
		}
		seq.Items = append([]model.Expression{model.NewTextChunk(" ")}, seq.Items...)
		seq.Items = append(seq.Items, model.NewTextChunk(" "))
	}
}

func newListReference(raw string, isEndOfWord bool) *model.ListReference {
	listName, slotName := raw, raw
	if idx := strings.Index(raw, ":"); idx >= 0 {
		listName = raw[:idx]
		slotName = raw[idx+1:]
	}
	return &model.ListReference{ListName: listName, SlotName: slotName, IsEndOfWord: isEndOfWord}
}

func removeDelimiters(text string, start, end rune) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return ""
	}
	return string(runes[1 : len(runes)-1])
}

func removeEscapes(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == tokenizer.EscapeChar && i+1 < len(runes) {
			i++
			b.WriteRune(runes[i])
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
