package matcher

import (
	"regexp"
	"strings"

	"intentrec/internal/model"
)

var (
	numberStart    = regexp.MustCompile(`^(\s*-?[0-9]+)`)
	numberAnywhere = regexp.MustCompile(`(\s*-?[0-9]+)`)
	breakWordsTrim = strings.NewReplacer("-", " ", "_", " ")
)

// MatchExpression yields every MatchContext reachable by walking expression
// against context, threading settings through recursive calls (list/rule
// lookups, whitespace/unmatched-entity behavior).
func MatchExpression(settings *Settings, context *Context, expression model.Expression) ([]*Context, error) {
	switch expr := expression.(type) {
	case *model.TextChunk:
		return matchTextChunk(settings, context, expr)
	case *model.Sequence:
		return matchSequence(settings, context, expr)
	case *model.Alternative:
		return matchAlternative(settings, context, expr)
	case *model.Permutation:
		return MatchExpression(settings, context, expr.Orderings())
	case *model.ListReference:
		return matchListReference(settings, context, expr)
	case *model.RuleReference:
		rule, ok := settings.ExpansionRules[expr.RuleName]
		if !ok {
			return nil, &model.MissingRuleError{RuleName: expr.RuleName}
		}
		return MatchExpression(settings, context, rule.Root)
	default:
		return nil, &model.ParseError{Reason: "unexpected expression type in matcher"}
	}
}

func matchSequence(settings *Settings, context *Context, seq *model.Sequence) ([]*Context, error) {
	if len(seq.Items) == 0 {
		return []*Context{context}, nil
	}

	contexts := []*Context{context}
	for _, item := range seq.Items {
		var next []*Context
		for _, c := range contexts {
			results, err := MatchExpression(settings, c, item)
			if err != nil {
				return nil, err
			}
			next = append(next, results...)
		}
		contexts = next
		if len(contexts) == 0 {
			break
		}
	}
	return contexts, nil
}

func matchAlternative(settings *Settings, context *Context, alt *model.Alternative) ([]*Context, error) {
	var out []*Context
	for _, item := range alt.Items {
		results, err := MatchExpression(settings, context, item)
		if err != nil {
			return nil, err
		}
		out = append(out, results...)
	}
	return out, nil
}

func matchTextChunk(settings *Settings, context *Context, chunk *model.TextChunk) ([]*Context, error) {
	var chunkText, contextText string
	if settings.IgnoreWhitespace {
		chunkText = stripWhitespace(chunk.Text)
		contextText = stripWhitespace(context.Text)
	} else {
		chunkText = chunk.Text
		contextText = context.Text
		if context.IsStartOfWord {
			chunkText = strings.TrimLeft(chunkText, " ")
			contextText = strings.TrimLeft(contextText, " ")
		}
	}

	isContextTextEmpty := strings.TrimSpace(contextText) == ""

	if chunk.IsEmpty() {
		return []*Context{context}, nil
	}

	wildcard := context.GetOpenWildcard()
	if wildcard != nil && strings.TrimSpace(wildcard.Text) == "" {
		return matchOpenWildcardChunk(settings, context, chunk, wildcard, chunkText, contextText)
	}

	if endPos, ok := matchStart(contextText, chunkText); ok {
		remaining := contextText[endPos:]
		chunkTrimmed := strings.TrimSpace(chunkText)
		isChunkNonEmpty := chunkTrimmed != ""

		textChunksMatched := context.TextChunksMatched
		if isChunkNonEmpty {
			textChunksMatched += len(chunkTrimmed)
		}

		next := context.clone()
		next.Text = remaining
		next.IsStartOfWord = strings.HasSuffix(chunk.Text, " ")
		next.TextChunksMatched = textChunksMatched
		if isChunkNonEmpty {
			next.Entities = withClosedWildcards(context.Entities)
			next.UnmatchedEntities = withClosedUnmatched(context.UnmatchedEntities)
		}
		return []*Context{next}, nil
	}

	if isContextTextEmpty && strings.TrimSpace(chunkText) == "" {
		return []*Context{context}, nil
	}

	// Try breaking words apart: "turn-on" should still match "turn on".
	brokenText := breakWordsTrim.Replace(contextText)
	if endPos, ok := matchStart(brokenText, chunkText); ok {
		remaining := brokenText[endPos:]
		isChunkNonEmpty := strings.TrimSpace(chunkText) != ""

		next := context.clone()
		next.Text = remaining
		if isChunkNonEmpty {
			next.Entities = withClosedWildcards(context.Entities)
			next.UnmatchedEntities = withClosedUnmatched(context.UnmatchedEntities)
		}
		return []*Context{next}, nil
	}

	if wildcard != nil {
		skipIdx := matchFirst(contextText, chunkText, 0)
		if skipIdx >= 0 {
			wildcardText := contextText[:skipIdx]
			if wildcardText != "" {
				entities := make([]model.MatchEntity, 0, len(context.Entities))
				for _, e := range context.Entities {
					if e.Name != wildcard.Name {
						entities = append(entities, e)
					}
				}
				entities = append(entities, model.MatchEntity{
					Name:       wildcard.Name,
					Value:      wildcardText,
					Text:       wildcardText,
					IsWildcard: true,
				})
				next := context.clone()
				next.Text = context.Text[skipIdx+len(chunkText):]
				next.IsStartOfWord = true
				next.Entities = entities
				return []*Context{next}, nil
			}
		}
		return nil, nil
	}

	if settings.AllowUnmatchedEntities {
		if unmatched := context.GetOpenEntity(); unmatched != nil {
			return matchUnmatchedEntityChunk(context, unmatched, chunkText)
		}
	}

	return nil, nil
}

// matchOpenWildcardChunk implements the branch where the most recent entity
// is an empty, still-open wildcard: the wildcard must consume text up to the
// next occurrence of chunkText, enumerating every possible split point.
func matchOpenWildcardChunk(settings *Settings, context *Context, chunk *model.TextChunk, wildcard *model.MatchEntity, chunkText, contextText string) ([]*Context, error) {
	if strings.TrimSpace(chunkText) == "" {
		next := context.clone()
		next.Text = contextText
		next.IsStartOfWord = true
		return []*Context{next}, nil
	}

	startIdx := matchFirst(contextText, chunkText, 0)
	if startIdx < 0 {
		return nil, nil
	}
	if startIdx == 0 {
		// Degenerate case: the next template word duplicates what's already
		// at the front of the text, so advance one rune and look again.
		startIdx = matchFirst(contextText, chunkText, 1)
		if startIdx < 0 {
			return nil, nil
		}
	}

	entitiesWithoutWildcard := context.Entities[:len(context.Entities)-1]

	var results []*Context
	for startIdx > 0 {
		wildcardText := contextText[:startIdx]

		entities := make([]model.MatchEntity, len(entitiesWithoutWildcard), len(entitiesWithoutWildcard)+1)
		copy(entities, entitiesWithoutWildcard)
		entities = append(entities, model.MatchEntity{
			Name:       wildcard.Name,
			Text:       wildcardText,
			Value:      wildcardText,
			IsWildcard: true,
		})

		branch := context.clone()
		branch.Text = contextText[startIdx:]
		branch.IsStartOfWord = true
		branch.Entities = entities

		// Re-enter TextChunk matching now that the wildcard has a
		// (tentative) value and is no longer open; the remaining,
		// non-wildcard branches of matchTextChunk get a chance to match.
		sub, err := matchTextChunk(settings, branch, chunk)
		if err != nil {
			return nil, err
		}
		results = append(results, sub...)

		startIdx = matchFirst(contextText, chunkText, startIdx+1)
	}

	return results, nil
}

func matchUnmatchedEntityChunk(context *Context, unmatched *model.UnmatchedTextEntity, chunkText string) ([]*Context, error) {
	trimmed := strings.TrimSpace(chunkText)
	if trimmed == "" {
		return nil, nil
	}
	pattern := `\s` + regexp.QuoteMeta(trimmed) + `(\s|$)`
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, nil
	}
	loc := re.FindStringIndex(context.Text)
	if loc == nil {
		return nil, nil
	}

	unmatchedText := unmatched.Text + context.Text[:loc[0]+1]
	if unmatchedText == "" {
		return nil, nil
	}

	unmatchedEntities := make([]model.UnmatchedEntity, 0, len(context.UnmatchedEntities))
	for _, u := range context.UnmatchedEntities {
		if u.EntityName() != unmatched.Name {
			unmatchedEntities = append(unmatchedEntities, u)
		}
	}
	unmatchedEntities = append(unmatchedEntities, &model.UnmatchedTextEntity{
		Name: unmatched.Name,
		Text: unmatchedText,
	})

	next := context.clone()
	next.Text = context.Text[loc[1]:]
	next.IsStartOfWord = true
	next.UnmatchedEntities = unmatchedEntities
	return []*Context{next}, nil
}

// matchStart reports the end offset of chunkText as a case-insensitive
// prefix of text.
func matchStart(text, chunkText string) (int, bool) {
	if len(chunkText) == 0 {
		return 0, true
	}
	if len(text) < len(chunkText) {
		return 0, false
	}
	if strings.EqualFold(text[:len(chunkText)], chunkText) {
		return len(chunkText), true
	}
	return 0, false
}

// matchFirst returns the index of the first case-insensitive occurrence of
// sub in text at or after start, or -1.
func matchFirst(text, sub string, start int) int {
	if start > len(text) {
		return -1
	}
	idx := strings.Index(strings.ToLower(text[start:]), strings.ToLower(sub))
	if idx < 0 {
		return -1
	}
	return start + idx
}
