package matcher

import (
	"strconv"
	"strings"

	"intentrec/internal/model"
	"intentrec/internal/wordnum"
)

func matchListReference(settings *Settings, context *Context, ref *model.ListReference) ([]*Context, error) {
	slotList, ok := settings.SlotLists[ref.ListName]
	if !ok {
		return nil, &model.MissingListError{ListName: ref.ListName}
	}

	switch list := slotList.(type) {
	case *model.TextSlotList:
		return matchTextSlotList(settings, context, ref, list)
	case *model.RangeSlotList:
		return matchRangeSlotList(settings, context, ref, list)
	case *model.WildcardSlotList:
		return matchWildcardSlotList(context, ref)
	default:
		return nil, &model.ValueError{Reason: "unexpected slot list type"}
	}
}

func matchWildcardSlotList(context *Context, ref *model.ListReference) ([]*Context, error) {
	if context.Text == "" {
		return nil, nil
	}

	entities := append(append([]model.MatchEntity{}, context.Entities...), model.MatchEntity{
		Name:           ref.SlotName,
		Value:          "",
		Text:           "",
		IsWildcard:     true,
		IsWildcardOpen: true,
	})

	next := context.clone()
	next.Entities = entities
	next.UnmatchedEntities = withClosedUnmatched(context.UnmatchedEntities)
	return []*Context{next}, nil
}

func matchTextSlotList(settings *Settings, context *Context, ref *model.ListReference, list *model.TextSlotList) ([]*Context, error) {
	if context.Text == "" {
		return nil, nil
	}

	var requiredContext, excludedContext map[string]any
	if context.IntentData != nil {
		requiredContext = context.IntentData.RequiresContext
		excludedContext = context.IntentData.ExcludesContext
	}

	var results []*Context
	hasMatches := false

	for _, value := range list.Values {
		if requiredContext != nil && !model.CheckRequiredContext(requiredContext, value.Context, true) {
			continue
		}
		if excludedContext != nil && !model.CheckExcludedContext(excludedContext, value.Context) {
			continue
		}
		if tc, ok := value.TextIn.(*model.TextChunk); ok && len(context.Text) < len(tc.Text) {
			continue
		}

		probe := context.clone()
		valueContexts, err := MatchExpression(settings, probe, value.TextIn)
		if err != nil {
			return nil, err
		}

		for _, vc := range valueContexts {
			hasMatches = true

			var valueWildcardText string
			hasValueWildcard := false
			if len(vc.Entities) > 0 && vc.Entities[len(vc.Entities)-1].IsWildcard {
				valueWildcardText = vc.Entities[len(vc.Entities)-1].Text
				hasValueWildcard = true
			}

			remainingText := context.Text
			if hasValueWildcard && strings.HasPrefix(context.Text, valueWildcardText) {
				remainingText = context.Text[len(valueWildcardText):]
			}

			var consumedText string
			if vc.Text != "" && len(vc.Text) <= len(remainingText) {
				consumedText = remainingText[:len(remainingText)-len(vc.Text)]
			} else {
				consumedText = remainingText
			}

			entities := append(append([]model.MatchEntity{}, vc.Entities...), model.MatchEntity{
				Name:     ref.SlotName,
				Value:    value.ValueOut,
				Text:     consumedText,
				Metadata: value.Metadata,
			})

			next := context.clone()
			next.Entities = entities
			next.Text = vc.Text
			if len(value.Context) > 0 {
				merged := make(map[string]any, len(context.IntentContext)+len(value.Context))
				for k, v := range context.IntentContext {
					merged[k] = v
				}
				for k, v := range value.Context {
					merged[k] = v
				}
				next.IntentContext = merged
			} else {
				next.IntentContext = vc.IntentContext
			}
			results = append(results, next)
		}
	}

	if !hasMatches && settings.AllowUnmatchedEntities {
		next := context.clone()
		next.UnmatchedEntities = append(append([]model.UnmatchedEntity{}, context.UnmatchedEntities...),
			&model.UnmatchedTextEntity{Name: ref.SlotName, Text: ""})
		next.Entities = withClosedWildcards(context.Entities)
		results = append(results, next)
	}

	return results, nil
}

func matchRangeSlotList(settings *Settings, context *Context, ref *model.ListReference, list *model.RangeSlotList) ([]*Context, error) {
	if context.Text == "" {
		return nil, nil
	}

	wildcard := context.GetOpenWildcard()

	var numberMatches [][]int // each entry: [matchStart, matchEnd, numStart, numEnd] indices into context.Text
	if wildcard == nil {
		if loc := numberStart.FindStringSubmatchIndex(context.Text); loc != nil {
			numberMatches = append(numberMatches, loc)
		}
	} else {
		numberMatches = numberAnywhere.FindAllStringSubmatchIndex(context.Text, -1)
	}

	digitsMatch := false
	var results []*Context

	if list.Digits {
		for _, loc := range numberMatches {
			numberText := context.Text[loc[2]:loc[3]]
			n, err := strconv.Atoi(strings.TrimSpace(numberText))
			if err != nil {
				continue
			}

			if !list.InRange(n) {
				if settings.AllowUnmatchedEntities && wildcard == nil {
					next := context.clone()
					next.Text = context.Text[len(numberText):]
					next.UnmatchedEntities = append(append([]model.UnmatchedEntity{}, context.UnmatchedEntities...),
						&model.UnmatchedRangeEntity{Name: ref.SlotName, Value: float64(n)})
					results = append(results, next)
				}
				continue
			}

			digitsMatch = true
			rangeValue := list.Apply(n)
			entities := append(append([]model.MatchEntity{}, context.Entities...), model.MatchEntity{
				Name:  ref.SlotName,
				Value: rangeValue,
				Text:  context.Text[loc[0]:loc[1]],
			})

			next := context.clone()
			next.Entities = entities
			if wildcard == nil {
				next.Text = context.Text[loc[1]:]
			} else {
				wildcard.Text += context.Text[:loc[1]-1]
				wildcard.Value = wildcard.Text
				next.Text = context.Text[loc[1]:]
				next.Entities = withClosedWildcards(entities)
			}
			results = append(results, next)
		}
	}

	wordsMatch := false
	if list.Words && !digitsMatch && len(numberMatches) == 0 {
		language := list.WordsLanguage
		if language == "" {
			language = settings.Language
		}
		if language != "" {
			trie := wordnum.BuildRangeTrie(language, list.Start, list.Stop, list.Step, list.Multiplier)
			for _, found := range trie.Find(context.Text, true) {
				numberStartPos := found.EndPos - len([]rune(found.Text))
				if wildcard == nil && numberStartPos > 0 {
					continue
				}

				rangeValue, _ := found.Value.(float64)
				entities := append(append([]model.MatchEntity{}, context.Entities...), model.MatchEntity{
					Name:  ref.SlotName,
					Value: rangeValue,
					Text:  found.Text,
				})

				runes := []rune(context.Text)
				if wildcard == nil {
					// Re-enter TextChunk matching against the unsliced text
					// (number_text sits at the front, numberStartPos == 0);
					// the chunk match itself advances past it.
					sub, err := MatchExpression(settings, contextWith(context, entities, context.Text), model.NewTextChunk(found.Text))
					if err != nil {
						return nil, err
					}
					results = append(results, sub...)
				} else {
					wildcard.Text += string(runes[:numberStartPos])
					wildcard.Value = wildcard.Text
					sub, err := MatchExpression(settings, contextWith(context, withClosedWildcards(entities), string(runes[numberStartPos:])), model.NewTextChunk(found.Text))
					if err != nil {
						return nil, err
					}
					results = append(results, sub...)
				}
				wordsMatch = true
			}
		}
	}

	if !digitsMatch && !wordsMatch && settings.AllowUnmatchedEntities {
		next := context.clone()
		next.UnmatchedEntities = append(append([]model.UnmatchedEntity{}, context.UnmatchedEntities...),
			&model.UnmatchedTextEntity{Name: ref.SlotName, Text: ""})
		next.Entities = withClosedWildcards(context.Entities)
		results = append(results, next)
	}

	return results, nil
}

func contextWith(context *Context, entities []model.MatchEntity, text string) *Context {
	next := context.clone()
	next.Entities = entities
	next.Text = text
	return next
}
