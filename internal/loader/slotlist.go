package loader

import (
	"fmt"

	"intentrec/internal/model"
	"intentrec/internal/normalize"
	"intentrec/internal/parser"
)

func buildSlotList(name string, raw rawSlotList, meta *parser.Metadata) (model.SlotList, error) {
	declared := 0
	if len(raw.Values) > 0 {
		declared++
	}
	if raw.Range != nil {
		declared++
	}
	if raw.Wildcard {
		declared++
	}
	if declared == 0 {
		return nil, &model.ValueError{Reason: fmt.Sprintf("list %q declares none of values, range, or wildcard", name)}
	}
	if declared > 1 {
		return nil, &model.ValueError{Reason: fmt.Sprintf("list %q declares more than one of values, range, or wildcard", name)}
	}

	if raw.Wildcard {
		return &model.WildcardSlotList{}, nil
	}

	if raw.Range != nil {
		return buildRangeSlotList(name, raw.Range)
	}

	values := make([]model.TextSlotValue, 0, len(raw.Values))
	for _, v := range raw.Values {
		textIn, err := parseTextIn(v.In, meta)
		if err != nil {
			return nil, err
		}
		values = append(values, model.TextSlotValue{
			TextIn:   textIn,
			ValueOut: v.Out,
			Context:  v.Context,
			Metadata: v.Metadata,
		})
	}
	return &model.TextSlotList{Values: values}, nil
}

// parseTextIn builds the Expression a TextSlotValue is matched against: a
// plain normalized TextChunk, or a fully parsed template when the value's
// text contains template syntax.
func parseTextIn(text string, meta *parser.Metadata) (model.Expression, error) {
	if !isTemplate(text) {
		return model.NewTextChunk(normalize.Text(text)), nil
	}
	sentence, err := parser.ParseSentence(text, false, meta)
	if err != nil {
		return nil, err
	}
	return sentence.Root, nil
}

func buildRangeSlotList(name string, raw *rawRange) (*model.RangeSlotList, error) {
	step := raw.Step
	if step == 0 {
		step = 1
	}
	if step < 0 {
		return nil, &model.ValueError{Reason: fmt.Sprintf("list %q has a non-positive step", name)}
	}
	if raw.From >= raw.To {
		return nil, &model.ValueError{Reason: fmt.Sprintf("list %q has start >= stop", name)}
	}

	rangeType := model.RangeTypeNumber
	switch raw.Type {
	case "", "number":
		rangeType = model.RangeTypeNumber
	case "percentage":
		rangeType = model.RangeTypePercentage
	case "temperature":
		rangeType = model.RangeTypeTemperature
	default:
		return nil, &model.ValueError{Reason: fmt.Sprintf("list %q has an unrecognized range type %q", name, raw.Type)}
	}

	fractionType := model.FractionType(raw.FractionType)
	switch fractionType {
	case model.FractionNone, model.FractionHalves, model.FractionTenths:
	default:
		return nil, &model.ValueError{Reason: fmt.Sprintf("list %q has an unrecognized fraction_type %q", name, raw.FractionType)}
	}

	digits := raw.Digits
	words := raw.Words
	if !digits && !words {
		// Neither explicitly set: default to digit recognition, matching
		// the common case of an intents file that only declares from/to.
		digits = true
	}

	return &model.RangeSlotList{
		Start:         raw.From,
		Stop:          raw.To,
		Step:          step,
		Type:          rangeType,
		Digits:        digits,
		Words:         words,
		WordsLanguage: raw.WordsLanguage,
		Multiplier:    raw.Multiplier,
		FractionType:  fractionType,
	}, nil
}
