// Package sampler enumerates the concrete strings a parsed template can
// produce. It shares the expression tree and rule-resolution rules with the
// matcher but runs independently of it; wildcards are not sampled.
package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"intentrec/internal/model"
	"intentrec/internal/wordnum"
)

// Settings mirrors matcher.Settings for the subset the sampler needs: slot
// lists, expansion rules, an optional language for number words, and
// skip_optionals to omit the non-empty branch of every optional.
type Settings struct {
	SlotLists      map[string]model.SlotList
	ExpansionRules map[string]*model.Sentence
	Language       string
	SkipOptionals  bool
}

// Sample enumerates every concrete string sentence can produce.
func Sample(settings *Settings, sentence *model.Sentence) ([]string, error) {
	return sampleExpression(settings, sentence.Root)
}

func sampleExpression(settings *Settings, expr model.Expression) ([]string, error) {
	switch e := expr.(type) {
	case *model.TextChunk:
		return []string{e.Text}, nil

	case *model.Sequence:
		return sampleSequence(settings, e.Items)

	case *model.Alternative:
		if e.IsOptional && settings.SkipOptionals {
			// The last branch is always the injected empty TextChunk; skip
			// every non-empty branch.
			return []string{""}, nil
		}
		var out []string
		for _, item := range e.Items {
			samples, err := sampleExpression(settings, item)
			if err != nil {
				return nil, err
			}
			out = append(out, samples...)
		}
		return dedupe(out), nil

	case *model.Permutation:
		orderings := e.Orderings()
		return sampleExpression(settings, orderings)

	case *model.ListReference:
		return sampleListReference(settings, e)

	case *model.RuleReference:
		rule, ok := settings.ExpansionRules[e.RuleName]
		if !ok {
			return nil, &model.MissingRuleError{RuleName: e.RuleName}
		}
		return sampleExpression(settings, rule.Root)

	default:
		return nil, fmt.Errorf("unexpected expression type %T", expr)
	}
}

// sampleSequence produces the Cartesian product of each item's samples,
// concatenated in order.
func sampleSequence(settings *Settings, items []model.Expression) ([]string, error) {
	results := []string{""}
	for _, item := range items {
		samples, err := sampleExpression(settings, item)
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			return nil, nil
		}
		var next []string
		for _, prefix := range results {
			for _, s := range samples {
				next = append(next, prefix+s)
			}
		}
		results = next
	}
	return dedupe(results), nil
}

func sampleListReference(settings *Settings, ref *model.ListReference) ([]string, error) {
	slotList, ok := settings.SlotLists[ref.ListName]
	if !ok {
		return nil, &model.MissingListError{ListName: ref.ListName}
	}

	switch list := slotList.(type) {
	case *model.TextSlotList:
		var out []string
		for _, value := range list.Values {
			samples, err := sampleExpression(settings, value.TextIn)
			if err != nil {
				return nil, err
			}
			out = append(out, samples...)
		}
		return dedupe(out), nil

	case *model.RangeSlotList:
		return sampleRangeSlotList(settings, list)

	case *model.WildcardSlotList:
		// Not sampled: a wildcard has no finite set of representative text.
		return nil, nil

	default:
		return nil, fmt.Errorf("unexpected slot list type %T", slotList)
	}
}

func sampleRangeSlotList(settings *Settings, list *model.RangeSlotList) ([]string, error) {
	var out []string
	for _, n := range list.Values() {
		out = append(out, applyFraction(strconv.Itoa(n), list.FractionType)...)

		if list.Words {
			language := list.WordsLanguage
			if language == "" {
				language = settings.Language
			}
			if language != "" {
				engine := wordnum.ForLanguage(language)
				out = append(out, engine.Format(n)...)
			}
		}
	}
	return dedupe(out), nil
}

// applyFraction expands a whole-number string into its fractional forms:
// halves -> {n, n.5}, tenths -> {n, n.1 ... n.9}.
func applyFraction(whole string, fractionType model.FractionType) []string {
	switch fractionType {
	case model.FractionHalves:
		return []string{whole, whole + ".5"}
	case model.FractionTenths:
		out := make([]string, 0, 10)
		out = append(out, whole)
		for d := 1; d <= 9; d++ {
			out = append(out, fmt.Sprintf("%s.%d", whole, d))
		}
		return out
	default:
		return []string{whole}
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Normalize collapses whitespace in a sampled string the same way the
// matcher's input normalization would, so comparisons against
// normalize.Text(template) are meaningful.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
