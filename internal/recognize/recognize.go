package recognize

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"intentrec/internal/matcher"
	"intentrec/internal/model"
	"intentrec/internal/normalize"
	"intentrec/internal/pipeline"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

func removeAllWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, "")
}

// RecognizeAll normalizes text, prunes candidate intent-data blocks, runs
// the matcher over every surviving (intent-data, sentence) pair, and yields
// every resulting Result.
func RecognizeAll(text string, intents *model.Intents, opts *Options) ([]*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	normalized := normalize.Text(text)
	normalized = normalize.RemovePunctuation(normalized)

	skipWords := append(append([]string{}, opts.SkipWords...), intents.SkipWords...)
	if len(skipWords) > 0 {
		normalized = normalize.RemoveSkipWords(normalized, skipWords, intents.Settings.IgnoreWhitespace)
	}

	globalSlotLists := mergeMaps(intents.SlotLists, opts.SlotLists)
	globalRules := mergeMaps(intents.ExpansionRules, opts.ExpansionRules)

	pc := &pipeline.PruneContext{
		Text:                   normalized,
		Keywords:               keywordSet(normalized),
		IntentContext:          opts.IntentContext,
		AllowUnmatchedEntities: opts.AllowUnmatchedEntities,
		ExpansionRules:         globalRules,
		Candidates:             buildCandidates(intents),
	}

	candidates, err := pruneCandidates(intents, pc)
	if err != nil {
		return nil, err
	}

	matchText := normalized
	if intents.Settings.IgnoreWhitespace {
		matchText = removeAllWhitespace(matchText)
	} else {
		matchText += " "
	}

	language := opts.Language
	if language == "" {
		language = intents.Language
	}

	var results []*Result
	for _, cand := range candidates {
		slotLists := mergeMaps(globalSlotLists, cand.Data.SlotLists)
		rules := mergeMaps(globalRules, cand.Data.ExpansionRules)

		settings := &matcher.Settings{
			SlotLists:              slotLists,
			ExpansionRules:         rules,
			IgnoreWhitespace:       intents.Settings.IgnoreWhitespace,
			AllowUnmatchedEntities: opts.AllowUnmatchedEntities,
			Language:               language,
		}

		for _, sentence := range cand.Sentences {
			contexts, err := matcher.MatchSentenceCandidates(settings, matchText, sentence, cand.Data)
			if err != nil {
				return nil, err
			}

			for _, c := range contexts {
				c = c.CloseTrailing()
				if !c.IsMatch() {
					continue
				}

				ok, extraEntities, sentinels := enforceContext(cand.Data, c.IntentContext, opts.AllowUnmatchedEntities)
				if !ok {
					continue
				}

				entities := append(append([]model.MatchEntity{}, c.Entities...), extraEntities...)
				for i := range entities {
					if entities[i].IsWildcard {
						entities[i].Text = strings.TrimSpace(entities[i].Text)
						if s, ok := entities[i].Value.(string); ok {
							entities[i].Value = strings.TrimSpace(s)
						}
					}
				}
				entities = injectStaticSlots(entities, cand.Data.Slots)

				unmatched := append(append([]model.UnmatchedEntity{}, c.UnmatchedEntities...), sentinels...)

				response := opts.defaultResponse()
				if cand.Data.Response != nil {
					response = *cand.Data.Response
				}

				results = append(results, &Result{
					TraceID:           uuid.NewString(),
					IntentName:        cand.IntentName,
					Intent:            cand.Intent,
					IntentData:        cand.Data,
					Entities:          entities,
					EntitiesByName:    entitiesByName(entities),
					Response:          response,
					IntentContext:     c.IntentContext,
					UnmatchedEntities: unmatched,
					TextChunksMatched: c.TextChunksMatched,
					Sentence:          sentence,
					Metadata:          cand.Data.Metadata,
				})
			}
		}
	}

	return results, nil
}

// Recognize returns the first yielded result, or nil if nothing matched.
func Recognize(text string, intents *model.Intents, opts *Options) (*Result, error) {
	results, err := RecognizeAll(text, intents, opts)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
