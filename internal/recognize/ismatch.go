package recognize

import (
	"intentrec/internal/matcher"
	"intentrec/internal/model"
	"intentrec/internal/normalize"
)

// IsMatch reports whether text matches sentence directly, independent of
// any Intents document or candidate pruning. It normalizes text the same
// way RecognizeAll does before delegating to the matcher.
func IsMatch(text string, sentence *model.Sentence, opts *Options) (bool, error) {
	if opts == nil {
		opts = &Options{}
	}

	normalized := normalize.Text(text)
	normalized = normalize.RemovePunctuation(normalized)
	if len(opts.SkipWords) > 0 {
		normalized = normalize.RemoveSkipWords(normalized, opts.SkipWords, false)
	}
	normalized += " "

	settings := &matcher.Settings{
		SlotLists:              opts.SlotLists,
		ExpansionRules:         opts.ExpansionRules,
		AllowUnmatchedEntities: opts.AllowUnmatchedEntities,
		Language:               opts.Language,
	}

	return matcher.IsMatch(settings, normalized, sentence, nil)
}
