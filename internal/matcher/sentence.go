package matcher

import "intentrec/internal/model"

// MatchSentenceCandidates runs the matcher over text against sentence,
// returning every resulting Context without filtering by IsMatch(). Callers
// that need to close a trailing open wildcard or unmatched entity first
// (the recognizer façade) should use this instead of MatchSentence.
// intentData (may be nil) supplies the requires/excludes context a
// TextSlotList match consults.
func MatchSentenceCandidates(settings *Settings, text string, sentence *model.Sentence, intentData *model.IntentData) ([]*Context, error) {
	initial := &Context{
		Text:           text,
		IsStartOfWord:  true,
		IntentContext:  map[string]any{},
		IntentSentence: sentence,
		IntentData:     intentData,
	}
	return MatchExpression(settings, initial, sentence.Root)
}

// MatchSentence runs the matcher over text against sentence, returning every
// resulting Context whose IsMatch() is true. intentData (may be nil) supplies
// the requires/excludes context a TextSlotList match consults.
func MatchSentence(settings *Settings, text string, sentence *model.Sentence, intentData *model.IntentData) ([]*Context, error) {
	candidates, err := MatchSentenceCandidates(settings, text, sentence, intentData)
	if err != nil {
		return nil, err
	}

	var matches []*Context
	for _, c := range candidates {
		if c.IsMatch() {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// IsMatch reports whether text matches sentence at all. It runs
// MatchSentence, so every possibility is enumerated before answering.
func IsMatch(settings *Settings, text string, sentence *model.Sentence, intentData *model.IntentData) (bool, error) {
	matches, err := MatchSentence(settings, text, sentence, intentData)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}
