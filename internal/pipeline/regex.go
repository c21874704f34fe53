package pipeline

import "context"

// RegexPrefilterStage narrows each surviving candidate's Sentences to those
// whose compiled pre-filter regex accepts the utterance. It must run after
// Sentences has been populated (the caller parses IntentData.Sentences()
// for survivors of KeywordStage/ContextStage before invoking this stage). A
// candidate with zero surviving sentences is dropped entirely.
//
// Disabled whenever unmatched entities are allowed, since the regex
// pre-filter only approximates slot content and would reject inputs the
// matcher's unmatched-entity fallback is meant to accept.
type RegexPrefilterStage struct {
	Enabled bool
}

func (RegexPrefilterStage) ID() string    { return "regex-prefilter" }
func (RegexPrefilterStage) Priority() int { return 50 }

func (s RegexPrefilterStage) Apply(_ context.Context, pc *PruneContext) (Decision, error) {
	if !s.Enabled || pc.AllowUnmatchedEntities {
		return Decision{Reason: "regex pre-filter disabled"}, nil
	}

	survivors := pc.Candidates[:0]
	for _, c := range pc.Candidates {
		kept := c.Sentences[:0]
		for _, sentence := range c.Sentences {
			if sentence.Compile(pc.ExpansionRules) {
				if sentence.Pattern().MatchString(pc.Text) {
					kept = append(kept, sentence)
				}
				continue
			}
			// Pattern-disabled sentences (a ListReference inside an
			// Alternative) must still be tried with the matcher.
			kept = append(kept, sentence)
		}
		if len(kept) > 0 {
			c.Sentences = kept
			survivors = append(survivors, c)
		}
	}
	pc.Candidates = survivors
	return Decision{Reason: "regex pre-filter applied"}, nil
}
