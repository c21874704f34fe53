package pipeline

import "context"

// KeywordStage drops candidates whose intent-data declares required_keywords
// that share nothing with the utterance's keyword set. An intent-data block
// with no required keywords always survives this stage.
type KeywordStage struct{}

func (KeywordStage) ID() string    { return "keyword" }
func (KeywordStage) Priority() int { return 100 }

func (KeywordStage) Apply(_ context.Context, pc *PruneContext) (Decision, error) {
	if len(pc.Keywords) == 0 {
		return keepAll(pc, "no keywords to filter on")
	}

	survivors := pc.Candidates[:0]
	for _, c := range pc.Candidates {
		if len(c.Data.RequiredKeywords) == 0 || anyKeywordPresent(c.Data.RequiredKeywords, pc.Keywords) {
			survivors = append(survivors, c)
		}
	}
	pc.Candidates = survivors
	return Decision{Reason: "required_keywords filter applied"}, nil
}

func anyKeywordPresent(required []string, keywords map[string]struct{}) bool {
	for _, kw := range required {
		if _, ok := keywords[kw]; ok {
			return true
		}
	}
	return false
}

func keepAll(pc *PruneContext, reason string) (Decision, error) {
	_ = pc
	return Decision{Reason: reason}, nil
}
