package recognize

import (
	"context"
	"strings"

	"intentrec/internal/model"
	"intentrec/internal/pipeline"
)

// keywordSet splits normalized text on whitespace into a set, for the
// required_keywords pruning stage.
func keywordSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}

// buildCandidates enumerates every (intent, intent-data) pairing in intents.
func buildCandidates(intents *model.Intents) []*pipeline.Candidate {
	var out []*pipeline.Candidate
	for name, intent := range intents.Intents {
		for _, data := range intent.Data {
			out = append(out, &pipeline.Candidate{IntentName: name, Intent: intent, Data: data})
		}
	}
	return out
}

// pruneCandidates runs the keyword and context pre-check stages, then
// parses and (optionally) regex pre-filters the survivors' sentences.
func pruneCandidates(intents *model.Intents, pc *pipeline.PruneContext) ([]*pipeline.Candidate, error) {
	chain := pipeline.NewChain(pipeline.KeywordStage{}, pipeline.ContextStage{})
	if _, err := chain.Run(context.Background(), pc); err != nil {
		return nil, err
	}

	for _, c := range pc.Candidates {
		sentences, err := c.Data.Sentences()
		if err != nil {
			return nil, err
		}
		c.Sentences = sentences
	}

	if intents.Settings.FilterWithRegex {
		regexChain := pipeline.NewChain(pipeline.RegexPrefilterStage{Enabled: true})
		if _, err := regexChain.Run(context.Background(), pc); err != nil {
			return nil, err
		}
	}

	return pc.Candidates, nil
}
