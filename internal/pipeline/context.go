package pipeline

import (
	"context"

	"intentrec/internal/model"
)

// ContextStage drops candidates whose requires_context/excludes_context
// conflicts with the caller-supplied intent context, before any matching
// happens. requires_context allows missing keys here (more context can
// surface as the match runs and gets enforced again at the end by the
// recognizer); excludes_context never allows a present, matching key.
type ContextStage struct{}

func (ContextStage) ID() string    { return "context" }
func (ContextStage) Priority() int { return 90 }

func (ContextStage) Apply(_ context.Context, pc *PruneContext) (Decision, error) {
	if pc.IntentContext == nil {
		return Decision{Reason: "no intent context to check"}, nil
	}

	survivors := pc.Candidates[:0]
	for _, c := range pc.Candidates {
		if c.Data.RequiresContext != nil && !model.CheckRequiredContext(c.Data.RequiresContext, pc.IntentContext, true) {
			continue
		}
		if c.Data.ExcludesContext != nil && !model.CheckExcludedContext(c.Data.ExcludesContext, pc.IntentContext) {
			continue
		}
		survivors = append(survivors, c)
	}
	pc.Candidates = survivors
	return Decision{Reason: "requires_context/excludes_context pre-check applied"}, nil
}
