// Package pipeline runs the candidate-pruning stages the recognizer façade
// applies to intent-data blocks before the matcher ever sees an utterance:
// required-keyword filtering, context pre-checks, and the regex pre-filter.
// It is structured the same way the teacher's internal/middleware package
// chains request-handling middleware: a priority-sorted list of stages, each
// free to prune the shared candidate set or cancel the whole run.
package pipeline

import (
	"context"
	"sort"
	"sync"

	"intentrec/internal/model"
)

// Candidate is one surviving (intent, intent-data) pairing as it moves
// through the pruning stages. Sentences is populated once the caller parses
// IntentData.Sentences() for a block that survived keyword/context pruning;
// stages that run before parsing (KeywordStage, ContextStage) never read it.
type Candidate struct {
	IntentName string
	Intent     *model.Intent
	Data       *model.IntentData
	Sentences  []*model.Sentence
}

// PruneContext is the mutable state threaded through a Chain run: the
// normalized utterance, its keyword set, the caller's intent context, and
// the candidate list stages narrow in place.
type PruneContext struct {
	Text          string
	Keywords      map[string]struct{}
	IntentContext map[string]any

	AllowUnmatchedEntities bool
	ExpansionRules         map[string]*model.Sentence

	Candidates []*Candidate
}

// Decision is a stage's report of what it did to the candidate set.
type Decision struct {
	Cancel bool   // stop the whole run (a fatal condition, not "no candidates")
	Reason string // for logs/debugging
}

// Stage prunes (or annotates) the shared candidate set for one concern.
type Stage interface {
	ID() string
	Priority() int
	Apply(ctx context.Context, pc *PruneContext) (Decision, error)
}

// DecisionResult records what one stage did during a Run, for callers that
// want to log or inspect the pruning trail.
type DecisionResult struct {
	StageID  string
	Priority int
	Decision Decision
}

// Chain runs stages in descending Priority() order; ties preserve
// registration order.
type Chain struct {
	mu     sync.RWMutex
	stages []Stage
}

// NewChain builds a Chain from the given stages, sorted by priority.
func NewChain(stages ...Stage) *Chain {
	c := &Chain{}
	for _, s := range stages {
		c.Use(s)
	}
	return c
}

// Use appends a stage and re-sorts the chain.
func (c *Chain) Use(s Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages = append(c.stages, s)
	sort.SliceStable(c.stages, func(i, j int) bool {
		return c.stages[i].Priority() > c.stages[j].Priority()
	})
}

// Run executes every stage against pc in priority order, stopping early if
// a stage returns Decision.Cancel or an error.
func (c *Chain) Run(ctx context.Context, pc *PruneContext) ([]DecisionResult, error) {
	c.mu.RLock()
	stages := make([]Stage, len(c.stages))
	copy(stages, c.stages)
	c.mu.RUnlock()

	results := make([]DecisionResult, 0, len(stages))
	for _, s := range stages {
		dec, err := s.Apply(ctx, pc)
		if err != nil {
			return results, err
		}
		results = append(results, DecisionResult{StageID: s.ID(), Priority: s.Priority(), Decision: dec})
		if dec.Cancel {
			break
		}
	}
	return results, nil
}
