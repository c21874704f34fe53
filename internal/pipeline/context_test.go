package pipeline

import (
	"context"
	"testing"

	"intentrec/internal/model"
)

func TestContextStageDropsExcludedMatch(t *testing.T) {
	pc := &PruneContext{
		IntentContext: map[string]any{"domain": "light"},
		Candidates: []*Candidate{
			{IntentName: "CloseCover", Data: &model.IntentData{ExcludesContext: map[string]any{"domain": "light"}}},
			{IntentName: "Other", Data: &model.IntentData{}},
		},
	}

	if _, err := (ContextStage{}).Apply(context.Background(), pc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pc.Candidates) != 1 || pc.Candidates[0].IntentName != "Other" {
		t.Fatalf("expected only Other to survive, got %+v", pc.Candidates)
	}
}

func TestContextStageAllowsMissingRequiredKey(t *testing.T) {
	pc := &PruneContext{
		IntentContext: map[string]any{},
		Candidates: []*Candidate{
			{IntentName: "CloseCover", Data: &model.IntentData{RequiresContext: map[string]any{"domain": "cover"}}},
		},
	}

	if _, err := (ContextStage{}).Apply(context.Background(), pc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pc.Candidates) != 1 {
		t.Fatalf("expected missing required-context key to be allowed at this stage, got %d survivors", len(pc.Candidates))
	}
}

func TestContextStageNoIntentContextKeepsAll(t *testing.T) {
	pc := &PruneContext{
		Candidates: []*Candidate{
			{IntentName: "A", Data: &model.IntentData{ExcludesContext: map[string]any{"domain": "light"}}},
		},
	}

	if _, err := (ContextStage{}).Apply(context.Background(), pc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pc.Candidates) != 1 {
		t.Fatalf("expected candidate to survive when no intent context was supplied, got %d", len(pc.Candidates))
	}
}
