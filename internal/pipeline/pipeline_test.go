package pipeline

import (
	"context"
	"testing"
)

type testStage struct {
	id       string
	priority int
	cancel   bool
	seen     *[]string
}

func (s testStage) ID() string    { return s.id }
func (s testStage) Priority() int { return s.priority }
func (s testStage) Apply(_ context.Context, _ *PruneContext) (Decision, error) {
	*s.seen = append(*s.seen, s.id)
	return Decision{Cancel: s.cancel}, nil
}

func TestChainPriorityAndCancel(t *testing.T) {
	seen := []string{}
	c := NewChain(
		testStage{id: "low", priority: 1, seen: &seen},
		testStage{id: "high", priority: 10, cancel: true, seen: &seen},
		testStage{id: "mid", priority: 5, seen: &seen},
	)

	_, err := c.Run(context.Background(), &PruneContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 1 || seen[0] != "high" {
		t.Fatalf("expected only high to run (cancel), got %v", seen)
	}
}

func TestChainStableOrderOnEqualPriority(t *testing.T) {
	seen := []string{}
	c := NewChain(
		testStage{id: "a", priority: 5, seen: &seen},
		testStage{id: "b", priority: 5, seen: &seen},
		testStage{id: "c", priority: 5, seen: &seen},
	)

	_, err := c.Run(context.Background(), &PruneContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 3 || seen[0] != "a" || seen[1] != "b" || seen[2] != "c" {
		t.Fatalf("expected stable registration order, got %v", seen)
	}
}
