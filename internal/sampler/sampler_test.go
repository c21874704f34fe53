package sampler

import (
	"sort"
	"testing"

	"intentrec/internal/model"
	"intentrec/internal/normalize"
	"intentrec/internal/parser"
)

func parseOrFatal(t *testing.T, text string) *model.Sentence {
	t.Helper()
	s, err := parser.ParseSentence(text, false, nil)
	if err != nil {
		t.Fatalf("ParseSentence(%q): %v", text, err)
	}
	return s
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func TestSampleRoundTripOnTrivialTemplate(t *testing.T) {
	text := "turn on the lights"
	sentence := parseOrFatal(t, text)

	samples, err := Sample(&Settings{}, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(samples, normalize.Text(text)) {
		t.Fatalf("expected samples to contain %q, got %v", normalize.Text(text), samples)
	}
}

func TestSampleOptionalYieldsBothBranches(t *testing.T) {
	sentence := parseOrFatal(t, "A [B] C")
	samples, err := Sample(&Settings{}, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A C", "A B C"}
	got := make([]string, len(samples))
	for i, s := range samples {
		got[i] = Normalize(s)
	}
	sort.Strings(got)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSampleOptionalSkipOptionalsOmitsNonEmptyBranch(t *testing.T) {
	sentence := parseOrFatal(t, "A [B] C")
	samples, err := Sample(&Settings{SkipOptionals: true}, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range samples {
		if Normalize(s) == "A B C" {
			t.Fatalf("expected skip_optionals to omit the non-empty branch, got %v", samples)
		}
	}
}

func TestSamplePermutationYieldsAllOrderings(t *testing.T) {
	sentence := parseOrFatal(t, "(a;b;c)")
	samples, err := Sample(&Settings{}, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a b c", "a c b", "b a c", "b c a", "c a b", "c b a"}
	got := make([]string, len(samples))
	for i, s := range samples {
		got[i] = Normalize(s)
	}
	sort.Strings(got)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("got %d orderings %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSampleTextSlotList(t *testing.T) {
	sentence := parseOrFatal(t, "turn on the {name}")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"name": model.NewTextSlotListFromStrings(normalize.Text, "kitchen lights", "office lights"),
		},
	}

	samples, err := Sample(settings, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(samples, "turn on the kitchen lights") {
		t.Fatalf("expected a sample for kitchen lights, got %v", samples)
	}
	if !contains(samples, "turn on the office lights") {
		t.Fatalf("expected a sample for office lights, got %v", samples)
	}
}

func TestSampleRangeSlotListDigitsAndFractions(t *testing.T) {
	sentence := parseOrFatal(t, "set to {level}")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"level": &model.RangeSlotList{Start: 1, Stop: 2, Step: 1, FractionType: model.FractionHalves},
		},
	}

	samples, err := Sample(settings, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"set to 1", "set to 1.5", "set to 2", "set to 2.5"} {
		if !contains(samples, want) {
			t.Fatalf("expected sample %q, got %v", want, samples)
		}
	}
}

func TestSampleWildcardNotSampled(t *testing.T) {
	sentence := parseOrFatal(t, "play {query} please")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"query": &model.WildcardSlotList{},
		},
	}

	samples, err := Sample(settings, sentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 0 {
		t.Fatalf("expected no samples for a sequence containing a wildcard, got %v", samples)
	}
}
