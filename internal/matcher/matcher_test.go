package matcher

import (
	"testing"

	"intentrec/internal/model"
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

func TestMatchPlainWords(t *testing.T) {
	sentence := parseOrFatal(t, "turn on the lights")
	settings := &Settings{}

	matches, err := MatchSentence(settings, "turn on the lights", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}
}

func TestMatchPlainWordsNoMatch(t *testing.T) {
	sentence := parseOrFatal(t, "turn on the lights")
	settings := &Settings{}

	matches, err := MatchSentence(settings, "turn off the lights", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no match, got %d", len(matches))
	}
}

func TestMatchOptionalPresentAndAbsent(t *testing.T) {
	sentence := parseOrFatal(t, "turn on [the] lights")
	settings := &Settings{}

	for _, text := range []string{"turn on the lights", "turn on lights"} {
		matches, err := MatchSentence(settings, text, sentence, nil)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(matches) == 0 {
			t.Fatalf("expected a match for %q", text)
		}
	}
}

func TestMatchAlternative(t *testing.T) {
	sentence := parseOrFatal(t, "(turn on|switch on) the lights")
	settings := &Settings{}

	for _, text := range []string{"turn on the lights", "switch on the lights"} {
		matches, err := MatchSentence(settings, text, sentence, nil)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(matches) == 0 {
			t.Fatalf("expected a match for %q", text)
		}
	}
}

func TestMatchPermutation(t *testing.T) {
	sentence := parseOrFatal(t, "(a;b;c)")
	settings := &Settings{}

	for _, text := range []string{"a b c", "c b a", "b a c"} {
		matches, err := MatchSentence(settings, text, sentence, nil)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(matches) == 0 {
			t.Fatalf("expected a match for %q", text)
		}
	}
}

func TestMatchTextSlotList(t *testing.T) {
	sentence := parseOrFatal(t, "turn on the {name}")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"name": &model.TextSlotList{Values: []model.TextSlotValue{
				{TextIn: model.NewTextChunk("kitchen lights"), ValueOut: "kitchen.lights"},
				{TextIn: model.NewTextChunk("living room lights"), ValueOut: "living_room.lights"},
			}},
		},
	}

	matches, err := MatchSentence(settings, "turn on the kitchen lights", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}

	found := false
	for _, m := range matches {
		for _, e := range m.Entities {
			if e.Name == "name" && e.Value == "kitchen.lights" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a name entity with value kitchen.lights, got %+v", matches)
	}
}

func TestMatchRangeSlotListDigits(t *testing.T) {
	sentence := parseOrFatal(t, "set brightness to {level}")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"level": &model.RangeSlotList{Start: 0, Stop: 100, Step: 1, Digits: true},
		},
	}

	matches, err := MatchSentence(settings, "set brightness to 42", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}
	found := false
	for _, m := range matches {
		for _, e := range m.Entities {
			if e.Name == "level" && e.Value == float64(42) {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected level entity with value 42, got %+v", matches)
	}
}

func TestMatchRangeSlotListOutOfRange(t *testing.T) {
	sentence := parseOrFatal(t, "set brightness to {level}")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"level": &model.RangeSlotList{Start: 0, Stop: 100, Step: 1, Digits: true},
		},
	}

	matches, err := MatchSentence(settings, "set brightness to 999", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no match for out-of-range value, got %d", len(matches))
	}
}

func TestMatchRangeSlotListWords(t *testing.T) {
	sentence := parseOrFatal(t, "set brightness to {level}")
	settings := &Settings{
		Language: "en",
		SlotLists: map[string]model.SlotList{
			"level": &model.RangeSlotList{Start: 0, Stop: 100, Step: 1, Words: true},
		},
	}

	matches, err := MatchSentence(settings, "set brightness to twenty one", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected a match for spelled-out number")
	}
}

func TestMatchWildcardSlotList(t *testing.T) {
	sentence := parseOrFatal(t, "play {search_query} on spotify")
	settings := &Settings{
		SlotLists: map[string]model.SlotList{
			"search_query": &model.WildcardSlotList{},
		},
	}

	matches, err := MatchSentence(settings, "play some jazz music on spotify", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}
	for _, m := range matches {
		for _, e := range m.Entities {
			if e.IsWildcard && e.Text == "" {
				t.Fatalf("wildcard entity must not be empty in a final match")
			}
		}
	}
}

func TestMatchRuleReference(t *testing.T) {
	sentence := parseOrFatal(t, "turn on <device>")
	deviceRule := parseOrFatal(t, "the lights")
	settings := &Settings{
		ExpansionRules: map[string]*model.Sentence{
			"device": deviceRule,
		},
	}

	matches, err := MatchSentence(settings, "turn on the lights", sentence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}
}

func TestMatchMissingListErrors(t *testing.T) {
	sentence := parseOrFatal(t, "turn on the {name}")
	settings := &Settings{}

	_, err := MatchSentence(settings, "turn on the kitchen", sentence, nil)
	if err == nil {
		t.Fatalf("expected a MissingListError")
	}
	if _, ok := err.(*model.MissingListError); !ok {
		t.Fatalf("expected *model.MissingListError, got %T", err)
	}
}

func TestMatchMissingRuleErrors(t *testing.T) {
	sentence := parseOrFatal(t, "turn on <device>")
	settings := &Settings{}

	_, err := MatchSentence(settings, "turn on the lights", sentence, nil)
	if err == nil {
		t.Fatalf("expected a MissingRuleError")
	}
	if _, ok := err.(*model.MissingRuleError); !ok {
		t.Fatalf("expected *model.MissingRuleError, got %T", err)
	}
}
