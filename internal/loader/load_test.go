package loader

import (
	"strings"
	"testing"

	"intentrec/internal/model"
	"intentrec/internal/recognize"
)

const lightsYAML = `
language: en
settings:
  ignore_whitespace: false
  filter_with_regex: true
skip_words:
  - please
expansion_rules:
  area: "[the] {area}"
lists:
  area:
    values:
      - kitchen
      - living room
  brightness_pct:
    range:
      from: 0
      to: 100
intents:
  HassTurnOn:
    data:
      - sentences:
          - "turn on [the] lights in <area>"
          - "turn on <area> lights"
        slots:
          domain: light
`

func TestFromYAMLRoundTrip(t *testing.T) {
	intents, err := FromYAML([]byte(lightsYAML))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if intents.Language != "en" {
		t.Fatalf("expected language en, got %q", intents.Language)
	}
	if !intents.Settings.FilterWithRegex {
		t.Fatalf("expected filter_with_regex to be true")
	}
	if len(intents.SkipWords) != 1 || intents.SkipWords[0] != "please" {
		t.Fatalf("expected skip_words [please], got %v", intents.SkipWords)
	}
	if _, ok := intents.SlotLists["area"]; !ok {
		t.Fatalf("expected global area list")
	}
	if _, ok := intents.ExpansionRules["area"]; !ok {
		t.Fatalf("expected global area expansion rule")
	}

	intent, ok := intents.Intents["HassTurnOn"]
	if !ok || len(intent.Data) != 1 {
		t.Fatalf("expected one HassTurnOn data block, got %+v", intent)
	}
	if got := intent.Data[0].Slots["domain"]; got != "light" {
		t.Fatalf("expected static slot domain=light, got %v", got)
	}

	result, err := recognize.Recognize("turn on kitchen lights, please", intents, &recognize.Options{SkipWords: intents.SkipWords})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if result == nil {
		t.Fatalf("expected a match")
	}
	if e, ok := result.EntitiesByName["area"]; !ok || e.Value != "kitchen" {
		t.Fatalf("expected area=kitchen, got %+v", result.EntitiesByName)
	}
}

func TestIsTemplateDetectsDelimiters(t *testing.T) {
	cases := map[string]bool{
		"kitchen":        false,
		"living room":    false,
		"[the] kitchen":  true,
		"(a;b)":          true,
		"{area}":         true,
		"<area>":         true,
	}
	for text, want := range cases {
		if got := isTemplate(text); got != want {
			t.Errorf("isTemplate(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestBuildSlotListRejectsAmbiguousDeclaration(t *testing.T) {
	_, err := buildSlotList("bad", rawSlotList{Values: []rawSlotValue{{In: "a", Out: "a"}}, Wildcard: true}, nil)
	if err == nil {
		t.Fatalf("expected an error for a list declaring both values and wildcard")
	}
	var valueErr *model.ValueError
	if !asValueError(err, &valueErr) {
		t.Fatalf("expected a *model.ValueError, got %T: %v", err, err)
	}
}

func TestBuildSlotListRejectsEmptyDeclaration(t *testing.T) {
	_, err := buildSlotList("empty", rawSlotList{}, nil)
	if err == nil {
		t.Fatalf("expected an error for a list declaring nothing")
	}
}

func TestBuildRangeSlotListRejectsBackwardsRange(t *testing.T) {
	_, err := buildSlotList("bad_range", rawSlotList{Range: &rawRange{From: 10, To: 1}}, nil)
	if err == nil {
		t.Fatalf("expected an error for from >= to")
	}
}

func TestBuildRangeSlotListRejectsNegativeStep(t *testing.T) {
	_, err := buildSlotList("bad_step", rawSlotList{Range: &rawRange{From: 0, To: 10, Step: -1}}, nil)
	if err == nil {
		t.Fatalf("expected an error for a negative step")
	}
}

func TestFromYAMLPropagatesMissingListError(t *testing.T) {
	const doc = `
intents:
  Broken:
    data:
      - sentences:
          - "turn on {nonexistent}"
`
	intents, err := FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("FromYAML should not fail at parse time: %v", err)
	}
	err = Validate(intents)
	if err == nil {
		t.Fatalf("expected Validate to report the missing list")
	}
	var missing *model.MissingListError
	if !asMissingListError(err, &missing) {
		t.Fatalf("expected a *model.MissingListError, got %T: %v", err, err)
	}
	if !strings.Contains(missing.ListName, "nonexistent") {
		t.Fatalf("expected the error to name the missing list, got %q", missing.ListName)
	}
}

func TestFromYAMLPropagatesMissingListErrorForTopLevelAlternative(t *testing.T) {
	// "{area}|{typo_list}" has no enclosing parens, so its parsed root is a
	// *model.Alternative, not a *model.Sequence — Validate must still walk
	// into it instead of skipping it.
	const doc = `
lists:
  area:
    values: [kitchen]
intents:
  Broken:
    data:
      - sentences:
          - "{area}|{typo_list}"
`
	intents, err := FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	err = Validate(intents)
	if err == nil {
		t.Fatalf("expected Validate to report the missing list reachable through a top-level alternative")
	}
	var missing *model.MissingListError
	if !asMissingListError(err, &missing) {
		t.Fatalf("expected a *model.MissingListError, got %T: %v", err, err)
	}
	if missing.ListName != "typo_list" {
		t.Fatalf("expected the error to name typo_list, got %q", missing.ListName)
	}
}

func TestLocalListsOverrideGlobalOnesAtRecognizeTime(t *testing.T) {
	const doc = `
lists:
  color:
    values: [red, blue]
intents:
  SetColor:
    data:
      - sentences:
          - "set color to {color}"
        lists:
          color:
            values: [green]
`
	intents, err := FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}

	result, err := recognize.Recognize("set color to green", intents, &recognize.Options{})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if result == nil {
		t.Fatalf("expected local list override to allow matching green")
	}

	noMatch, err := recognize.Recognize("set color to red", intents, &recognize.Options{})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if noMatch != nil {
		t.Fatalf("expected the local override to shadow the global red/blue list entirely, got %+v", noMatch)
	}
}

func asValueError(err error, target **model.ValueError) bool {
	if v, ok := err.(*model.ValueError); ok {
		*target = v
		return true
	}
	return false
}

func asMissingListError(err error, target **model.MissingListError) bool {
	if v, ok := err.(*model.MissingListError); ok {
		*target = v
		return true
	}
	return false
}
