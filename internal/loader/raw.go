// Package loader decodes the YAML intents document (§6) into the in-memory
// model.Intents tree: building slot lists and expansion rules, and wiring
// each intent-data block's sentence templates for lazy parsing on first use.
// Per-intent-data local lists and rules are kept separate from the global
// ones; the loader does not merge them. It is the only package that imports
// gopkg.in/yaml.v3 — the core recognizer never does.
package loader

// rawDocument mirrors the top-level YAML shape of an intents file.
type rawDocument struct {
	Language       string                 `yaml:"language"`
	Settings       rawSettings            `yaml:"settings"`
	Intents        map[string]rawIntent   `yaml:"intents"`
	ExpansionRules map[string]string      `yaml:"expansion_rules"`
	Lists          map[string]rawSlotList `yaml:"lists"`
	SkipWords      []string               `yaml:"skip_words"`
}

type rawSettings struct {
	IgnoreWhitespace bool `yaml:"ignore_whitespace"`
	FilterWithRegex  bool `yaml:"filter_with_regex"`
}

type rawIntent struct {
	Data []rawIntentData `yaml:"data"`
}

type rawIntentData struct {
	Sentences        []string               `yaml:"sentences"`
	Slots            map[string]any         `yaml:"slots"`
	RequiresContext  map[string]any         `yaml:"requires_context"`
	ExcludesContext  map[string]any         `yaml:"excludes_context"`
	Response         *string                `yaml:"response"`
	Metadata         map[string]any         `yaml:"metadata"`
	ExpansionRules   map[string]string      `yaml:"expansion_rules"`
	Lists            map[string]rawSlotList `yaml:"lists"`
	RequiredKeywords []string               `yaml:"required_keywords"`
}

// rawSlotList holds whichever of values/range/wildcard was declared; exactly
// one must be set (checked by buildSlotList).
type rawSlotList struct {
	Values   []rawSlotValue `yaml:"values"`
	Range    *rawRange      `yaml:"range"`
	Wildcard bool           `yaml:"wildcard"`
}

// rawSlotValue accepts either a bare string or the {in, out, context,
// metadata} object form.
type rawSlotValue struct {
	In       string
	Out      any
	Context  map[string]any
	Metadata map[string]any
}

func (v *rawSlotValue) UnmarshalYAML(unmarshal func(any) error) error {
	var plain string
	if err := unmarshal(&plain); err == nil {
		v.In = plain
		v.Out = plain
		return nil
	}

	var obj struct {
		In       string         `yaml:"in"`
		Out      any            `yaml:"out"`
		Context  map[string]any `yaml:"context"`
		Metadata map[string]any `yaml:"metadata"`
	}
	if err := unmarshal(&obj); err != nil {
		return err
	}
	v.In = obj.In
	v.Out = obj.Out
	if v.Out == nil {
		v.Out = obj.In
	}
	v.Context = obj.Context
	v.Metadata = obj.Metadata
	return nil
}

type rawRange struct {
	From          int      `yaml:"from"`
	To            int      `yaml:"to"`
	Step          int      `yaml:"step"`
	Type          string   `yaml:"type"`
	Digits        bool     `yaml:"digits"`
	Words         bool     `yaml:"words"`
	WordsLanguage string   `yaml:"words_language"`
	Multiplier    *float64 `yaml:"multiplier"`
	FractionType  string   `yaml:"fraction_type"`
}
