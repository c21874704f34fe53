// Package intentrec is a template-based intent recognizer: it matches
// spoken or typed sentences against a set of YAML-declared templates and
// extracts named slots, the way the hassil library does for Home Assistant.
//
// A typical caller loads an intents document with FromYAML, then calls
// Recognize (or RecognizeAll / RecognizeBest) against user input.
package intentrec

import (
	"intentrec/internal/loader"
	"intentrec/internal/matcher"
	"intentrec/internal/model"
	"intentrec/internal/parser"
	"intentrec/internal/recognize"
	"intentrec/internal/sampler"
)

// Re-exported expression tree and document types, so callers never need to
// import the internal packages directly.
type (
	Expression       = model.Expression
	Sentence         = model.Sentence
	TextChunk        = model.TextChunk
	Sequence         = model.Sequence
	Alternative      = model.Alternative
	Permutation      = model.Permutation
	ListReference    = model.ListReference
	RuleReference    = model.RuleReference
	SlotList         = model.SlotList
	TextSlotList     = model.TextSlotList
	TextSlotValue    = model.TextSlotValue
	RangeSlotList    = model.RangeSlotList
	WildcardSlotList = model.WildcardSlotList
	MatchEntity      = model.MatchEntity
	UnmatchedEntity  = model.UnmatchedEntity
	Intent           = model.Intent
	IntentData       = model.IntentData
	Intents          = model.Intents
	Settings         = model.Settings

	ParseError       = model.ParseError
	MissingListError = model.MissingListError
	MissingRuleError = model.MissingRuleError
	ValueError       = model.ValueError

	Options = recognize.Options
	Result  = recognize.Result
)

// ParseSentence parses a single template string into a Sentence. Set
// keepText to retain the original source text on the result (for error
// messages or debugging); recognition itself never needs it.
func ParseSentence(text string, keepText bool) (*Sentence, error) {
	return parser.ParseSentence(text, keepText, nil)
}

// FromYAML decodes a single intents document from YAML bytes.
func FromYAML(data []byte) (*Intents, error) {
	return loader.FromYAML(data)
}

// Validate checks that every sentence template in intents parses and that
// every list it references resolves, without running the matcher.
func Validate(intents *Intents) error {
	return loader.Validate(intents)
}

// Recognize returns the first intent match for text, or nil if nothing
// matched.
func Recognize(text string, intents *Intents, opts *Options) (*Result, error) {
	return recognize.Recognize(text, intents, opts)
}

// RecognizeAll returns every intent match for text.
func RecognizeAll(text string, intents *Intents, opts *Options) ([]*Result, error) {
	return recognize.RecognizeAll(text, intents, opts)
}

// RecognizeBest returns the single best match for text, using
// bestMetadataKey and bestSlotName (either may be empty) to break ties the
// way a voice assistant picks among several plausible intents.
func RecognizeBest(text string, intents *Intents, opts *Options, bestMetadataKey, bestSlotName string) (*Result, error) {
	return recognize.RecognizeBest(text, intents, opts, bestMetadataKey, bestSlotName)
}

// IsMatch reports whether text matches sentence directly, independent of
// any intents document.
func IsMatch(text string, sentence *Sentence, opts *Options) (bool, error) {
	return recognize.IsMatch(text, sentence, opts)
}

// SampleSettings controls how SampleSentence enumerates a template's
// strings: the slot lists and expansion rules it resolves against, an
// optional language for number words, and whether to omit the non-empty
// branch of every optional group.
type SampleSettings struct {
	SlotLists      map[string]SlotList
	ExpansionRules map[string]*Sentence
	Language       string
	SkipOptionals  bool
}

// SampleSentence enumerates every concrete string sentence can produce.
// Wildcards are not sampled.
func SampleSentence(settings *SampleSettings, sentence *Sentence) ([]string, error) {
	s := &sampler.Settings{Language: settings.Language, SkipOptionals: settings.SkipOptionals}
	if settings.SlotLists != nil {
		s.SlotLists = settings.SlotLists
	}
	if settings.ExpansionRules != nil {
		s.ExpansionRules = settings.ExpansionRules
	}
	return sampler.Sample(s, sentence)
}

// MatcherSettings controls the low-level matcher's slot-list/expansion-rule
// resolution and unmatched-entity/whitespace behavior.
type MatcherSettings = matcher.Settings
