package model

import "sync"

// Settings are the recognition-wide toggles carried by an Intents document.
type Settings struct {
	IgnoreWhitespace bool
	FilterWithRegex  bool
}

// IntentData is a block of sentence templates sharing slots, context,
// response key, metadata, and local overrides.
type IntentData struct {
	SentenceTexts []string

	// Slots are always-injected entities, added to every match of this block.
	Slots map[string]any

	RequiresContext map[string]any
	ExcludesContext map[string]any

	Response *string
	Metadata map[string]any

	// Local overrides/additions. Left unmerged by the loader; recognize
	// first layers caller-supplied Options over the document-level maps,
	// then layers these local maps on top of that, so local entries win.
	SlotLists        map[string]SlotList
	ExpansionRules   map[string]*Sentence
	RequiredKeywords []string

	parseFn       func(string) (*Sentence, error)
	sentencesOnce sync.Once
	sentences     []*Sentence
	sentencesErr  error
}

// NewIntentData builds an IntentData whose SentenceTexts are parsed lazily
// on first call to Sentences, using parseFn (injected to avoid a model ->
// parser import cycle).
func NewIntentData(texts []string, parseFn func(string) (*Sentence, error)) *IntentData {
	return &IntentData{SentenceTexts: texts, parseFn: parseFn}
}

// Sentences returns the parsed form of SentenceTexts, parsing once and
// caching the result (and any parse error) for subsequent calls.
func (d *IntentData) Sentences() ([]*Sentence, error) {
	d.sentencesOnce.Do(func() {
		d.sentences = make([]*Sentence, 0, len(d.SentenceTexts))
		for _, text := range d.SentenceTexts {
			sent, err := d.parseFn(text)
			if err != nil {
				d.sentencesErr = err
				return
			}
			d.sentences = append(d.sentences, sent)
		}
	})
	return d.sentences, d.sentencesErr
}

// Intent is a named behavior grouping one or more IntentData blocks.
type Intent struct {
	Name string
	Data []*IntentData
}

// Intents is the fully loaded document: intents, slot lists, expansion
// rules, skip words and settings for one language.
type Intents struct {
	Language string

	Intents map[string]*Intent

	SlotLists      map[string]SlotList
	ExpansionRules map[string]*Sentence
	SkipWords      []string
	Settings       Settings
}
