// Package recognize implements the recognizer façade: normalize the
// utterance, prune candidate intent-data blocks, run the matcher over
// whatever survives, enforce context, and shape the result the way the
// teacher's internal/gateway composes its request-handling stages end to
// end.
package recognize

import "intentrec/internal/model"

// Options mirrors the recognized option set from the public API: per-call
// overrides layered on top of whatever an Intents document already carries
// at document level. An intent-data block's own local slot lists and
// expansion rules still take precedence over SlotLists/ExpansionRules here.
type Options struct {
	SlotLists      map[string]model.SlotList
	ExpansionRules map[string]*model.Sentence
	SkipWords      []string
	IntentContext  map[string]any

	// DefaultResponse is used when an intent-data block has no Response
	// override. Defaults to "default" if left empty.
	DefaultResponse string

	AllowUnmatchedEntities bool

	// Language overrides intents.Language for number-word matching, when set.
	Language string
}

func (o *Options) defaultResponse() string {
	if o == nil || o.DefaultResponse == "" {
		return "default"
	}
	return o.DefaultResponse
}
