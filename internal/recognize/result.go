package recognize

import "intentrec/internal/model"

// Result is one yielded match: the intent it resolved to, the entities it
// extracted, the response key, and everything a caller needs to act on the
// match or inspect why it partially failed (unmatched entities).
type Result struct {
	TraceID string

	IntentName string
	Intent     *model.Intent
	IntentData *model.IntentData

	Entities       []model.MatchEntity
	EntitiesByName map[string]model.MatchEntity

	Response string

	IntentContext     map[string]any
	UnmatchedEntities []model.UnmatchedEntity
	TextChunksMatched int

	Sentence *model.Sentence
	Metadata map[string]any
}

func entitiesByName(entities []model.MatchEntity) map[string]model.MatchEntity {
	out := make(map[string]model.MatchEntity, len(entities))
	for _, e := range entities {
		out[e.Name] = e
	}
	return out
}
