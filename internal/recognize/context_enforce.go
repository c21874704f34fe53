package recognize

import "intentrec/internal/model"

// enforceContext checks a successful match's accumulated intent_context
// against an intent-data's requires_context/excludes_context. It returns
// false when the match should be dropped. A requires_context entry using
// the {value, slot: true} form yields an extra copy-to-slot MatchEntity. A
// missing required key is tolerated (producing a sentinel unmatched entity)
// only when allowUnmatchedEntities is set; otherwise it fails the match.
func enforceContext(data *model.IntentData, intentContext map[string]any, allowUnmatchedEntities bool) (ok bool, extraEntities []model.MatchEntity, sentinels []model.UnmatchedEntity) {
	for key, required := range data.RequiresContext {
		actual, present := intentContext[key]
		if !present {
			if !allowUnmatchedEntities {
				return false, nil, nil
			}
			sentinels = append(sentinels, &model.UnmatchedTextEntity{Name: key, Text: model.MissingContextMarker})
			continue
		}

		if !model.ContextValueMatches(model.UnwrapContextValue(required), actual) {
			return false, nil, nil
		}
		if model.IsSlotContextValue(required) {
			extraEntities = append(extraEntities, model.MatchEntity{Name: key, Value: actual})
		}
	}

	for key, excluded := range data.ExcludesContext {
		actual, present := intentContext[key]
		if !present {
			continue
		}
		if model.ContextValueMatches(model.UnwrapContextValue(excluded), actual) {
			return false, nil, nil
		}
	}

	return true, extraEntities, sentinels
}

// injectStaticSlots appends an always-on MatchEntity for every static slot
// declared on an intent-data block, skipping names already present from the
// match itself.
func injectStaticSlots(entities []model.MatchEntity, slots map[string]any) []model.MatchEntity {
	if len(slots) == 0 {
		return entities
	}
	present := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		present[e.Name] = struct{}{}
	}
	out := entities
	for name, value := range slots {
		if _, ok := present[name]; ok {
			continue
		}
		out = append(out, model.MatchEntity{Name: name, Value: value})
	}
	return out
}
