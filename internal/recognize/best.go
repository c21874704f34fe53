package recognize

import (
	"sort"
	"strings"

	"intentrec/internal/model"
)

// RecognizeBest runs RecognizeAll and orders the results by, in priority:
// (a) presence of bestMetadataKey on the intent-data's Metadata, (b)
// presence of bestSlotName as a non-wildcard entity with the longest
// matched text, (c) fewest wildcard entities, (d) most TextChunksMatched.
// Ties beyond that keep enumeration order. Empty bestMetadataKey/
// bestSlotName skip that priority entirely.
func RecognizeBest(text string, intents *model.Intents, opts *Options, bestMetadataKey, bestSlotName string) (*Result, error) {
	results, err := RecognizeAll(text, intents, opts)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		return isBetter(results[i], results[j], bestMetadataKey, bestSlotName)
	})
	return results[0], nil
}

func isBetter(a, b *Result, bestMetadataKey, bestSlotName string) bool {
	if bestMetadataKey != "" {
		aHas := hasMetadataKey(a, bestMetadataKey)
		bHas := hasMetadataKey(b, bestMetadataKey)
		if aHas != bHas {
			return aHas
		}
	}

	if bestSlotName != "" {
		aScore, aOK := bestSlotScore(a, bestSlotName)
		bScore, bOK := bestSlotScore(b, bestSlotName)
		if aOK != bOK {
			return aOK
		}
		if aOK && bOK && aScore != bScore {
			return aScore > bScore
		}
	}

	aWild := countWildcards(a)
	bWild := countWildcards(b)
	if aWild != bWild {
		return aWild < bWild
	}

	return a.TextChunksMatched > b.TextChunksMatched
}

func hasMetadataKey(r *Result, key string) bool {
	if r.Metadata == nil {
		return false
	}
	_, ok := r.Metadata[key]
	return ok
}

// bestSlotScore returns the matched text length of a non-wildcard entity
// named slotName, and whether one was found at all.
func bestSlotScore(r *Result, slotName string) (int, bool) {
	e, ok := r.EntitiesByName[slotName]
	if !ok || e.IsWildcard {
		return 0, false
	}
	return len(strings.TrimSpace(e.Text)), true
}

func countWildcards(r *Result) int {
	count := 0
	for _, e := range r.Entities {
		if e.IsWildcard {
			count++
		}
	}
	return count
}
