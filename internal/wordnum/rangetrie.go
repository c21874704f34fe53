package wordnum

import (
	"fmt"
	"strings"
	"sync"

	"intentrec/internal/trie"
)

var (
	rangeTrieCacheMu sync.Mutex
	rangeTrieCache   = map[string]map[string]*trie.Trie{}
)

// RangeTrieKey identifies one (start, stop, step) range within a language's
// cache; BuildRangeTrie extends it with the multiplier when one is given.
func RangeTrieKey(start, stop, step int) string {
	return fmt.Sprintf("%d:%d:%d", start, stop, step)
}

// BuildRangeTrie returns (and memoizes, per language, range and multiplier) a trie
// mapping every number-word form for integers in [start, stop] (by step) to
// its (possibly multiplier-scaled) numeric value. Both the engine's raw
// spelling and a hyphen/space-swapped form are inserted and deduplicated by
// node id on lookup, so "twenty-one" and "twenty one" both resolve to the
// same value exactly once per match.
func BuildRangeTrie(language string, start, stop, step int, multiplier *float64) *trie.Trie {
	key := RangeTrieKey(start, stop, step)
	if multiplier != nil {
		key += fmt.Sprintf(":x%g", *multiplier)
	}

	rangeTrieCacheMu.Lock()
	byKey, ok := rangeTrieCache[language]
	if !ok {
		byKey = make(map[string]*trie.Trie)
		rangeTrieCache[language] = byKey
	}
	if cached, ok := byKey[key]; ok {
		rangeTrieCacheMu.Unlock()
		return cached
	}
	rangeTrieCacheMu.Unlock()

	engine := ForLanguage(language)
	t := trie.New()

	if step <= 0 {
		step = 1
	}
	for n := start; n <= stop; n += step {
		value := float64(n)
		if multiplier != nil {
			value *= *multiplier
		}

		seen := map[string]bool{}
		for _, words := range engine.Format(n) {
			if seen[words] {
				continue
			}
			seen[words] = true
			t.Insert(words, value)

			// Insert the opposite hyphen/space form too, in case the
			// engine only produced one of them, so either surface form in
			// the utterance resolves.
			swapped := swapHyphenSpace(words)
			if !seen[swapped] {
				seen[swapped] = true
				t.Insert(swapped, value)
			}
		}
	}

	rangeTrieCacheMu.Lock()
	byKey[key] = t
	rangeTrieCacheMu.Unlock()

	return t
}

func swapHyphenSpace(s string) string {
	if strings.Contains(s, "-") {
		return strings.ReplaceAll(s, "-", " ")
	}
	return strings.ReplaceAll(s, " ", "-")
}
