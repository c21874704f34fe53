// Package normalize implements the text-normalization and skip-word removal
// rules applied to both template text and user utterances before matching.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace makes every run of whitespace inside s a single space.
func CollapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// Text collapses whitespace and applies Unicode NFC normalization. Casing is
// left untouched; matching is case-insensitive downstream via the compiled
// regex and the matcher's own comparisons.
func Text(s string) string {
	return norm.NFC.String(CollapseWhitespace(s))
}

// punctuation is the set of characters stripped by RemovePunctuation.
const punctuation = ".。,，?¿？؟!¡！;；:：’"

var punctuationSet = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(punctuation))
	for _, r := range punctuation {
		m[r] = struct{}{}
	}
	return m
}()

// RemovePunctuation strips punctuation from the given set at the start and
// end of s, and at every word boundary inside it.
func RemovePunctuation(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = stripPunctuationWord(f)
	}
	return strings.Join(fields, " ")
}

func stripPunctuationWord(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		_, ok := punctuationSet[r]
		return ok
	})
}

// RemoveSkipWords removes every occurrence of words (matched whole-word,
// unless ignoreWhitespace) from text, processing the longest words first so
// overlapping prefixes are handled correctly.
func RemoveSkipWords(text string, words []string, ignoreWhitespace bool) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	for _, word := range sorted {
		word = Text(word)
		if word == "" {
			continue
		}
		if ignoreWhitespace {
			text = strings.ReplaceAll(text, word, "")
			continue
		}
		pattern := `\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, "")
	}

	text = CollapseWhitespace(text)
	return strings.TrimSpace(text)
}
