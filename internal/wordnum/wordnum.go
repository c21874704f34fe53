// Package wordnum converts integers to their number-word forms, the way an
// external rule-based-number-formatting engine would, so a RangeSlotList
// with words=true can recognize "twenty one" as well as "21".
package wordnum

import (
	"fmt"
	"strings"
	"sync"
)

// Engine formats an integer into the number-word forms a given language
// would accept, analogous in role to an external RBNF (rule-based number
// formatting) engine.
type Engine interface {
	// Format returns every distinct surface form for n (e.g. both a
	// "cardinal" and any other ruleset's spelling), duplicates removed.
	Format(n int) []string
}

var (
	engineCacheMu sync.Mutex
	engineCache   = map[string]Engine{}
)

// ForLanguage returns (and memoizes) the Engine for a BCP-47 language tag.
// Unrecognized languages fall back to English rather than failing outright.
func ForLanguage(language string) Engine {
	engineCacheMu.Lock()
	defer engineCacheMu.Unlock()

	if e, ok := engineCache[language]; ok {
		return e
	}

	var e Engine
	switch strings.ToLower(strings.SplitN(language, "-", 2)[0]) {
	case "en", "":
		e = newEnglishEngine()
	default:
		e = newEnglishEngine()
	}
	engineCache[language] = e
	return e
}

var (
	ones = map[int]string{
		0: "zero", 1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
		6: "six", 7: "seven", 8: "eight", 9: "nine", 10: "ten",
		11: "eleven", 12: "twelve", 13: "thirteen", 14: "fourteen",
		15: "fifteen", 16: "sixteen", 17: "seventeen", 18: "eighteen",
		19: "nineteen",
	}
	tens = map[int]string{
		20: "twenty", 30: "thirty", 40: "forty", 50: "fifty",
		60: "sixty", 70: "seventy", 80: "eighty", 90: "ninety",
	}
)

type englishEngine struct{}

func newEnglishEngine() Engine {
	return englishEngine{}
}

// Format returns the cardinal spelling of n, with a second form using a
// hyphen in place of the tens/ones separator space when one exists (e.g.
// both "twenty one" and "twenty-one"), matching how compound number words
// are commonly written either way.
func (englishEngine) Format(n int) []string {
	spaced := cardinal(n)
	hyphenated := strings.ReplaceAll(spaced, " ", "-")
	if hyphenated == spaced {
		return []string{spaced}
	}
	return []string{spaced, hyphenated}
}

func cardinal(n int) string {
	if n < 0 {
		return "negative " + cardinal(-n)
	}
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		base := (n / 10) * 10
		rem := n % 10
		if rem == 0 {
			return tens[base]
		}
		return tens[base] + " " + ones[rem]
	}
	if n < 1000 {
		base := n / 100
		rem := n % 100
		if rem == 0 {
			return fmt.Sprintf("%s hundred", ones[base])
		}
		return fmt.Sprintf("%s hundred %s", ones[base], cardinal(rem))
	}
	if n < 1_000_000 {
		base := n / 1000
		rem := n % 1000
		if rem == 0 {
			return fmt.Sprintf("%s thousand", cardinal(base))
		}
		return fmt.Sprintf("%s thousand %s", cardinal(base), cardinal(rem))
	}
	// Beyond this the spec's ranges are never realistically this large;
	// fall back to a literal digit string rather than guessing scale names.
	return fmt.Sprintf("%d", n)
}
