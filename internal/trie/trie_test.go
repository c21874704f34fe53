package trie

import "testing"

func TestFindSingleWord(t *testing.T) {
	tr := New()
	tr.Insert("two", 2)

	matches := tr.Find("two", true)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %+v", len(matches), matches)
	}
	if matches[0].Value != 2 || matches[0].EndPos != 3 {
		t.Fatalf("unexpected match: %+v", matches[0])
	}
}

func TestFindOverlappingFromDifferentStarts(t *testing.T) {
	tr := New()
	tr.Insert("one", 1)
	tr.Insert("two", 2)

	matches := tr.Find("one two", true)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
}

func TestFindDedupesHyphenAndSpaceForms(t *testing.T) {
	tr := New()
	// Two distinct surface forms of the same value, as range-word insertion
	// does for compound numbers.
	tr.Insert("twenty-one", 21)
	tr.Insert("twenty one", 21)

	matches := tr.Find("twenty-one", true)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for hyphen form, got %d: %+v", len(matches), matches)
	}
	if matches[0].Value != 21 {
		t.Fatalf("expected value 21, got %v", matches[0].Value)
	}

	matches = tr.Find("twenty one", true)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for space form, got %d: %+v", len(matches), matches)
	}
}

func TestFindNonUniqueYieldsAllTerminals(t *testing.T) {
	tr := New()
	tr.Insert("a", "A")
	tr.Insert("ab", "AB")

	matches := tr.Find("ab", false)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches without dedup, got %d: %+v", len(matches), matches)
	}
}

func TestFindNoMatch(t *testing.T) {
	tr := New()
	tr.Insert("hello", 1)

	matches := tr.Find("goodbye", true)
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}
