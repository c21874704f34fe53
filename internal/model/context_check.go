package model

// CheckRequiredContext reports whether matchContext satisfies every
// required key/value in requiredContext. When allowMissingKeys is true,
// keys absent from matchContext are treated as satisfied; this is used both
// when filtering slot-list values (most values won't carry every key) and
// when pruning candidates before a match has run (more context may appear
// during matching).
func CheckRequiredContext(requiredContext, matchContext map[string]any, allowMissingKeys bool) bool {
	for key, requiredValue := range requiredContext {
		actualValue, present := matchContext[key]
		if !present {
			if allowMissingKeys {
				continue
			}
			return false
		}

		requiredValue = UnwrapContextValue(requiredValue)
		actualValue = UnwrapContextValue(actualValue)

		if !ContextValueMatches(requiredValue, actualValue) {
			return false
		}
	}
	return true
}

// CheckExcludedContext reports whether matchContext avoids every key/value
// in excludedContext.
func CheckExcludedContext(excludedContext, matchContext map[string]any) bool {
	for key, excludedValue := range excludedContext {
		actualValue, present := matchContext[key]
		if !present {
			continue
		}

		excludedValue = UnwrapContextValue(excludedValue)
		actualValue = UnwrapContextValue(actualValue)

		if ContextValueMatches(excludedValue, actualValue) {
			return false
		}
	}
	return true
}

// UnwrapContextValue unpacks the { value: v, slot: true } form that
// requires_context/excludes_context entries may use, returning the plain
// value either way.
func UnwrapContextValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		if inner, ok := m["value"]; ok {
			return inner
		}
		return nil
	}
	return v
}

// IsSlotContextValue reports whether v uses the { value: v, slot: true }
// form, meaning a match should copy the context value into a MatchEntity.
func IsSlotContextValue(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	slot, ok := m["slot"].(bool)
	return ok && slot
}

// ContextValueMatches reports whether actual satisfies expected: nil means
// "any value so long as the key is present", a slice means membership, and
// anything else is compared for equality.
func ContextValueMatches(expected, actual any) bool {
	if expected == nil {
		return true
	}

	switch want := expected.(type) {
	case []any:
		for _, item := range want {
			if item == actual {
				return true
			}
		}
		return false
	case string:
		return actual == want
	default:
		return actual == expected
	}
}
