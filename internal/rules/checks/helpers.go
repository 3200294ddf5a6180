package checks

import (
	"fmt"

	"pkgmedic/internal/data"
)

// evidence extracts a typed evidence value. A missing or mistyped value
// is an evaluation error, not an Issue: the rule declared the key, so
// absence means the run itself went wrong.
func evidence[T any](ev data.EvidenceContext, key data.EvidenceKey) (T, error) {
	var zero T
	val, ok := ev.Get(key)
	if !ok {
		return zero, fmt.Errorf("missing evidence: %s", key)
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected evidence type %T for %s", val, key)
	}
	return typed, nil
}
