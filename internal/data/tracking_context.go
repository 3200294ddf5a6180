package data

import "sort"

// TrackingEvidenceContext wraps another EvidenceContext and records every
// evidence key that callers attempt to read via Get().
//
// This is primarily used by the engine to enforce the contract that rules
// must declare all evidence up front via Rule.Dependencies().
type TrackingEvidenceContext struct {
	inner    EvidenceContext
	accessed map[EvidenceKey]struct{}
}

func NewTrackingEvidenceContext(inner EvidenceContext) *TrackingEvidenceContext {
	return &TrackingEvidenceContext{
		inner:    inner,
		accessed: make(map[EvidenceKey]struct{}),
	}
}

func (c *TrackingEvidenceContext) Get(key EvidenceKey) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.accessed[key] = struct{}{}
	if c.inner == nil {
		return nil, false
	}
	return c.inner.Get(key)
}

func (c *TrackingEvidenceContext) AccessedKeys() []EvidenceKey {
	if c == nil {
		return nil
	}
	keys := make([]EvidenceKey, 0, len(c.accessed))
	for k := range c.accessed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
