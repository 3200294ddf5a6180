package data

// EvidenceContext provides gathered evidence to rules.
type EvidenceContext interface {
	Get(key EvidenceKey) (any, bool)
}

// MapEvidenceContext is a simple read-only map-based implementation of
// EvidenceContext.
type MapEvidenceContext struct {
	data map[EvidenceKey]any
}

func NewMapEvidenceContext(data map[EvidenceKey]any) *MapEvidenceContext {
	// A nil map is treated as an empty context.
	// Keeping it nil avoids hidden initialization and ensures the context is read-only.
	return &MapEvidenceContext{data: data}
}

func (c *MapEvidenceContext) Get(key EvidenceKey) (any, bool) {
	if c == nil {
		return nil, false
	}
	val, ok := c.data[key]
	return val, ok
}
