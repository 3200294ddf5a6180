package data

// EvidenceKey uniquely identifies a piece of gathered evidence.
type EvidenceKey string

// EvidenceRequest represents a request for specific evidence with optional
// parameters.
type EvidenceRequest struct {
	Key    EvidenceKey
	Params map[string]string
}

// GatherScope describes how evidence is cached and deduplicated.
type GatherScope string

const (
	// ScopePackage evidence is specific to one package under validation.
	ScopePackage GatherScope = "package"

	// ScopeEnv evidence describes the Python environment and is shared by
	// every package validated in the same run.
	ScopeEnv GatherScope = "env"
)
