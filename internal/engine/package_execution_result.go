package engine

import "pkgmedic/internal/data"

// PackageExecutionResult represents the outcome of gathering all planned
// evidence for a single package.
//
// It is emitted by the scheduler and consumed by the engine during
// streaming validation.
type PackageExecutionResult struct {
	PkgIndex int
	Data     data.EvidenceContext
	DepErrs  map[data.EvidenceKey]error
}
