package engine

import (
	"context"
	"fmt"
	"sort"

	"pkgmedic/internal/data"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

type ValidationPlan struct {
	PackagePlans map[int]*PackagePlan
}

type PackagePlan struct {
	Pkg          *pypkg.Package
	Dependencies map[data.EvidenceKey]data.EvidenceRequest
	Rules        []rules.Rule
}

func NewValidationPlan() *ValidationPlan {
	return &ValidationPlan{
		PackagePlans: make(map[int]*PackagePlan),
	}
}

func (p *ValidationPlan) AddPackage(ctx context.Context, index int, pkg *pypkg.Package, selectedRules []rules.Rule) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}
	if p == nil {
		return fmt.Errorf("validation plan is nil")
	}
	if p.PackagePlans == nil {
		return fmt.Errorf("validation plan is not initialized (PackagePlans is nil); use NewValidationPlan")
	}
	if pkg == nil {
		return fmt.Errorf("package is nil at index %d", index)
	}

	pp := &PackagePlan{
		Pkg:          pkg,
		Dependencies: make(map[data.EvidenceKey]data.EvidenceRequest),
		Rules:        selectedRules,
	}

	for _, r := range selectedRules {
		deps, err := r.Dependencies(ctx, pkg)
		if err != nil {
			return fmt.Errorf("failed to get dependencies for rule %s: %w", r.ID(), err)
		}

		for _, d := range deps {
			// Simple deduplication by key.
			if _, exists := pp.Dependencies[d]; !exists {
				pp.Dependencies[d] = data.EvidenceRequest{Key: d}
			}
		}
	}

	p.PackagePlans[index] = pp
	return nil
}

// SortedDependencies returns the evidence keys sorted by gather priority
// (cheap parses first, subprocess runs last).
func (pp *PackagePlan) SortedDependencies() []data.EvidenceKey {
	keys := make([]data.EvidenceKey, 0, len(pp.Dependencies))
	for k := range pp.Dependencies {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		p1 := data.Priority(keys[i])
		p2 := data.Priority(keys[j])
		if p1 != p2 {
			return p1 < p2
		}
		return keys[i] < keys[j] // Stable sort for same priority
	})

	return keys
}
