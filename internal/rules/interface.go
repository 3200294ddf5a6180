package rules

import (
	"context"

	"pkgmedic/internal/data"
	"pkgmedic/internal/pypkg"
)

// Group identifies a validation domain. Groups are evaluated in the order
// returned by Groups(); rules inside a sequential group form an ordered
// chain where each rule assumes the previous one passed.
type Group string

const (
	GroupSetup        Group = "setup"
	GroupSelftest     Group = "selftest"
	GroupPackageFiles Group = "package-files"
	GroupTests        Group = "tests"
)

// Groups returns all validation domains in evaluation order.
func Groups() []Group {
	return []Group{GroupSetup, GroupSelftest, GroupPackageFiles, GroupTests}
}

// Sequential reports whether evaluation of the group stops at the first
// rule that does not pass.
func (g Group) Sequential() bool {
	return g == GroupSelftest || g == GroupTests
}

type Rule interface {
	ID() string
	Title() string
	Description() string
	Group() Group

	// Dependencies declares the evidence required to evaluate this rule
	// against the given package.
	Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error)

	// Evaluate runs rule logic using only the EvidenceContext.
	// Rules MUST NOT touch the filesystem or spawn subprocesses.
	Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (Issue, error)
}

// SequencedRule is implemented by rules in sequential groups to fix their
// position in the chain. Lower comes first.
type SequencedRule interface {
	Rule
	Seq() int
}

type Option struct {
	Name        string
	Description string
	Default     string
}

type ConfigurableRule interface {
	Rule
	Options() []Option
	Configure(opts map[string]string) error
}
