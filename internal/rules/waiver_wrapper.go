package rules

import (
	"context"

	"pkgmedic/internal/data"
	"pkgmedic/internal/pypkg"
)

// WaiverWrapper wraps a Rule to provide automatic waiver functionality.
type WaiverWrapper struct {
	Rule
	waiver Waiver
}

// ID returns the inner rule's ID.
func (w *WaiverWrapper) ID() string {
	return w.Rule.ID()
}

// Title returns the inner rule's Title.
func (w *WaiverWrapper) Title() string {
	return w.Rule.Title()
}

// Description returns the inner rule's Description.
func (w *WaiverWrapper) Description() string {
	return w.Rule.Description()
}

// Group returns the inner rule's Group.
func (w *WaiverWrapper) Group() Group {
	return w.Rule.Group()
}

// Seq returns the inner rule's sequence position, if any.
func (w *WaiverWrapper) Seq() int {
	if sr, ok := w.Rule.(SequencedRule); ok {
		return sr.Seq()
	}
	return 0
}

// Dependencies returns the inner rule's Dependencies.
func (w *WaiverWrapper) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return w.Rule.Dependencies(ctx, pkg)
}

// Evaluate calls the inner rule's Evaluate and then applies the waiver logic.
func (w *WaiverWrapper) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (Issue, error) {
	issue, err := w.Rule.Evaluate(ctx, pkg, ev)
	if err != nil {
		return issue, err
	}
	return w.waiver.CheckIssue(pkg, issue), nil
}

// Options returns the combined options of the waiver and the inner rule
// (if configurable).
func (w *WaiverWrapper) Options() []Option {
	opts := w.waiver.Options()
	if cr, ok := w.Rule.(ConfigurableRule); ok {
		opts = append(opts, cr.Options()...)
	}
	return opts
}

// Configure configures the waiver and the inner rule (if configurable).
func (w *WaiverWrapper) Configure(opts map[string]string) error {
	w.waiver.Configure(opts)
	if cr, ok := w.Rule.(ConfigurableRule); ok {
		return cr.Configure(opts)
	}
	return nil
}
