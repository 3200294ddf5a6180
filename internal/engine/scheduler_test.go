package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkgmedic/internal/data"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/pypkg"
)

type nopRunner struct{}

func (nopRunner) Run(context.Context, string, []string, ...execx.Option) (execx.Result, error) {
	return execx.Result{}, nil
}

type staticGatherer struct {
	key data.EvidenceKey
	val any
	err error
}

func (s *staticGatherer) Key() data.EvidenceKey   { return s.key }
func (s *staticGatherer) Scope() data.GatherScope { return data.ScopePackage }
func (s *staticGatherer) Gather(context.Context, *pypkg.Package, *gatherer.Gatherer) (any, error) {
	return s.val, s.err
}

func TestScheduler_Execute_Stream_SinglePackageSuccess(t *testing.T) {
	okKey := data.EvidenceKey("test.sched_ok")
	gatherer.RegisterEvidenceGatherer(&staticGatherer{key: okKey, val: "hello"})

	g := gatherer.NewGatherer(nopRunner{}, gatherer.Options{}, nil)
	scheduler, err := NewScheduler(g, 2)
	require.NoError(t, err)

	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	plan := NewValidationPlan()
	plan.PackagePlans[0] = &PackagePlan{
		Pkg: pkg,
		Dependencies: map[data.EvidenceKey]data.EvidenceRequest{
			okKey: {Key: okKey},
		},
	}

	resCh, errCh := scheduler.Execute(context.Background(), plan)

	var results []PackageExecutionResult
	for r := range resCh {
		results = append(results, r)
	}
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].PkgIndex)
	assert.Empty(t, results[0].DepErrs)

	v, ok := results[0].Data.Get(okKey)
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	for err := range errCh {
		require.NoError(t, err)
	}
}

func TestScheduler_Execute_Stream_SurfacesGatherErrors(t *testing.T) {
	okKey := data.EvidenceKey("test.sched_ok2")
	badKey := data.EvidenceKey("test.sched_bad")
	gatherer.RegisterEvidenceGatherer(&staticGatherer{key: okKey, val: 42})
	gatherer.RegisterEvidenceGatherer(&staticGatherer{key: badKey, err: errors.New("boom")})

	g := gatherer.NewGatherer(nopRunner{}, gatherer.Options{}, nil)
	scheduler, err := NewScheduler(g, 1)
	require.NoError(t, err)

	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	plan := NewValidationPlan()
	plan.PackagePlans[0] = &PackagePlan{
		Pkg: pkg,
		Dependencies: map[data.EvidenceKey]data.EvidenceRequest{
			okKey:  {Key: okKey},
			badKey: {Key: badKey},
		},
	}

	resCh, errCh := scheduler.Execute(context.Background(), plan)

	var results []PackageExecutionResult
	for r := range resCh {
		results = append(results, r)
	}
	require.Len(t, results, 1)

	_, ok := results[0].Data.Get(okKey)
	assert.True(t, ok)
	_, ok = results[0].Data.Get(badKey)
	assert.False(t, ok)

	require.Contains(t, results[0].DepErrs, badKey)
	assert.ErrorContains(t, results[0].DepErrs[badKey], "boom")

	for err := range errCh {
		require.NoError(t, err)
	}
}

func TestScheduler_Execute_NilPlan(t *testing.T) {
	g := gatherer.NewGatherer(nopRunner{}, gatherer.Options{}, nil)
	scheduler, err := NewScheduler(g, 1)
	require.NoError(t, err)

	resCh, errCh := scheduler.Execute(context.Background(), nil)
	for range resCh {
		t.Fatal("expected no results for nil plan")
	}

	var got error
	for err := range errCh {
		got = err
	}
	require.Error(t, got)
}

func TestScheduler_Execute_Canceled(t *testing.T) {
	okKey := data.EvidenceKey("test.sched_canceled")
	gatherer.RegisterEvidenceGatherer(&staticGatherer{key: okKey, val: 1})

	g := gatherer.NewGatherer(nopRunner{}, gatherer.Options{}, nil)
	scheduler, err := NewScheduler(g, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := NewValidationPlan()
	plan.PackagePlans[0] = &PackagePlan{
		Pkg: &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"},
		Dependencies: map[data.EvidenceKey]data.EvidenceRequest{
			okKey: {Key: okKey},
		},
	}

	resCh, errCh := scheduler.Execute(ctx, plan)
	for range resCh {
	}

	var got error
	for err := range errCh {
		got = err
	}
	assert.ErrorIs(t, got, context.Canceled)
}

func TestNewScheduler_Validation(t *testing.T) {
	g := gatherer.NewGatherer(nopRunner{}, gatherer.Options{}, nil)

	_, err := NewScheduler(nil, 1)
	assert.Error(t, err)

	_, err = NewScheduler(g, 0)
	assert.Error(t, err)
}
