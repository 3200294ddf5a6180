package gatherer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkgmedic/internal/data"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/pypkg"
)

type nopRunner struct{}

func (nopRunner) Run(context.Context, string, []string, ...execx.Option) (execx.Result, error) {
	return execx.Result{}, nil
}

type countingGatherer struct {
	key   data.EvidenceKey
	calls int
}

func (c *countingGatherer) Key() data.EvidenceKey      { return c.key }
func (c *countingGatherer) Scope() data.GatherScope    { return data.ScopePackage }
func (c *countingGatherer) Gather(context.Context, *pypkg.Package, *Gatherer) (any, error) {
	c.calls++
	return c.calls, nil
}

type cyclicGatherer struct {
	key data.EvidenceKey
}

func (c *cyclicGatherer) Key() data.EvidenceKey   { return c.key }
func (c *cyclicGatherer) Scope() data.GatherScope { return data.ScopePackage }
func (c *cyclicGatherer) Gather(ctx context.Context, pkg *pypkg.Package, g *Gatherer) (any, error) {
	return g.Gather(ctx, pkg, c.key)
}

func TestGatherCachesPerPackage(t *testing.T) {
	impl := &countingGatherer{key: "test.counting"}
	RegisterEvidenceGatherer(impl)

	g := NewGatherer(nopRunner{}, Options{}, nil)
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}
	other := &pypkg.Package{Name: "other_app", Path: "/tmp/other_app"}

	v1, err := g.Gather(context.Background(), pkg, impl.key)
	require.NoError(t, err)
	v2, err := g.Gather(context.Background(), pkg, impl.key)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, impl.calls)

	_, err = g.Gather(context.Background(), other, impl.key)
	require.NoError(t, err)
	assert.Equal(t, 2, impl.calls)
}

func TestGatherDetectsCycles(t *testing.T) {
	impl := &cyclicGatherer{key: "test.cyclic"}
	RegisterEvidenceGatherer(impl)

	g := NewGatherer(nopRunner{}, Options{}, nil)
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}

	_, err := g.Gather(context.Background(), pkg, impl.key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency cycle")
}

func TestGatherUnknownKey(t *testing.T) {
	g := NewGatherer(nopRunner{}, Options{}, nil)
	pkg := &pypkg.Package{Name: "my_app", Path: "/tmp/my_app"}

	_, err := g.Gather(context.Background(), pkg, "test.unregistered")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported evidence key")
}
