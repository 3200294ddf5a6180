package gatherer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pkgmedic/internal/data"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/pyenv"
	"pkgmedic/internal/pypkg"
)

// Options parameterize evidence gathering for a run.
type Options struct {
	// AppConfigPath is an explicit app.config passed to selftest runs.
	AppConfigPath string

	// SelftestTimeout bounds a single selftest subprocess.
	SelftestTimeout time.Duration

	// ToxTimeout bounds a single tox subprocess.
	ToxTimeout time.Duration

	// Python is the interpreter executable to use.
	Python string
}

type Gatherer struct {
	runner execx.Runner
	env    *pyenv.Inspector
	opts   Options
	log    *zap.Logger
	group  Group
	cache  *Cache
}

type gatherChainKey struct{}

func NewGatherer(runner execx.Runner, opts Options, log *zap.Logger) *Gatherer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gatherer{
		runner: runner,
		env:    pyenv.NewInspector(runner, opts.Python),
		opts:   opts,
		log:    log,
		cache:  NewCache(),
	}
}

func (g *Gatherer) Runner() execx.Runner {
	return g.runner
}

func (g *Gatherer) Env() *pyenv.Inspector {
	return g.env
}

func (g *Gatherer) Options() Options {
	return g.opts
}

func (g *Gatherer) Log() *zap.Logger {
	return g.log
}

func (g *Gatherer) Gather(ctx context.Context, pkg *pypkg.Package, key data.EvidenceKey) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Gather: nil context")
	}
	if g == nil {
		return nil, fmt.Errorf("Gather: nil Gatherer")
	}
	if g.runner == nil {
		return nil, fmt.Errorf("Gather: nil runner (use NewGatherer)")
	}
	if g.cache == nil {
		return nil, fmt.Errorf("Gather: nil cache (use NewGatherer)")
	}
	if pkg == nil {
		return nil, fmt.Errorf("Gather: nil package")
	}
	if key == "" {
		return nil, fmt.Errorf("Gather: empty evidence key")
	}

	gatherImpl, ok := ResolveEvidenceGatherer(key)
	if !ok {
		return nil, fmt.Errorf("unsupported evidence key: %s", key)
	}

	// Cache key (must be deterministic)
	flightKey, err := makeFlightKey(pkg, gatherImpl.Scope(), key)
	if err != nil {
		return nil, err
	}

	ctx, err = withGatherChain(ctx, flightKey)
	if err != nil {
		return nil, err
	}

	// Cache lookup
	if val, ok := g.cache.Get(flightKey); ok {
		return val, nil
	}

	// Single-flight (dedupe concurrent identical requests)
	val, err, _ := g.group.Do(flightKey, func() (interface{}, error) {
		return gatherImpl.Gather(ctx, pkg, g)
	})

	if err == nil {
		g.cache.Set(flightKey, val)
	}

	return val, err
}

func withGatherChain(ctx context.Context, flightKey string) (context.Context, error) {
	chain := getGatherChain(ctx)
	for _, existing := range chain {
		if existing == flightKey {
			return nil, fmt.Errorf("Gather: dependency cycle detected: %s -> %s", strings.Join(chain, " -> "), flightKey)
		}
	}

	updated := make([]string, 0, len(chain)+1)
	updated = append(updated, chain...)
	updated = append(updated, flightKey)
	return context.WithValue(ctx, gatherChainKey{}, updated), nil
}

func getGatherChain(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	v := ctx.Value(gatherChainKey{})
	chain, ok := v.([]string)
	if !ok {
		return nil
	}
	return chain
}

func makeFlightKey(pkg *pypkg.Package, scope data.GatherScope, key data.EvidenceKey) (string, error) {
	switch scope {
	case data.ScopeEnv:
		return "env:" + string(key), nil
	case data.ScopePackage:
		if pkg.Path == "" {
			return "", fmt.Errorf("Gather: package path is required for package-scoped evidence: %s", key)
		}
		return strings.ToLower(pkg.Path) + ":" + string(key), nil
	default:
		return "", fmt.Errorf("Gather: unknown gather scope %q for evidence: %s", scope, key)
	}
}
