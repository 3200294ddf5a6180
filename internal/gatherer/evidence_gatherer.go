package gatherer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pkgmedic/internal/data"
	"pkgmedic/internal/pypkg"
)

type EvidenceGatherer interface {
	Key() data.EvidenceKey
	Scope() data.GatherScope
	Gather(ctx context.Context, pkg *pypkg.Package, g *Gatherer) (any, error)
}

var (
	evidenceGathererRegistry = make(map[data.EvidenceKey]EvidenceGatherer)
	evidenceGathererMu       sync.RWMutex
)

func RegisterEvidenceGatherer(eg EvidenceGatherer) {
	if eg == nil {
		panic("evidence gatherer is nil")
	}
	k := eg.Key()
	if k == "" {
		panic("evidence gatherer key is empty")
	}

	evidenceGathererMu.Lock()
	defer evidenceGathererMu.Unlock()
	if _, exists := evidenceGathererRegistry[k]; exists {
		panic(fmt.Sprintf("evidence gatherer %s already registered", k))
	}
	evidenceGathererRegistry[k] = eg
}

func ResolveEvidenceGatherer(key data.EvidenceKey) (EvidenceGatherer, bool) {
	evidenceGathererMu.RLock()
	defer evidenceGathererMu.RUnlock()
	eg, ok := evidenceGathererRegistry[key]
	return eg, ok
}

func ListEvidenceGatherers() []EvidenceGatherer {
	evidenceGathererMu.RLock()
	defer evidenceGathererMu.RUnlock()

	all := make([]EvidenceGatherer, 0, len(evidenceGathererRegistry))
	for _, eg := range evidenceGathererRegistry {
		all = append(all, eg)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Key() < all[j].Key()
	})
	return all
}
