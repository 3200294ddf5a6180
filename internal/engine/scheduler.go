package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"pkgmedic/internal/data"
	"pkgmedic/internal/gatherer"
)

type Scheduler struct {
	gatherer    *gatherer.Gatherer
	concurrency int
}

func NewScheduler(g *gatherer.Gatherer, concurrency int) (*Scheduler, error) {
	if g == nil {
		return nil, errors.New("gatherer is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{gatherer: g, concurrency: concurrency}, nil
}

// Execute streams per-package evidence-gathering completion results.
//
// Channel semantics:
//   - In the normal (non-canceled) case, exactly one PackageExecutionResult is sent per package.
//   - On context cancellation, the scheduler stops promptly; it may emit fewer than N results.
//   - The results channel and error channel are both closed reliably.
//   - The error channel is used for fatal errors / cancellation signals; per-key
//     gather failures are recorded on PackageExecutionResult.DepErrs.
func (s *Scheduler) Execute(ctx context.Context, plan *ValidationPlan) (<-chan PackageExecutionResult, <-chan error) {
	resultsCh := make(chan PackageExecutionResult)
	errCh := make(chan error, 1)

	go func() {
		defer close(resultsCh)
		defer close(errCh)

		trySendErr := func(err error) {
			if err == nil {
				return
			}
			select {
			case errCh <- err:
			default:
			}
		}

		if ctx == nil {
			trySendErr(errors.New("context is nil"))
			return
		}
		if plan == nil {
			trySendErr(errors.New("validation plan is nil"))
			return
		}
		if plan.PackagePlans == nil {
			trySendErr(errors.New("validation plan is not initialized (PackagePlans is nil); use NewValidationPlan"))
			return
		}
		if s == nil {
			trySendErr(errors.New("scheduler is nil"))
			return
		}
		if s.gatherer == nil {
			trySendErr(errors.New("scheduler gatherer is nil"))
			return
		}
		if s.concurrency <= 0 {
			trySendErr(fmt.Errorf("scheduler concurrency must be >= 1, got %d", s.concurrency))
			return
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		// Limit active packages (favor package completion).
		sem := make(chan struct{}, s.concurrency)
		var wg sync.WaitGroup

		indexes := make([]int, 0, len(plan.PackagePlans))
		for i := range plan.PackagePlans {
			indexes = append(indexes, i)
		}
		sort.Ints(indexes)

		var fatalErr error

	scheduleLoop:
		for _, index := range indexes {
			if runCtx.Err() != nil {
				break
			}
			pp := plan.PackagePlans[index]
			if pp == nil {
				fatalErr = errors.New("nil package plan")
				cancel()
				break
			}

			select {
			case sem <- struct{}{}:
				// acquired
			case <-runCtx.Done():
				break scheduleLoop
			}

			wg.Add(1)
			go func(index int, pp *PackagePlan) {
				defer wg.Done()
				defer func() { <-sem }()

				dataMap := make(map[data.EvidenceKey]any)
				depErrs := make(map[data.EvidenceKey]error)

				for _, key := range pp.SortedDependencies() {
					if runCtx.Err() != nil {
						return
					}
					val, err := s.gatherer.Gather(runCtx, pp.Pkg, key)
					if err != nil {
						depErrs[key] = err
						continue
					}
					dataMap[key] = val
				}

				if runCtx.Err() != nil {
					return
				}

				res := PackageExecutionResult{
					PkgIndex: index,
					Data:     data.NewMapEvidenceContext(dataMap),
					DepErrs:  depErrs,
				}
				select {
				case resultsCh <- res:
				case <-runCtx.Done():
					return
				}
			}(index, pp)
		}

		wg.Wait()
		if fatalErr != nil {
			trySendErr(fatalErr)
			return
		}
		trySendErr(ctx.Err())
	}()

	return resultsCh, errCh
}
