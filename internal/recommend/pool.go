package recommend

import (
	"context"
	"sync"
)

// runIndexed executes count tasks on a bounded worker pool. Tasks receive
// their original index and write results into caller-owned slots, so output
// order is the input order regardless of completion order. Remaining tasks
// are skipped once the context is cancelled.
func runIndexed(ctx context.Context, workers, count int, task func(ctx context.Context, index int)) {
	if count <= 0 {
		return
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > count {
		workers = count
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for index := range indices {
				if ctx.Err() != nil {
					continue
				}
				task(ctx, index)
			}
		}()
	}
	for i := 0; i < count; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()
}
