package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// workerPool runs tile tasks on at most numWorkers goroutines. The first
// task error cancels the pool's context and is returned from Wait.
type workerPool struct {
	group      *errgroup.Group
	ctx        context.Context
	numWorkers int
}

func newWorkerPool(ctx context.Context, numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)

	return &workerPool{
		group:      group,
		ctx:        groupCtx,
		numWorkers: numWorkers,
	}
}

// Submit queues task, blocking while all workers are busy. It reports
// false once the pool has been cancelled.
func (wp *workerPool) Submit(task func(ctx context.Context) error) bool {
	if wp.ctx.Err() != nil {
		return false
	}
	wp.group.Go(func() error {
		if err := wp.ctx.Err(); err != nil {
			return err
		}
		return task(wp.ctx)
	})
	return true
}

// Wait blocks until every submitted task is done
func (wp *workerPool) Wait() error {
	return wp.group.Wait()
}

func (wp *workerPool) NumWorkers() int {
	return wp.numWorkers
}
