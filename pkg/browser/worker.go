package browser

import (
	"context"
)

type job func(ctx context.Context)

const jobQueueSize = 16

// worker runs jobs one at a time in submission order, off the UI goroutine.
type worker struct {
	ctx  context.Context
	jobs chan job
}

func startWorker(ctx context.Context) *worker {
	w := &worker{
		ctx:  ctx,
		jobs: make(chan job, jobQueueSize),
	}
	go w.run(ctx)
	return w
}

func (w *worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-w.jobs:
			j(ctx)
		}
	}
}

// submit queues j, waiting for a free slot when the queue is full.
// It fails only once the worker has been stopped.
func (w *worker) submit(j job) error {
	select {
	case w.jobs <- j:
		return nil
	case <-w.ctx.Done():
		return w.ctx.Err()
	}
}
