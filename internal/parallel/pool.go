// Package parallel runs independent puzzle solves on a bounded set of
// goroutines.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed number of goroutines. Submit blocks once the
// task buffer is full, so a batch of many puzzles never queues unbounded
// work.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a pool with maxWorkers goroutines.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}
	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the number of goroutines in the pool.
func (wp *WorkerPool) Workers() int { return wp.maxWorkers }

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()
	for task := range wp.taskChan {
		if task != nil {
			task()
		}
	}
}

// Submit queues task. It blocks while the buffer is full and fails when
// ctx is done or the pool has been shut down.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting tasks and waits until every queued task has
// run. Submit must not be called concurrently with Shutdown.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		close(wp.taskChan)
		wp.workerWg.Wait()
	})
}

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// Map runs fn for every index in [0, n) on the pool and waits for all of
// them. Results are stored by index, so the output order matches the
// input order regardless of scheduling. It stops submitting once ctx is
// done and returns the context error; indexes never submitted keep their
// zero value.
func Map[T any](ctx context.Context, wp *WorkerPool, n int, fn func(i int) T) ([]T, error) {
	out := make([]T, n)
	var wg sync.WaitGroup
	var err error
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		if err = wp.Submit(ctx, func() {
			defer wg.Done()
			out[i] = fn(i)
		}); err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()
	return out, err
}
