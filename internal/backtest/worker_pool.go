package backtest

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/quantbench/invest-backtest/pkg/types"
)

// WorkerPool runs four-strategy simulations in parallel. Simulations are
// pure functions over a shared read-only series, so no synchronization is
// needed beyond the job and result channels.
type WorkerPool struct {
	workerCount int
	jobQueue    chan SimulationJob
	resultQueue chan SimulationResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// SimulationJob is one full four-strategy run over a window.
type SimulationJob struct {
	ID     string
	Series types.PriceSeries
	Config Config
}

// SimulationResult carries the four strategy results for one job.
type SimulationResult struct {
	ID       string
	Results  []Result
	Duration time.Duration
}

// NewWorkerPool creates a pool; workerCount <= 0 defaults to NumCPU.
func NewWorkerPool(workerCount int, jobBufferSize int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workerCount: workerCount,
		jobQueue:    make(chan SimulationJob, jobBufferSize),
		resultQueue: make(chan SimulationResult, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop closes the job queue, waits for in-flight jobs to finish, and closes
// the result queue so result consumers terminate.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// SubmitJob queues a job, returning the context error if the pool has been
// torn down.
func (wp *WorkerPool) SubmitJob(job SimulationJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// GetResults returns the channel completed jobs arrive on. It is closed by
// Stop once all workers have drained.
func (wp *WorkerPool) GetResults() <-chan SimulationResult {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			result := wp.processJob(job)

			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob runs the four strategies sequentially; parallelism comes from
// the pool itself.
func (wp *WorkerPool) processJob(job SimulationJob) SimulationResult {
	startTime := time.Now()

	results := []Result{
		RunDCA(job.Series, job.Config),
		RunLumpSum(job.Series, job.Config),
		RunDipBuy(job.Series, job.Config),
		RunTrendDCA(job.Series, job.Config),
	}

	return SimulationResult{
		ID:       job.ID,
		Results:  results,
		Duration: time.Since(startTime),
	}
}
