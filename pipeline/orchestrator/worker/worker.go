package worker

import (
	"context"
	"time"

	"github.com/autocareer/autocareer/pipeline/orchestrator"
	"github.com/autocareer/autocareer/pipeline/orchestrator/orchestratorsrv"
	"github.com/autocareer/autocareer/pkg/logx"
)

// PipelineWorker consumes queued runs and executes them
type PipelineWorker struct {
	service *orchestratorsrv.PipelineService
	queue   orchestrator.JobQueue
	workers int
}

// NewPipelineWorker creates a worker pool over the run queue
func NewPipelineWorker(service *orchestratorsrv.PipelineService, queue orchestrator.JobQueue, workers int) *PipelineWorker {
	if workers <= 0 {
		workers = 1
	}
	return &PipelineWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

// Start launches the worker pool and the delayed-run mover. Workers stop
// when ctx is cancelled.
func (w *PipelineWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d pipeline workers", w.workers)

	go w.moveDelayedRuns(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processRuns(ctx, i)
	}
}

func (w *PipelineWorker) processRuns(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			task, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}
			if task == nil {
				// Timeout with nothing queued
				continue
			}

			logx.Infof("Worker %d processing run: %s", workerID, task.RunID)
			result, err := w.service.ExecuteRun(ctx, *task)
			if err != nil {
				logx.Errorf("Worker %d run %s failed: %v", workerID, task.RunID, err)
				continue
			}
			logx.Infof("Worker %d run %s done: analyzed=%d drafted=%d submitted=%d",
				workerID, task.RunID, result.Analyzed, result.Drafted, result.Submitted)
		}
	}
}

func (w *PipelineWorker) moveDelayedRuns(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed runs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed runs to ready queue", count)
			}
		}
	}
}
