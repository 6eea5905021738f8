package jobs

import (
	"time"

	"github.com/coder/quartz"
)

type Job interface {
	Execute()
}

type JobQueue chan Job

type WorkerPool struct {
	workers []Worker
}

func NewWorkerPool(size int, queue JobQueue) *WorkerPool {
	workers := make([]Worker, size)
	for i := 0; i < size; i++ {
		workers[i] = NewWorker(queue)
	}
	return &WorkerPool{workers}
}

func (p *WorkerPool) Start() {
	for _, worker := range p.workers {
		worker.Start()
	}
}

type Worker struct {
	jobQueue JobQueue
}

func NewWorker(jobQueue JobQueue) Worker {
	return Worker{jobQueue}
}

func (w *Worker) Start() {
	go func() {
		for job := range w.jobQueue {
			job.Execute()
		}
	}()
}

// Scheduler dispatches jobs onto the queue after a delay. The clock is
// injected so delays can be driven synthetically in tests, and every
// dispatch is cancellable until it fires.
type Scheduler struct {
	queue JobQueue
	clock quartz.Clock
}

func NewScheduler(queue JobQueue, clock quartz.Clock) *Scheduler {
	return &Scheduler{
		queue: queue,
		clock: clock,
	}
}

func (s *Scheduler) Dispatch(job Job, delay time.Duration) *Pending {
	timer := s.clock.AfterFunc(delay, func() {
		s.queue <- job
	})

	return &Pending{timer: timer}
}

// Enqueue bypasses the delay and hands the job straight to the workers.
func (s *Scheduler) Enqueue(job Job) {
	s.queue <- job
}

type Pending struct {
	timer *quartz.Timer
}

// Cancel stops the pending dispatch. It reports false when the job already
// fired or was cancelled before.
func (p *Pending) Cancel() bool {
	return p.timer.Stop()
}
