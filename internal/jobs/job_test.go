package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

type recordedJob struct {
	fired chan struct{}
}

func (j *recordedJob) Execute() {
	close(j.fired)
}

func TestDispatchFiresAfterDelay(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)

	queue := make(JobQueue, 1)
	NewWorkerPool(1, queue).Start()

	scheduler := NewScheduler(queue, mockClock)

	job := &recordedJob{fired: make(chan struct{})}
	scheduler.Dispatch(job, 4*time.Second)

	select {
	case <-job.fired:
		t.Fatal("job fired before the delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	mockClock.Advance(4 * time.Second).MustWait(ctx)

	select {
	case <-job.fired:
	case <-time.After(time.Second):
		t.Fatal("job did not fire after the delay")
	}
}

func TestCancelStopsPendingJob(t *testing.T) {
	mockClock := quartz.NewMock(t)

	queue := make(JobQueue, 1)
	NewWorkerPool(1, queue).Start()

	scheduler := NewScheduler(queue, mockClock)

	job := &recordedJob{fired: make(chan struct{})}
	pending := scheduler.Dispatch(job, 4*time.Second)

	require.True(t, pending.Cancel())

	mockClock.Advance(4 * time.Second)

	select {
	case <-job.fired:
		t.Fatal("cancelled job still fired")
	case <-time.After(50 * time.Millisecond):
	}

	require.False(t, pending.Cancel())
}

func TestEnqueueRunsImmediately(t *testing.T) {
	queue := make(JobQueue, 1)
	NewWorkerPool(2, queue).Start()

	scheduler := NewScheduler(queue, quartz.NewReal())

	job := &recordedJob{fired: make(chan struct{})}
	scheduler.Enqueue(job)

	select {
	case <-job.fired:
	case <-time.After(time.Second):
		t.Fatal("enqueued job did not run")
	}
}
