package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	schedule Schedule
	runs     int
}

func (j *countingJob) Name() string                      { return j.name }
func (j *countingJob) Schedule() Schedule                { return j.schedule }
func (j *countingJob) Execute(ctx context.Context) error { j.runs++; return nil }

func TestSchedulerService_AddAndTrigger(t *testing.T) {
	scheduler := NewSchedulerService()
	job := &countingJob{name: "email-retry", schedule: Interval(time.Hour)}

	require.NoError(t, scheduler.AddJob(job))
	assert.Equal(t, 1, scheduler.GetJobCount())

	require.NoError(t, scheduler.TriggerJobByName(context.Background(), "email-retry"))
	assert.Equal(t, 1, job.runs)

	err := scheduler.TriggerJobByName(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)

	err = scheduler.AddJob(&countingJob{name: "email-retry", schedule: Interval(time.Minute)})
	assert.ErrorIs(t, err, ErrDuplicateJob)
	assert.Equal(t, 1, scheduler.GetJobCount())
}

func TestSchedulerService_RejectsEmptySchedule(t *testing.T) {
	scheduler := NewSchedulerService()
	err := scheduler.AddJob(&countingJob{name: "broken"})
	assert.Error(t, err)
	assert.Zero(t, scheduler.GetJobCount())
}

func TestSchedulerService_StartStop(t *testing.T) {
	scheduler := NewSchedulerService()
	ctx := context.Background()

	require.NoError(t, scheduler.Start(ctx))
	assert.False(t, scheduler.IsRunning(), "no jobs means no start")

	require.NoError(t, scheduler.AddJob(&countingJob{name: "daily", schedule: DailyAt("02:00")}))
	require.NoError(t, scheduler.Start(ctx))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(ctx))
	assert.False(t, scheduler.IsRunning())
}
