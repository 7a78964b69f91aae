package services

import (
	"context"
	"errors"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-co-op/gocron"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrDuplicateJob = errors.New("job already registered")
)

// Schedule is either a fixed interval or a daily wall-clock time (UTC).
type Schedule struct {
	Every time.Duration
	At    string
}

func Interval(every time.Duration) Schedule {
	return Schedule{Every: every}
}

func DailyAt(at string) Schedule {
	return Schedule{At: at}
}

// Job represents a scheduled task that can be executed by the scheduler
type Job interface {
	Name() string
	Execute(ctx context.Context) error
	Schedule() Schedule
}

type SchedulerService struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	log       logger.Logger
	started   bool
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewSchedulerService() *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())

	return &SchedulerService{
		scheduler: gocron.NewScheduler(time.UTC),
		jobs:      make([]Job, 0),
		log:       logger.New("scheduler"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *SchedulerService) executeJob(job Job) {
	log := s.log.Function("executeJob")
	log.Info("Executing scheduled job", "job", job.Name())

	if err := job.Execute(s.ctx); err != nil {
		_ = log.Err("Job execution failed", err, "job", job.Name())
		return
	}
	log.Info("Job execution completed successfully", "job", job.Name())
}

func (s *SchedulerService) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("AddJob")

	if s.findJob(job.Name()) != nil {
		return log.Err("job name in use", ErrDuplicateJob, "job", job.Name())
	}

	schedule := job.Schedule()
	var err error
	switch {
	case schedule.At != "":
		_, err = s.scheduler.Every(1).Day().At(schedule.At).SingletonMode().Do(s.executeJob, job)
	case schedule.Every > 0:
		_, err = s.scheduler.Every(schedule.Every).SingletonMode().Do(s.executeJob, job)
	default:
		err = errors.New("job has no schedule")
	}

	if err != nil {
		return log.Err("failed to register job with scheduler", err, "job", job.Name())
	}

	s.jobs = append(s.jobs, job)
	log.Info("Job registered successfully", "job", job.Name())

	return nil
}

func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Start")

	if s.started {
		log.Info("Scheduler already started")
		return nil
	}

	if len(s.jobs) == 0 {
		log.Info("No jobs registered, scheduler will not start")
		return nil
	}

	log.Info("Starting scheduler", "jobCount", len(s.jobs))
	s.scheduler.StartAsync()
	s.started = true

	for _, job := range s.scheduler.Jobs() {
		log.Info("Job scheduled", "nextRun", job.NextRun())
	}

	return nil
}

func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Stop")

	if !s.started {
		log.Info("Scheduler not started, nothing to stop")
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	s.scheduler.Stop()
	s.started = false

	log.Info("Scheduler stopped successfully")
	return nil
}

func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *SchedulerService) GetJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// TriggerJobByName runs a registered job once, synchronously.
func (s *SchedulerService) TriggerJobByName(ctx context.Context, jobName string) error {
	s.mu.Lock()
	target := s.findJob(jobName)
	s.mu.Unlock()

	log := s.log.Function("TriggerJobByName")
	if target == nil {
		return log.Err("job not found", ErrJobNotFound, "job", jobName)
	}

	log.Info("Manually triggering job", "job", jobName)
	return target.Execute(ctx)
}

// findJob expects s.mu to be held.
func (s *SchedulerService) findJob(name string) Job {
	for _, job := range s.jobs {
		if job.Name() == name {
			return job
		}
	}
	return nil
}
