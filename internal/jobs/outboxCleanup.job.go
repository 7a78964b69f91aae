package jobs

import (
	"context"
	"time"

	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const SENT_EMAIL_RETENTION = 30 * 24 * time.Hour

type OutboxCleanupJob struct {
	notifier  *services.NotifierService
	retention time.Duration
	log       logger.Logger
	schedule  services.Schedule
}

func NewOutboxCleanupJob(
	notifier *services.NotifierService,
	retention time.Duration,
	schedule services.Schedule,
) *OutboxCleanupJob {
	return &OutboxCleanupJob{
		notifier:  notifier,
		retention: retention,
		log:       logger.New("outboxCleanupJob"),
		schedule:  schedule,
	}
}

func (j *OutboxCleanupJob) Name() string {
	return "OutboxCleanup"
}

func (j *OutboxCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	removed, err := j.notifier.PurgeDelivered(ctx, j.retention)
	if err != nil {
		return log.Err("outbox cleanup failed", err)
	}

	log.Info("Outbox cleanup completed", "removed", removed)
	return nil
}

func (j *OutboxCleanupJob) Schedule() services.Schedule {
	return j.schedule
}
