package jobs

import (
	"context"

	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// EmailRetryJob resends status-change emails whose first delivery failed.
type EmailRetryJob struct {
	notifier *services.NotifierService
	log      logger.Logger
	schedule services.Schedule
}

func NewEmailRetryJob(notifier *services.NotifierService, schedule services.Schedule) *EmailRetryJob {
	return &EmailRetryJob{
		notifier: notifier,
		log:      logger.New("emailRetryJob"),
		schedule: schedule,
	}
}

func (j *EmailRetryJob) Name() string {
	return "EmailRetry"
}

func (j *EmailRetryJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	sent, failed, err := j.notifier.RetryPending(ctx)
	if err != nil {
		return log.Err("email retry failed", err)
	}

	if sent > 0 || failed > 0 {
		log.Info("Email retry completed", "sent", sent, "failed", failed)
	}
	return nil
}

func (j *EmailRetryJob) Schedule() services.Schedule {
	return j.schedule
}
