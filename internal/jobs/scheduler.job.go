package jobs

import (
	"estatehub/config"
	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	svc services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	emailRetryJob := NewEmailRetryJob(svc.Notifier, services.Interval(config.EmailRetryInterval))
	if err := schedulerService.AddJob(emailRetryJob); err != nil {
		return log.Err("failed to register email retry job", err)
	}
	log.Info("Registered email retry job", "interval", config.EmailRetryInterval)

	outboxCleanupJob := NewOutboxCleanupJob(
		svc.Notifier,
		SENT_EMAIL_RETENTION,
		services.DailyAt("02:00"),
	)
	if err := schedulerService.AddJob(outboxCleanupJob); err != nil {
		return log.Err("failed to register outbox cleanup job", err)
	}
	log.Info("Registered outbox cleanup job", "at", "02:00")

	return nil
}
