package services

import (
	"context"
	"errors"
	"time"

	"estatehub/internal/database"
	"estatehub/internal/events"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const EMAIL_RETRY_BATCH_SIZE = 50

// Pending emails younger than this are still owned by the request that queued them.
const EMAIL_PENDING_GRACE = 5 * time.Minute

var ErrMailerDisabled = errors.New("mailer not configured")

// EventPublisher is the realtime fan-out the notifier pushes to after commit.
type EventPublisher interface {
	Publish(channel events.Channel, event events.Event) error
}

// Outbox collects the rows written inside a transaction so they can be
// delivered once the transaction has committed.
type Outbox struct {
	Notifications []*Notification
	Emails        []*EmailDelivery
}

func (o *Outbox) IsEmpty() bool {
	return o == nil || (len(o.Notifications) == 0 && len(o.Emails) == 0)
}

type NotifierService struct {
	notificationRepo repositories.NotificationRepository
	emailRepo        repositories.EmailDeliveryRepository
	mailer           Mailer
	events           EventPublisher
	publisher        *PublisherService
	metrics          *MetricsService
	db               database.DB
	maxAttempts      int
	log              logger.Logger
}

type NotifierDeps struct {
	Mailer      Mailer
	Events      EventPublisher
	Publisher   *PublisherService
	Metrics     *MetricsService
	MaxAttempts int
}

func NewNotifierService(
	repos repositories.Repository,
	db database.DB,
	deps NotifierDeps,
) *NotifierService {
	maxAttempts := deps.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	return &NotifierService{
		notificationRepo: repos.Notification,
		emailRepo:        repos.EmailDelivery,
		mailer:           deps.Mailer,
		events:           deps.Events,
		publisher:        deps.Publisher,
		metrics:          deps.Metrics,
		db:               db,
		maxAttempts:      maxAttempts,
		log:              logger.New("notifierService"),
	}
}

// Notify appends one notification inside tx.
func (s *NotifierService) Notify(
	ctx context.Context,
	tx *gorm.DB,
	outbox *Outbox,
	notification *Notification,
) error {
	if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
		return err
	}

	outbox.Notifications = append(outbox.Notifications, notification)
	s.metrics.NotificationCreated(string(notification.Type))
	return nil
}

// NotifyAll appends one notification per recipient inside tx.
func (s *NotifierService) NotifyAll(
	ctx context.Context,
	tx *gorm.DB,
	outbox *Outbox,
	recipients []User,
	template Notification,
) error {
	for _, recipient := range recipients {
		notification := template
		notification.ToUserID = recipient.ID
		if err := s.Notify(ctx, tx, outbox, &notification); err != nil {
			return err
		}
	}
	return nil
}

// QueueEmail records an email inside tx; it is sent by Dispatch after commit.
func (s *NotifierService) QueueEmail(
	ctx context.Context,
	tx *gorm.DB,
	outbox *Outbox,
	delivery *EmailDelivery,
) error {
	if err := s.emailRepo.Create(ctx, tx, delivery); err != nil {
		return err
	}

	outbox.Emails = append(outbox.Emails, delivery)
	return nil
}

// Dispatch delivers everything in a committed outbox. Failures are recorded and
// logged, never returned: the state change they describe has already happened.
func (s *NotifierService) Dispatch(ctx context.Context, outbox *Outbox) {
	if outbox.IsEmpty() {
		return
	}
	log := s.log.TraceFromContext(ctx).Function("Dispatch")

	for _, delivery := range outbox.Emails {
		if err := s.deliver(ctx, delivery); err != nil {
			log.Warn("email delivery deferred to retry job", "deliveryID", delivery.ID, "error", err)
		}
	}

	for _, notification := range outbox.Notifications {
		s.publish(ctx, notification)
	}
}

// RetryPending resends failed emails, and queued ones older than EMAIL_PENDING_GRACE,
// that still have attempts left.
func (s *NotifierService) RetryPending(ctx context.Context) (sent int, failed int, err error) {
	log := s.log.TraceFromContext(ctx).Function("RetryPending")

	if s.mailer == nil {
		log.Debug("mailer disabled, skipping email retry")
		return 0, 0, nil
	}

	deliveries, err := s.emailRepo.GetRetryable(
		ctx,
		s.db.SQL,
		time.Now().Add(-EMAIL_PENDING_GRACE),
		s.maxAttempts,
		EMAIL_RETRY_BATCH_SIZE,
	)
	if err != nil {
		return 0, 0, err
	}

	for i := range deliveries {
		if ctx.Err() != nil {
			return sent, failed, ctx.Err()
		}
		if err := s.deliver(ctx, &deliveries[i]); err != nil {
			failed++
			continue
		}
		sent++
	}

	if len(deliveries) > 0 {
		log.Info("Email retry finished", "sent", sent, "failed", failed)
	}
	return sent, failed, nil
}

// PurgeDelivered drops sent outbox rows older than retention.
func (s *NotifierService) PurgeDelivered(ctx context.Context, retention time.Duration) (int64, error) {
	return s.emailRepo.DeleteSentBefore(ctx, s.db.SQL, time.Now().Add(-retention))
}

func (s *NotifierService) GetForUser(ctx context.Context, userID uint) ([]Notification, error) {
	return s.notificationRepo.GetForUser(ctx, s.db.SQL, userID)
}

func (s *NotifierService) deliver(ctx context.Context, delivery *EmailDelivery) error {
	log := s.log.TraceFromContext(ctx).Function("deliver")

	if s.mailer == nil {
		return ErrMailerDisabled
	}

	sendErr := s.mailer.Send(ctx, delivery.ToEmail, delivery.Subject, delivery.Body)
	s.metrics.EmailAttempted(sendErr == nil)

	if sendErr != nil {
		if err := s.emailRepo.MarkFailed(ctx, s.db.SQL, delivery, sendErr); err != nil {
			log.Er("failed to record email failure", err, "deliveryID", delivery.ID)
		}
		return sendErr
	}

	if err := s.emailRepo.MarkSent(ctx, s.db.SQL, delivery); err != nil {
		log.Er("failed to record email delivery", err, "deliveryID", delivery.ID)
	}
	return nil
}

func (s *NotifierService) publish(ctx context.Context, notification *Notification) {
	log := s.log.TraceFromContext(ctx).Function("publish")

	payload := map[string]any{
		"id":         notification.ID,
		"type":       notification.Type,
		"message":    notification.Message,
		"fromUserId": notification.FromUserID,
		"propertyId": notification.PropertyID,
		"date":       notification.Date,
	}

	if s.events != nil {
		toUserID := notification.ToUserID
		if err := s.events.Publish(events.NOTIFICATION_CHANNEL, events.Event{
			Type:   events.NOTIFICATION,
			UserID: &toUserID,
			Data:   payload,
		}); err != nil {
			log.Warn("failed to publish realtime notification", "notificationID", notification.ID, "error", err)
		}
	}

	payload["toUserId"] = notification.ToUserID
	if err := s.publisher.Publish(ctx, NOTIFICATION_SUBJECT, payload); err != nil {
		log.Warn("failed to publish notification event", "notificationID", notification.ID, "error", err)
	}
}
