package services

import (
	"context"
	"encoding/json"
	"time"

	"estatehub/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/nats-io/nats.go"
)

const NOTIFICATION_SUBJECT = "estatehub.notifications"

// PublisherService publishes domain events to NATS. A nil *PublisherService is a
// valid disabled publisher.
type PublisherService struct {
	conn *nats.Conn
	log  logger.Logger
}

func NewPublisherService(config config.Config) (*PublisherService, error) {
	log := logger.New("publisherService")

	if config.NatsURL == "" {
		log.Warn("NATS URL not configured, domain events disabled")
		return nil, nil
	}

	conn, err := nats.Connect(config.NatsURL,
		nats.Name("estatehub api"),
		nats.Timeout(10*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, log.Function("NewPublisherService").Err("failed to connect to NATS", err, "url", config.NatsURL)
	}

	log.Info("Connected to NATS", "url", conn.ConnectedUrl())
	return &PublisherService{conn: conn, log: log}, nil
}

func (p *PublisherService) Publish(ctx context.Context, subject string, data any) error {
	if p == nil || p.conn == nil {
		return nil
	}
	log := p.log.TraceFromContext(ctx).Function("Publish")

	payload, err := json.Marshal(data)
	if err != nil {
		return log.Err("failed to marshal event", err, "subject", subject)
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		return log.Err("failed to publish event", err, "subject", subject)
	}

	return nil
}

func (p *PublisherService) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.log.Function("Close").Er("failed to drain NATS connection", err)
	}
}
