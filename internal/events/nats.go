package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/nats-io/nats.go"
)

// NatsConfig configures the NATS connection.
type NatsConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// NatsPublisher publishes events as JSON on core NATS subjects.
type NatsPublisher struct {
	conn *nats.Conn
	log  *logger.Logger
}

// NewNatsPublisher connects to NATS.
func NewNatsPublisher(cfg NatsConfig, log *logger.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("chefhub-backend"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", cfg.URL, err)
	}
	return &NatsPublisher{conn: conn, log: log}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Subject, err)
	}
	msg := &nats.Msg{Subject: event.Subject, Data: data, Header: nats.Header{}}
	msg.Header.Set("Content-Type", "application/json")
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Subject, err)
	}
	p.log.Debug("published event", "subject", event.Subject, "actor_id", event.ActorID, "target_id", event.TargetID)
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NatsPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
