package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/nats-io/nats.go"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher publishes each event on a subject named after its type.
type NatsPublisher struct {
	conn  Conn
	close func()
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("gym-appointments"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NatsPublisher{conn: nc, close: nc.Close}, nil
}

func NewNatsPublisherWithConn(conn Conn) *NatsPublisher {
	return &NatsPublisher{conn: conn}
}

func (p *NatsPublisher) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := string(e.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.Debug("event published", "subject", subject, "event_id", e.ID, "appointment_id", e.AppointmentID)
	return nil
}

func (p *NatsPublisher) Close() {
	if p.close != nil {
		p.close()
	}
}
