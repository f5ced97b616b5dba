// Package events publishes donation lifecycle events for downstream consumers
// (audit trail, reporting). Publishing sits behind the Notifier interface so
// tests and pulsar-less deployments can swap it out.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/google/uuid"
)

// Event actions.
const (
	ActionDonatorCreated  = "donator.created"
	ActionDonationPayment = "donation.payment"
	ActionMandalCreated   = "mandal.created"
	ActionMandalJoined    = "mandal.joined"
	ActionMandalLeft      = "mandal.left"
)

// DonationEvent is the payload published on every mutation.
type DonationEvent struct {
	Action     string     `json:"action"`
	DonatorID  uuid.UUID  `json:"donatorId,omitempty"`
	DonationID uuid.UUID  `json:"donationId,omitempty"`
	MandalID   *uuid.UUID `json:"mandalId,omitempty"`
	UserID     uuid.UUID  `json:"userId,omitempty"`
	Amount     int64      `json:"amount,omitempty"`
	PaidAmount int64      `json:"paidAmount,omitempty"`
	Timestamp  int64      `json:"timestamp"`
}

// Notifier publishes donation events.
type Notifier interface {
	Publish(event DonationEvent) error
	Close()
}

// EventPublisher is the pulsar-backed Notifier.
type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{Topic: topic})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create pulsar producer: %w", err)
	}

	return &EventPublisher{client: client, producer: producer}, nil
}

// Publish serializes the event and sends it to the topic.
func (p *EventPublisher) Publish(event DonationEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(context.Background(), &pulsar.ProducerMessage{Payload: message})
	if err != nil {
		return fmt.Errorf("could not send event to pulsar: %w", err)
	}
	return nil
}

// Close closes the pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}

// NoopNotifier discards events. Used when pulsar is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Publish(DonationEvent) error { return nil }
func (NoopNotifier) Close()                      {}
