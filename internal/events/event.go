// Package events publishes domain change notifications.
//
// Events are fire-and-forget: a failed publish never fails the operation
// that produced it. The default publisher discards everything; configuring
// AMQP_URL switches to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Type names an event. It doubles as the AMQP routing key.
type Type string

// Event types.
const (
	TransactionCreated  Type = "transaction.created"
	TransactionUpdated  Type = "transaction.updated"
	TransactionDeleted  Type = "transaction.deleted"
	RecurringGenerated  Type = "recurring.generated"
	SubscriptionCreated Type = "subscription.created"
	AccountCreated      Type = "account.created"
	CreditCardCreated   Type = "creditcard.created"
	AssetCreated        Type = "asset.created"
	AssetUpdated        Type = "asset.updated"
	AssetDeleted        Type = "asset.deleted"
	PricesSnapshotted   Type = "prices.snapshotted"
	PricesBackfilled    Type = "prices.backfilled"
)

// Event is the message envelope.
type Event struct {
	Type      Type      `json:"type"`
	SubjectID string    `json:"subjectId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New builds an event stamped with the current time.
func New(t Type, subjectID string, payload any) Event {
	return Event{
		Type:      t,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ToJSON encodes the event.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Noop) Close() error { return nil }
