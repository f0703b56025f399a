package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type EventType string

const (
	EventTypeGigCreated      EventType = "gig.created"
	EventTypeGigUpdated      EventType = "gig.updated"
	EventTypeExpenseCreated  EventType = "expense.created"
	EventTypeBackupCompleted EventType = "backup.completed"
)

// Event is what travels over the bus. Payload carries the JSON of the entity
// that triggered it.
type Event struct {
	Type       EventType       `json:"type"`
	UserID     uint64          `json:"user_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type EventHandler func(context.Context, *Event) error

type EventManager struct {
	natsConn *nats.Conn
	handlers map[EventType]EventHandler
	logger   *zap.Logger
}

func NewEventManager(natsConn *nats.Conn, logger *zap.Logger) *EventManager {
	return &EventManager{
		natsConn: natsConn,
		handlers: make(map[EventType]EventHandler),
		logger:   logger,
	}
}

func (em *EventManager) RegisterHandler(eventType EventType, handler EventHandler) {
	em.handlers[eventType] = handler
}

func (em *EventManager) GetHandler(eventType EventType) (EventHandler, bool) {
	handler, exists := em.handlers[eventType]
	return handler, exists
}

func (em *EventManager) PublishEvent(event *Event) error {
	subject := fmt.Sprintf("ledger.event.%s", event.Type)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return em.natsConn.Publish(subject, data)
}

func (em *EventManager) SubscribeToEvents(d *Dispatcher) error {
	_, err := em.natsConn.Subscribe("ledger.event.>", func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			em.logger.Error("Failed to unmarshal event", zap.Error(err))
			return
		}

		d.Submit(context.Background(), &event)
	})

	return err
}
