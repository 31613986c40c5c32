package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Sink is satisfied by *kafka.Producer.
type Sink interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

// Emitter wraps payloads in a v1 Envelope and hands them to Sink. Delivery is
// fire-and-forget; a nil Emitter or nil Sink drops events.
type Emitter struct {
	Sink     Sink
	Producer string
	Log      logrus.FieldLogger
}

func (e *Emitter) Emit(ctx context.Context, topic, eventType, correlationID string, payload any) {
	if e == nil || e.Sink == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		e.logErr(err, eventType)
		return
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      e.Producer,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: correlationID,
		Payload:       body,
	}
	value, err := json.Marshal(env)
	if err != nil {
		e.logErr(err, eventType)
		return
	}
	e.Sink.Publish(topic, PartitionKey(correlationID), value,
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (e *Emitter) logErr(err error, eventType string) {
	if e.Log != nil {
		e.Log.WithError(err).WithField("event_type", eventType).Error("encode event")
	}
}
