package kafka

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestPublishDropsWhenInboxFull(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := NewProducer([]string{"localhost:9092"}, 1, logger)

	p.Publish("orders.placed", []byte("1"), []byte(`{}`))
	p.Publish("orders.placed", []byte("2"), []byte(`{}`))

	assert.Len(t, p.inbox, 1)
	m := <-p.inbox
	assert.Equal(t, "orders.placed", m.Topic)
	assert.Equal(t, []byte("1"), m.Key)

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "orders.placed", entry.Data["topic"])
	}
}

func TestPublishAfterCloseDrops(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := NewProducer([]string{"localhost:9092"}, 4, logger)
	p.Close()

	// a handler still running after shutdown must not panic
	assert.NotPanics(t, func() {
		p.Publish("appointments.booked", []byte("3"), []byte(`{}`))
	})
	assert.NotPanics(t, p.Close)

	_, open := <-p.inbox
	assert.False(t, open)
	if entry := hook.LastEntry(); assert.NotNil(t, entry) {
		assert.Equal(t, "kafka producer closed, event dropped", entry.Message)
	}
}
