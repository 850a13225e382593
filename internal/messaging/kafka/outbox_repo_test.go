package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anuradha654321/faculty-leave-system/internal/events"
	"github.com/Anuradha654321/faculty-leave-system/internal/messaging/kafka"
)

func TestNewLeaveNotification(t *testing.T) {
	event := kafka.NewLeaveNotification("req-1", "app-1", []byte(`{"k":"v"}`))

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, kafka.AggregateLeaveApplication, event.AggregateType)
	assert.Equal(t, "app-1", event.AggregateID)
	assert.Equal(t, events.TypeLeaveApplied, event.EventType)
	assert.Equal(t, events.TopicLeaveNotifications, event.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.NoError(t, event.Validate())
}

func TestOutboxEvent_Validate(t *testing.T) {
	valid := kafka.NewLeaveNotification("req-1", "app-1", []byte(`{}`))

	t.Run("negative missing id", func(t *testing.T) {
		e := valid
		e.ID = ""
		assert.Error(t, e.Validate())
	})

	t.Run("negative missing topic", func(t *testing.T) {
		e := valid
		e.Topic = ""
		assert.Error(t, e.Validate())
	})

	t.Run("negative empty payload", func(t *testing.T) {
		e := valid
		e.Payload = nil
		assert.Error(t, e.Validate())
	})

	t.Run("negative unknown status", func(t *testing.T) {
		e := valid
		e.Status = "retrying"
		assert.Error(t, e.Validate())
	})
}
