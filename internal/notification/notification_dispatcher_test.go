package notification_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Anuradha654321/faculty-leave-system/internal/events"
	"github.com/Anuradha654321/faculty-leave-system/internal/messaging/kafka"
	"github.com/Anuradha654321/faculty-leave-system/internal/notification"
)

type fakeNotificationRepository struct {
	created  []notification.Notification
	createFn func(ctx context.Context, n *notification.Notification) error
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	f.created = append(f.created, *n)
	return nil
}

type fakeOutboxRepository struct {
	created  []kafka.OutboxEvent
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListDue(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func sampleNotice(recipients ...notification.Recipient) notification.LeaveNotice {
	return notification.LeaveNotice{
		ApplicationID: uuid.New(),
		ApplicantName: "Asha Verma",
		LeaveTypeName: "medical_leave",
		StartDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		Reason:        "Surgery recovery",
		Recipients:    recipients,
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("one notification and one outbox event per recipient", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		hod := notification.Recipient{UserID: uuid.New(), Email: "hod@institution.edu", Name: "Head OfDept"}
		admin := notification.Recipient{UserID: uuid.New(), Email: "admin@institution.edu", Name: "Central Admin"}
		notice := sampleNotice(hod, admin)

		err := d.Dispatch(ctx, notice)

		assert.NoError(t, err)
		assert.Len(t, repo.created, 2)
		assert.Len(t, outbox.created, 2)
		assert.Equal(t, hod.UserID, repo.created[0].UserID)
		assert.Equal(t, admin.UserID, repo.created[1].UserID)
		assert.Equal(t,
			"Asha Verma has applied for leave from 01-04-2025 to 03-04-2025. Please review.",
			repo.created[0].Message,
		)

		var event events.LeaveAppliedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, notice.ApplicationID.String(), event.ApplicationID)
		assert.Equal(t, "hod@institution.edu", event.RecipientEmail)
		assert.Equal(t, events.TopicLeaveNotifications, outbox.created[0].Topic)
		assert.Equal(t, events.TypeLeaveApplied, outbox.created[0].EventType)
		assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)
	})

	t.Run("permission notice names the slot and date", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		notice := sampleNotice(notification.Recipient{UserID: uuid.New(), Email: "hod@institution.edu"})
		notice.IsPermission = true
		notice.PermissionSlot = "morning"
		notice.EndDate = notice.StartDate

		err := d.Dispatch(ctx, notice)

		assert.NoError(t, err)
		assert.Len(t, repo.created, 1)
		assert.Equal(t,
			"Asha Verma has requested morning permission on 01-04-2025. Please review.",
			repo.created[0].Message,
		)
	})

	t.Run("negative notification insert failure aborts", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				return errors.New("insert failed")
			},
		}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		err := d.Dispatch(ctx, sampleNotice(notification.Recipient{UserID: uuid.New()}))

		assert.Error(t, err)
		assert.Empty(t, outbox.created)
	})

	t.Run("negative outbox insert failure aborts", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				return errors.New("insert failed")
			},
		}
		d := notification.NewDispatcher(repo, outbox)

		err := d.Dispatch(ctx, sampleNotice(notification.Recipient{UserID: uuid.New()}))

		assert.Error(t, err)
	})

	t.Run("no recipients is a no-op", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		err := d.Dispatch(ctx, sampleNotice())

		assert.NoError(t, err)
		assert.Empty(t, repo.created)
		assert.Empty(t, outbox.created)
	})
}
