package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Anuradha654321/faculty-leave-system/internal/events"
	"github.com/Anuradha654321/faculty-leave-system/internal/messaging/kafka"
	"github.com/Anuradha654321/faculty-leave-system/internal/shared/contextutil"
)

const noticeDateLayout = "02-01-2006"

// Recipient is one reviewer of a submitted application, resolved by the
// caller before dispatch.
type Recipient struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// LeaveNotice carries everything the dispatcher needs to notify the
// reviewers of one submitted application.
type LeaveNotice struct {
	ApplicationID  uuid.UUID
	ApplicantName  string
	LeaveTypeName  string
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
	IsPermission   bool
	PermissionSlot string
	Recipients     []Recipient
}

//go:generate mockgen -source=notification_dispatcher.go -destination=mock/notification_dispatcher_mock.go -package=mock
type Dispatcher interface {
	WithTx(tx *sql.Tx) Dispatcher
	Dispatch(ctx context.Context, notice LeaveNotice) error
}

type dispatcher struct {
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewDispatcher builds the fan-out writer. Each recipient gets one in-app
// notification row and one outbox event; the email itself leaves the
// building asynchronously, after the surrounding transaction commits.
func NewDispatcher(repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &dispatcher{repo: repo, outbox: outbox, logger: l}
}

func (d *dispatcher) WithTx(tx *sql.Tx) Dispatcher {
	return &dispatcher{
		repo:   d.repo.WithTx(tx),
		outbox: d.outbox.WithTx(tx),
		logger: d.logger,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, notice LeaveNotice) error {
	title, message := composeNotice(notice)

	for _, recipient := range notice.Recipients {
		n := &Notification{
			ID:      uuid.New(),
			UserID:  recipient.UserID,
			Title:   title,
			Message: message,
		}
		if err := d.repo.Create(ctx, n); err != nil {
			d.logger.Error("notification insert failed",
				zap.String("application_id", notice.ApplicationID.String()),
				zap.String("recipient_id", recipient.UserID.String()),
				zap.Error(err),
			)
			return err
		}

		payload, err := json.Marshal(events.LeaveAppliedEvent{
			ApplicationID:  notice.ApplicationID.String(),
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			ApplicantName:  notice.ApplicantName,
			LeaveTypeName:  notice.LeaveTypeName,
			StartDate:      notice.StartDate.Format(noticeDateLayout),
			EndDate:        notice.EndDate.Format(noticeDateLayout),
			Reason:         notice.Reason,
			IsPermission:   notice.IsPermission,
			PermissionSlot: notice.PermissionSlot,
		})
		if err != nil {
			return err
		}

		event := kafka.NewLeaveNotification(
			contextutil.GetRequestID(ctx),
			notice.ApplicationID.String(),
			payload,
		)
		if err := d.outbox.Create(ctx, event); err != nil {
			d.logger.Error("outbox insert failed",
				zap.String("application_id", notice.ApplicationID.String()),
				zap.String("recipient_id", recipient.UserID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	d.logger.Debug("leave notice dispatched",
		zap.String("application_id", notice.ApplicationID.String()),
		zap.Int("recipients", len(notice.Recipients)),
	)
	return nil
}

func composeNotice(notice LeaveNotice) (title, message string) {
	if notice.IsPermission {
		title = "New Permission Request"
		message = fmt.Sprintf(
			"%s has requested %s permission on %s. Please review.",
			notice.ApplicantName,
			notice.PermissionSlot,
			notice.StartDate.Format(noticeDateLayout),
		)
		return title, message
	}

	title = "New Leave Application"
	message = fmt.Sprintf(
		"%s has applied for leave from %s to %s. Please review.",
		notice.ApplicantName,
		notice.StartDate.Format(noticeDateLayout),
		notice.EndDate.Format(noticeDateLayout),
	)
	return title, message
}
