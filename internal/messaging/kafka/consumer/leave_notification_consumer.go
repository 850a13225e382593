package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Anuradha654321/faculty-leave-system/internal/events"
	"github.com/Anuradha654321/faculty-leave-system/internal/mailer"
)

// ConsumeLeaveNotifications reads leave.applied events and sends one email
// per event. Delivery is best effort: the application and its notification
// rows are already committed, so a failed send is logged and the message
// is committed anyway rather than wedging the partition.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	sender mailer.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		var event events.LeaveAppliedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave.applied event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.SendLeaveNotice(event); err != nil {
			log.Error("leave notice email delivery failed",
				zap.String("application_id", event.ApplicationID),
				zap.String("recipient", event.RecipientEmail),
				zap.Error(err),
			)
		} else {
			log.Info("leave notice email sent",
				zap.String("application_id", event.ApplicationID),
				zap.String("recipient", event.RecipientEmail),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}
