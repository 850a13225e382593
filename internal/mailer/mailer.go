package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/Anuradha654321/faculty-leave-system/internal/events"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Sender interface {
	SendLeaveNotice(event events.LeaveAppliedEvent) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func NewSMTPSender(host string, port int, username, password, from string, logger ...*zap.Logger) Sender {
	l := zap.L().Named("mailer.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer.smtp")
	}
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: l,
	}
}

func (s *smtpSender) SendLeaveNotice(event events.LeaveAppliedEvent) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.RecipientEmail)
	m.SetHeader("Subject", subjectFor(event))
	m.SetBody("text/plain", bodyFor(event))

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}

	s.logger.Debug("leave notice mail sent",
		zap.String("application_id", event.ApplicationID),
		zap.String("recipient", event.RecipientEmail),
	)
	return nil
}

func subjectFor(event events.LeaveAppliedEvent) string {
	if event.IsPermission {
		return fmt.Sprintf("Permission Request from %s", event.ApplicantName)
	}
	return fmt.Sprintf("Leave Application from %s", event.ApplicantName)
}

func bodyFor(event events.LeaveAppliedEvent) string {
	if event.IsPermission {
		return fmt.Sprintf(
			"Dear %s,\n\n%s has requested %s permission on %s.\nReason: %s\n\nPlease review the request in the leave portal.\n",
			event.RecipientName,
			event.ApplicantName,
			event.PermissionSlot,
			event.StartDate,
			event.Reason,
		)
	}
	return fmt.Sprintf(
		"Dear %s,\n\n%s has applied for %s from %s to %s.\nReason: %s\n\nPlease review the application in the leave portal.\n",
		event.RecipientName,
		event.ApplicantName,
		event.LeaveTypeName,
		event.StartDate,
		event.EndDate,
		event.Reason,
	)
}
