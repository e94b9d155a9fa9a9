// internal/notify/notifier.go

// Package notify delivers the post-submission acknowledgement over the
// channel the applicant chose on the contact step: email via SES, text via
// SNS, postal mail as a log entry for the mailroom batch. Delivery is
// best-effort; a failed acknowledgement never un-finalizes an application.
package notify

import (
	"context"
	"fmt"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/errors"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/models"
)

// EmailSender and TextSender are the delivery seams; the AWS clients in
// internal/common/aws satisfy them, tests swap in fakes.
type EmailSender interface {
	SendAcknowledgement(ctx context.Context, to, subject, body string) error
}

type TextSender interface {
	SendText(ctx context.Context, phone, message string) error
}

// Notifier routes the acknowledgement by correspondence preference.
type Notifier struct {
	cfg    config.NotificationConfig
	logger logger.Logger
	email  EmailSender
	text   TextSender
}

// New builds a notifier over the given senders. Either sender may be nil
// when its channel is disabled in config.
func New(cfg config.NotificationConfig, log logger.Logger, email EmailSender, text TextSender) *Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
		email:  email,
		text:   text,
	}
}

// ApplicationSubmitted sends the confirmation for a finalized application.
// The channel comes from the applicant's correspondence preference; missing
// contact details or a disabled channel downgrade to a log entry rather
// than an error.
func (n *Notifier) ApplicationSubmitted(ctx context.Context, app models.ApplicationState, confirmationID string) error {
	if app.ApplicantInfo == nil {
		n.logger.Warn("no applicant contact details, skipping acknowledgement", map[string]interface{}{
			"confirmationId": confirmationID,
		})
		return nil
	}
	applicant := *app.ApplicantInfo
	subject := "Benefits application received"
	body := fmt.Sprintf(
		"Dear %s %s,\n\nYour benefits application has been received. Your confirmation number is %s. Keep it for your records.",
		applicant.Name.First, applicant.Name.Last, confirmationID,
	)

	switch applicant.CorrespondencePreference {
	case models.CorrespondEmail:
		if !n.cfg.Email.Enabled || n.email == nil || applicant.Email == "" {
			n.logAcknowledgement("email channel unavailable", confirmationID)
			return nil
		}
		if err := n.email.SendAcknowledgement(ctx, applicant.Email, subject, body); err != nil {
			return errors.NewNotificationSendFailedError("email", err)
		}
	case models.CorrespondText:
		if !n.cfg.SMS.Enabled || n.text == nil || applicant.PrimaryPhone == "" {
			n.logAcknowledgement("sms channel unavailable", confirmationID)
			return nil
		}
		if err := n.text.SendText(ctx, applicant.PrimaryPhone, body); err != nil {
			return errors.NewNotificationSendFailedError("sms", err)
		}
	default:
		// Postal mail goes out with the nightly mailroom batch.
		n.logAcknowledgement("queued for postal mail", confirmationID)
		return nil
	}

	n.logger.Info("acknowledgement sent", map[string]interface{}{
		"confirmationId": confirmationID,
		"channel":        string(applicant.CorrespondencePreference),
	})
	return nil
}

func (n *Notifier) logAcknowledgement(reason, confirmationID string) {
	n.logger.Info(reason, map[string]interface{}{"confirmationId": confirmationID})
}
