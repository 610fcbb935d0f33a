package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// OutboundEmail is one message ready for the transport
type OutboundEmail struct {
	From    string
	To      []string
	CC      []string
	Subject string
	HTML    string
}

// MailSender sends one message synchronously. The notifier never constructs
// a transport itself; a sender (or a factory for one) is injected so tests
// and alternate transports can stand in.
type MailSender interface {
	Send(ctx context.Context, msg *OutboundEmail) error
}

// MailSenderFactory builds a MailSender from the credential stored in the
// sender settings. The credential lives in the store, not the environment,
// so the transport is constructed per run.
type MailSenderFactory func(apiCredential string) MailSender

type resendMailSender struct {
	client *resend.Client
}

// NewResendMailSender creates a MailSender backed by the Resend API
func NewResendMailSender(apiCredential string) MailSender {
	return &resendMailSender{client: resend.NewClient(apiCredential)}
}

func (s *resendMailSender) Send(ctx context.Context, msg *OutboundEmail) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Cc:      msg.CC,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
