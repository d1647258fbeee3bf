// Package mailer sends transactional email through AWS SES: contact form
// relays, visitor autoreplies, and the daily analytics report.
package mailer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// defaultContactSubject is used when the form omits a subject.
const defaultContactSubject = "New message from your portfolio"

// SESClient is the slice of the SES API the mailer uses.
// *ses.Client satisfies it.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Mailer sends email on behalf of the verified sender address. SES requires
// Source to be a verified identity, so visitor addresses go in Reply-To
// rather than From.
type Mailer struct {
	client        SESClient
	sender        string
	owner         string
	sendAutoreply bool
	logger        *slog.Logger
}

// Config holds the addresses the mailer operates with.
type Config struct {
	// VerifiedSender is the SES-verified address all mail is sent from.
	VerifiedSender string
	// Owner receives contact form messages and reports.
	Owner string
	// SendAutoreply controls the confirmation email to form submitters.
	SendAutoreply bool
}

// New creates a Mailer.
func New(client SESClient, cfg Config, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		client:        client,
		sender:        cfg.VerifiedSender,
		owner:         cfg.Owner,
		sendAutoreply: cfg.SendAutoreply,
		logger:        logger,
	}
}

// ContactMessage is one contact form submission.
type ContactMessage struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

// senderLine formats the visitor for the relay body.
func (c ContactMessage) senderLine() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return fmt.Sprintf("%s <%s>", c.SenderName, c.SenderEmail)
}

// SendContact relays a form submission to the owner, with the visitor's
// address in Reply-To so replies go straight back to them. If autoreplies are
// enabled a confirmation goes to the visitor as well; an autoreply failure is
// logged but does not fail the submission.
func (m *Mailer) SendContact(ctx context.Context, msg ContactMessage) error {
	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = defaultContactSubject
	}

	text := fmt.Sprintf("From: %s\n\nMessage: %s", msg.senderLine(), msg.Message)
	htmlBody := fmt.Sprintf("<p><strong>From:</strong> %s</p><p><strong>Message:</strong><br>%s</p>",
		html.EscapeString(msg.senderLine()),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))

	err := m.send(ctx, sendParams{
		source:  m.sender,
		to:      m.owner,
		replyTo: msg.SenderEmail,
		subject: subject,
		text:    text,
		html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to relay contact message: %w", err)
	}
	m.logger.Info("contact message relayed", "reply_to", msg.SenderEmail)

	if m.sendAutoreply {
		if err := m.autoreply(ctx, msg.SenderEmail); err != nil {
			m.logger.Warn("failed to send autoreply", "error", err)
		}
	}
	return nil
}

func (m *Mailer) autoreply(ctx context.Context, to string) error {
	const text = "Thanks for reaching out! I got your message and will get back to you soon.\n\n- Olu"
	const htmlBody = "<p>Thanks for reaching out! I got your message and will get back to you soon.</p><p>- Olu</p>"

	return m.send(ctx, sendParams{
		source:  m.sender,
		to:      to,
		subject: "Thanks for your message",
		text:    text,
		html:    htmlBody,
	})
}

// SendReport emails the daily analytics summary to the owner.
func (m *Mailer) SendReport(ctx context.Context, subject, text, htmlBody string) error {
	err := m.send(ctx, sendParams{
		source:  fmt.Sprintf("%q <%s>", "Portfolio Analytics", m.sender),
		to:      m.owner,
		subject: subject,
		text:    text,
		html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	m.logger.Info("analytics report sent", "subject", subject)
	return nil
}

type sendParams struct {
	source  string
	to      string
	replyTo string
	subject string
	text    string
	html    string
}

func (m *Mailer) send(ctx context.Context, p sendParams) error {
	input := &ses.SendEmailInput{
		Source: aws.String(p.source),
		Destination: &types.Destination{
			ToAddresses: []string{p.to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(p.subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(p.text)},
				Html: &types.Content{Data: aws.String(p.html)},
			},
		},
	}
	if p.replyTo != "" {
		input.ReplyToAddresses = []string{p.replyTo}
	}

	_, err := m.client.SendEmail(ctx, input)
	return err
}
