package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	pkglogger "github.com/zoonatech/portal-api/pkg/logger"
)

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one transactional email. At least one of HTMLBody and TextBody
// must be set.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	TextBody   string
	Attachment *Attachment
}

// Notifier sends a templated message to an address.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// SESNotifier sends emails using AWS SES.
type SESNotifier struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewSESNotifier creates an SES-backed notifier for the given region.
func NewSESNotifier(ctx context.Context, region, fromAddress string, logger *slog.Logger) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESNotifier{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// Send delivers the message. Messages with attachments go through the raw
// MIME path; everything else uses the structured SendEmail API.
func (n *SESNotifier) Send(ctx context.Context, msg Message) error {
	var err error
	if msg.Attachment != nil {
		err = n.sendRaw(ctx, msg)
	} else {
		err = n.sendSimple(ctx, msg)
	}
	if err != nil {
		n.logger.Error("failed to send email via SES",
			slog.String("to", pkglogger.SanitizedEmail(msg.To)),
			slog.String("subject", msg.Subject),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("email sent",
		slog.String("to", pkglogger.SanitizedEmail(msg.To)),
		slog.String("subject", msg.Subject))
	return nil
}

func (n *SESNotifier) sendSimple(ctx context.Context, msg Message) error {
	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody)}
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody)}
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(n.fromAddress),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body:    body,
		},
	}

	_, err := n.sesClient.SendEmail(ctx, input)
	return err
}

func (n *SESNotifier) sendRaw(ctx context.Context, msg Message) error {
	raw := buildRawMessage(n.fromAddress, msg)

	input := &ses.SendRawEmailInput{
		Source:       aws.String(n.fromAddress),
		Destinations: []string{msg.To},
		RawMessage:   &types.RawMessage{Data: raw},
	}

	_, err := n.sesClient.SendRawEmail(ctx, input)
	return err
}

// buildRawMessage assembles a multipart/mixed MIME message with one body part
// and one attachment.
func buildRawMessage(from string, msg Message) []byte {
	const boundary = "ZoonaPortalMimeBoundary"

	contentType := "text/plain"
	body := msg.TextBody
	if msg.HTMLBody != "" {
		contentType = "text/html"
		body = msg.HTMLBody
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: %s; charset=utf-8\r\n\r\n", contentType)
	buf.WriteString(body)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/octet-stream\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", msg.Attachment.Filename)
	buf.WriteString(wrapBase64(msg.Attachment.Content))
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// wrapBase64 encodes content with the 76-character line limit MIME requires.
func wrapBase64(content []byte) string {
	encoded := base64.StdEncoding.EncodeToString(content)

	var buf bytes.Buffer
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	return buf.String()
}
