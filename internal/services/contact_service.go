package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zoonatech/portal-api/internal/models"
	pkglogger "github.com/zoonatech/portal-api/pkg/logger"
)

// ContactSink records contact requests in the contact sheet.
type ContactSink interface {
	Append(ctx context.Context, req models.ContactRequest) error
}

// ContactService stores a contact request and notifies both sides. Sub-steps
// are not transactional: a row may land in the sheet even when an email
// fails, and the aggregate failure is reported without compensation.
type ContactService struct {
	contacts   ContactSink
	notifier   Notifier
	adminEmail string
	logger     *slog.Logger
}

func NewContactService(contacts ContactSink, notifier Notifier, adminEmail string, logger *slog.Logger) *ContactService {
	return &ContactService{
		contacts:   contacts,
		notifier:   notifier,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Submit appends the contact row, thanks the sender and notifies the admin.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) error {
	req.SubmittedAt = models.Now()

	storeErr := s.contacts.Append(ctx, req)
	userErr := s.notifier.Send(ctx, contactThankYouMessage(req.Email, req.Name, req.ProjectType))
	adminErr := s.notifier.Send(ctx, contactAdminMessage(s.adminEmail, req))

	if err := errors.Join(storeErr, userErr, adminErr); err != nil {
		s.logger.Error("contact submission partially failed",
			slog.String("email", pkglogger.SanitizedEmail(req.Email)),
			slog.Any("error", err))
		return fmt.Errorf("contact submission: %w", err)
	}

	s.logger.Info("contact request recorded",
		slog.String("email", pkglogger.SanitizedEmail(req.Email)))
	return nil
}
