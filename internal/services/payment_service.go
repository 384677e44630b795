package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/zoonatech/portal-api/internal/models"
	pkglogger "github.com/zoonatech/portal-api/pkg/logger"
)

// PaymentSink records payment notices in the payment sheet.
type PaymentSink interface {
	Append(ctx context.Context, p models.Payment) error
}

// PaymentService records a payment notice and sends the admin notification
// and the user receipt. Emails are best-effort once the row is written.
type PaymentService struct {
	payments   PaymentSink
	notifier   Notifier
	adminEmail string
	logger     *slog.Logger
}

func NewPaymentService(payments PaymentSink, notifier Notifier, adminEmail string, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		payments:   payments,
		notifier:   notifier,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Submit stores the payment row and sends both notifications. Each payment
// carries a unique reference quoted in the emails.
func (s *PaymentService) Submit(ctx context.Context, email, selectedProject string, amount float64) (*models.Payment, error) {
	payment := models.Payment{
		Email:           email,
		SelectedProject: selectedProject,
		Amount:          amount,
		PaymentTime:     models.Now(),
		Reference:       uuid.NewString(),
	}

	if err := s.payments.Append(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.notifier.Send(ctx, paymentAdminMessage(s.adminEmail, payment)); err != nil {
		s.logger.Warn("failed to send payment admin notification",
			slog.String("reference", payment.Reference),
			slog.Any("error", err))
	}
	if err := s.notifier.Send(ctx, paymentReceiptMessage(payment)); err != nil {
		s.logger.Warn("failed to send payment receipt",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.String("reference", payment.Reference),
			slog.Any("error", err))
	}

	s.logger.Info("payment recorded",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.String("reference", payment.Reference))
	return &payment, nil
}
