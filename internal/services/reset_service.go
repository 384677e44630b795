package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zoonatech/portal-api/internal/models"
	pkgauth "github.com/zoonatech/portal-api/pkg/auth"
	pkglogger "github.com/zoonatech/portal-api/pkg/logger"
)

// resetEntry tracks one email's position in the reset flow:
// Issued → Verified → Consumed (entry deleted), with an Expired branch that
// also deletes the entry.
type resetEntry struct {
	code      string
	expiresAt time.Time
	verified  bool
}

// ResetService issues, verifies and consumes one-time password-reset codes.
// At most one entry exists per email; a new request overwrites the previous
// entry, permanently invalidating its code.
type ResetService struct {
	users    UserStore
	notifier Notifier
	logger   *slog.Logger
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]*resetEntry

	now func() time.Time
}

func NewResetService(users UserStore, notifier Notifier, logger *slog.Logger, ttl time.Duration) *ResetService {
	return &ResetService{
		users:    users,
		notifier: notifier,
		logger:   logger,
		ttl:      ttl,
		entries:  make(map[string]*resetEntry),
		now:      time.Now,
	}
}

// Request issues a fresh OTP for a registered email and mails it. The email
// must already exist in the registration sheet.
func (s *ResetService) Request(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return err
	}

	code, err := pkgauth.GenerateOTP()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[email] = &resetEntry{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	if err := s.notifier.Send(ctx, otpMessage(email, code, s.ttl)); err != nil {
		return fmt.Errorf("failed to send otp: %w", err)
	}

	s.logger.Info("reset otp issued", slog.String("email", pkglogger.SanitizedEmail(email)))
	return nil
}

// Verify checks the code issued for this specific email. Codes are scoped to
// the email supplied by the caller, never matched across entries, so equal
// codes issued to different addresses cannot collide. An expired entry is
// removed and the flow must be restarted.
func (s *ResetService) Verify(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok || entry.code != code {
		return models.ErrOTPInvalid
	}

	if s.now().After(entry.expiresAt) {
		delete(s.entries, email)
		s.logger.Info("reset otp expired", slog.String("email", pkglogger.SanitizedEmail(email)))
		return models.ErrOTPExpired
	}

	entry.verified = true
	s.logger.Info("reset otp verified", slog.String("email", pkglogger.SanitizedEmail(email)))
	return nil
}

// Reset consumes a verified entry and overwrites the registration row's
// password with a fresh hash. The entry is deleted only after the sheet
// update succeeds, so a failed update can be retried.
func (s *ResetService) Reset(ctx context.Context, email, newPassword string) error {
	s.mu.Lock()
	entry, ok := s.entries[email]
	verified := ok && entry.verified
	s.mu.Unlock()

	if !verified {
		return models.ErrOTPNotVerified
	}

	passwordHash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, email, passwordHash); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.entries, email)
	s.mu.Unlock()

	s.logger.Info("password reset", slog.String("email", pkglogger.SanitizedEmail(email)))
	return nil
}
